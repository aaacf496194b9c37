package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesOnCode(t *testing.T) {
	err := ErrInvalidAmount.WithDetails("-1")

	assert.True(t, stderrors.Is(err, ErrInvalidAmount))
	assert.True(t, stderrors.Is(ErrMissingAmount, ErrInvalidAmount))
	assert.False(t, stderrors.Is(err, ErrInsufficientFunds))
	assert.True(t, stderrors.Is(fmt.Errorf("wrapped: %w", err), ErrInvalidAmount))
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	_ = ErrTransactionNotFound.WithDetails("tx 7")
	assert.Empty(t, ErrTransactionNotFound.Details)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "account_locked: account is locked", ErrAccountLocked.Error())
	assert.Equal(t, "invalid_amount: amount must be a positive decimal (0)", ErrInvalidAmount.WithDetails("0").Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrAccountNotFound.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, ErrInvalidClientID.HTTPStatus())
	assert.Equal(t, http.StatusConflict, ErrAccountLocked.HTTPStatus())
	assert.Equal(t, http.StatusUnprocessableEntity, ErrInsufficientFunds.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, NewAppError(InternalError, "boom").HTTPStatus())
}

func TestAs(t *testing.T) {
	appErr, ok := As(fmt.Errorf("ctx: %w", ErrAccountLocked))
	assert.True(t, ok)
	assert.Equal(t, AccountLocked, appErr.Code)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}
