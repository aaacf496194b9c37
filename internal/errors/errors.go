package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound        ErrorCode = "account_not_found"
	AccountLocked          ErrorCode = "account_locked"
	ClientMismatch         ErrorCode = "client_mismatch"
	DuplicateSnapshot      ErrorCode = "duplicate_snapshot"
	DuplicateTransaction   ErrorCode = "duplicate_transaction"
	InsufficientFunds      ErrorCode = "insufficient_funds"
	InvalidAmount          ErrorCode = "invalid_amount"
	InvalidClientID        ErrorCode = "invalid_client_id"
	InvalidDisputeState    ErrorCode = "invalid_dispute_state"
	InvalidInput           ErrorCode = "invalid_input"
	TransactionNotFound    ErrorCode = "transaction_not_found"
	UnknownTransactionType ErrorCode = "unknown_transaction_type"
	InternalError          ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports a match on error code, so errors.Is(err, ErrInsufficientFunds)
// holds for any AppError carrying that code regardless of details.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy so the predefined errors below stay untouched.
func (e *AppError) WithDetails(details string) *AppError {
	c := *e
	c.Details = details
	return &c
}

// HTTPStatus maps the error code onto a response status for the report API.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound, TransactionNotFound:
		return http.StatusNotFound
	case InvalidClientID, InvalidInput, InvalidAmount, UnknownTransactionType:
		return http.StatusBadRequest
	case AccountLocked, DuplicateSnapshot, DuplicateTransaction, InvalidDisputeState, ClientMismatch:
		return http.StatusConflict
	case InsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// As unwraps err into an *AppError when it is one.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Predefined errors for common cases
var (
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrAccountLocked          = NewAppError(AccountLocked, "account is locked")
	ErrClientMismatch         = NewAppError(ClientMismatch, "transaction belongs to another client")
	ErrDuplicateSnapshot      = NewAppError(DuplicateSnapshot, "snapshot already exported")
	ErrDuplicateTransaction   = NewAppError(DuplicateTransaction, "transaction already processed")
	ErrInsufficientFunds      = NewAppError(InsufficientFunds, "insufficient available funds")
	ErrInvalidAmount          = NewAppError(InvalidAmount, "amount must be a positive decimal")
	ErrMissingAmount          = NewAppError(InvalidAmount, "amount is required")
	ErrInvalidClientID        = NewAppError(InvalidClientID, "invalid client ID")
	ErrInvalidDisputeState    = NewAppError(InvalidDisputeState, "transaction is not in a valid dispute state")
	ErrTransactionNotFound    = NewAppError(TransactionNotFound, "referenced transaction not found")
	ErrUnknownTransactionType = NewAppError(UnknownTransactionType, "unknown transaction type")
)
