package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"payments-engine/internal/domain"
	"payments-engine/internal/errors"
)

// AccountReader is the read side of the account service.
type AccountReader interface {
	Account(client domain.ClientID) (domain.Account, error)
	Accounts() []domain.Account
}

type AccountHandler struct {
	accounts AccountReader
}

func NewAccountHandler(accounts AccountReader) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
	}
}

// AccountResponse mirrors a row of the CSV summary.
type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

func newAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		Client:    uint16(account.Client),
		Available: domain.FormatAmount(account.Available),
		Held:      domain.FormatAmount(account.Held),
		Total:     domain.FormatAmount(account.Total),
		Locked:    account.Locked,
	}
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.accounts.Accounts()

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, newAccountResponse(account))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseUint(vars["client_id"], 10, 16)
	if err != nil {
		writeError(w, errors.ErrInvalidClientID.WithDetails(vars["client_id"]))
		return
	}

	account, err := h.accounts.Account(domain.ClientID(id))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}
