package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientID identifies a client account. Input files carry it as a u16.
type ClientID uint16

type Account struct {
	Client    ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

func NewAccount(client ClientID) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// AccountRepository persists account snapshots produced by a processing run.
type AccountRepository interface {
	SaveSnapshot(runID uuid.UUID, accounts []Account) error
	GetSnapshot(runID uuid.UUID) ([]Account, error)
}
