package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionID identifies a transaction globally. Input files carry it as a u32.
type TransactionID uint32

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType lower-cases s. Unknown values are returned as-is and
// rejected later by the account service, not by the parser.
func ParseTransactionType(s string) TransactionType {
	return TransactionType(strings.ToLower(strings.TrimSpace(s)))
}

func (t TransactionType) Known() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeDispute, TransactionTypeResolve, TransactionTypeChargeback:
		return true
	}
	return false
}

type Transaction struct {
	Type   TransactionType
	Client ClientID
	Tx     TransactionID
	// Amount is nil for dispute, resolve and chargeback rows.
	Amount *decimal.Decimal
}

type DisputeState int

const (
	DisputeNone DisputeState = iota
	DisputeOpen
	DisputeResolved
	DisputeChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case DisputeOpen:
		return "disputed"
	case DisputeResolved:
		return "resolved"
	case DisputeChargedBack:
		return "charged_back"
	default:
		return "none"
	}
}

// LedgerEntry is a deposit or withdrawal kept so that later dispute rows can
// reference it by transaction id.
type LedgerEntry struct {
	Type   TransactionType
	Client ClientID
	Tx     TransactionID
	Amount decimal.Decimal
	State  DisputeState
}
