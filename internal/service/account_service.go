package service

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"payments-engine/internal/domain"
	"payments-engine/internal/errors"
)

// AccountService holds every client account and the ledger of disputable
// transactions. Rejected transactions never mutate either.
type AccountService struct {
	mu       sync.RWMutex
	accounts map[domain.ClientID]*domain.Account
	ledger   map[domain.TransactionID]*domain.LedgerEntry
	logger   *slog.Logger
}

func NewAccountService(logger *slog.Logger) *AccountService {
	return &AccountService{
		accounts: make(map[domain.ClientID]*domain.Account),
		ledger:   make(map[domain.TransactionID]*domain.LedgerEntry),
		logger:   logger,
	}
}

// RecordTransaction applies tx to its client's account. The account is
// created on first reference even when tx is then rejected. A returned error
// means nothing was changed; callers processing a batch log it and move on.
func (s *AccountService) RecordTransaction(tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[tx.Client]
	if !ok {
		account = domain.NewAccount(tx.Client)
		s.accounts[tx.Client] = account
	}

	if account.Locked {
		return errors.ErrAccountLocked
	}

	var err error
	switch tx.Type {
	case domain.TransactionTypeDeposit:
		err = s.deposit(account, tx)
	case domain.TransactionTypeWithdrawal:
		err = s.withdraw(account, tx)
	case domain.TransactionTypeDispute:
		err = s.dispute(account, tx)
	case domain.TransactionTypeResolve:
		err = s.resolve(account, tx)
	case domain.TransactionTypeChargeback:
		err = s.chargeback(account, tx)
	default:
		err = errors.ErrUnknownTransactionType.WithDetails(string(tx.Type))
	}
	if err != nil {
		return err
	}

	s.logger.Debug("Transaction applied",
		"type", tx.Type,
		"client", tx.Client,
		"tx", tx.Tx,
		"available", account.Available,
		"held", account.Held,
		"total", account.Total,
		"locked", account.Locked)
	return nil
}

func (s *AccountService) deposit(account *domain.Account, tx domain.Transaction) error {
	amount, err := s.validateFunding(tx)
	if err != nil {
		return err
	}

	account.Available = account.Available.Add(amount)
	account.Total = account.Total.Add(amount)
	s.remember(tx, amount)
	return nil
}

func (s *AccountService) withdraw(account *domain.Account, tx domain.Transaction) error {
	amount, err := s.validateFunding(tx)
	if err != nil {
		return err
	}

	if account.Available.LessThan(amount) {
		return errors.ErrInsufficientFunds
	}

	account.Available = account.Available.Sub(amount)
	account.Total = account.Total.Sub(amount)
	s.remember(tx, amount)
	return nil
}

// validateFunding checks the parts shared by deposits and withdrawals.
func (s *AccountService) validateFunding(tx domain.Transaction) (decimal.Decimal, error) {
	if tx.Amount == nil {
		return decimal.Zero, errors.ErrMissingAmount
	}

	amount := *tx.Amount
	if amount.IsNegative() || amount.IsZero() {
		return decimal.Zero, errors.ErrInvalidAmount.WithDetails(amount.String())
	}

	if _, exists := s.ledger[tx.Tx]; exists {
		return decimal.Zero, errors.ErrDuplicateTransaction
	}

	return amount, nil
}

func (s *AccountService) remember(tx domain.Transaction, amount decimal.Decimal) {
	s.ledger[tx.Tx] = &domain.LedgerEntry{
		Type:   tx.Type,
		Client: tx.Client,
		Tx:     tx.Tx,
		Amount: amount,
		State:  domain.DisputeNone,
	}
}

// referenced looks up the ledger entry a dispute, resolve or chargeback points at.
func (s *AccountService) referenced(tx domain.Transaction) (*domain.LedgerEntry, error) {
	entry, ok := s.ledger[tx.Tx]
	if !ok {
		return nil, errors.ErrTransactionNotFound
	}
	if entry.Client != tx.Client {
		return nil, errors.ErrClientMismatch
	}
	return entry, nil
}

func (s *AccountService) dispute(account *domain.Account, tx domain.Transaction) error {
	entry, err := s.referenced(tx)
	if err != nil {
		return err
	}
	if entry.State != domain.DisputeNone {
		return errors.ErrInvalidDisputeState.WithDetails(entry.State.String())
	}

	// available may go negative when the disputed funds were already spent
	account.Available = account.Available.Sub(entry.Amount)
	account.Held = account.Held.Add(entry.Amount)
	entry.State = domain.DisputeOpen
	return nil
}

func (s *AccountService) resolve(account *domain.Account, tx domain.Transaction) error {
	entry, err := s.referenced(tx)
	if err != nil {
		return err
	}
	if entry.State != domain.DisputeOpen {
		return errors.ErrInvalidDisputeState.WithDetails(entry.State.String())
	}

	account.Held = account.Held.Sub(entry.Amount)
	account.Available = account.Available.Add(entry.Amount)
	entry.State = domain.DisputeResolved
	return nil
}

func (s *AccountService) chargeback(account *domain.Account, tx domain.Transaction) error {
	entry, err := s.referenced(tx)
	if err != nil {
		return err
	}

	switch entry.State {
	case domain.DisputeOpen:
	case domain.DisputeResolved:
		// undo the resolve before charging back
		account.Held = account.Held.Add(entry.Amount)
		account.Available = account.Available.Sub(entry.Amount)
	default:
		return errors.ErrInvalidDisputeState.WithDetails(entry.State.String())
	}

	account.Held = account.Held.Sub(entry.Amount)
	account.Total = account.Total.Sub(entry.Amount)
	account.Locked = true
	entry.State = domain.DisputeChargedBack

	s.logger.Info("Account locked by chargeback", "client", tx.Client, "tx", tx.Tx)
	return nil
}

// Account returns a copy of the client's account.
func (s *AccountService) Account(client domain.ClientID) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[client]
	if !ok {
		return domain.Account{}, errors.ErrAccountNotFound
	}
	return *account, nil
}

// Accounts returns copies of all accounts ordered by client id.
func (s *AccountService) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		out = append(out, *account)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Client < out[j].Client
	})
	return out
}
