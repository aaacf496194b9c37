package repository

import (
	stderrors "errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"payments-engine/internal/domain"
	"payments-engine/internal/errors"
)

type accountRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewAccountRepository(store *Store, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		store:  store,
		logger: logger,
	}
}

// SaveSnapshot bulk-loads accounts under runID with COPY, in one transaction.
func (r *accountRepository) SaveSnapshot(runID uuid.UUID, accounts []domain.Account) error {
	err := r.store.WithTransaction(func(tx *Store) error {
		stmt, err := tx.executor.Prepare(pq.CopyIn("account_snapshots",
			"run_id", "client_id", "available", "held", "total", "locked"))
		if err != nil {
			return err
		}

		for _, account := range accounts {
			_, err := stmt.Exec(
				runID.String(),
				int(account.Client),
				account.Available.String(),
				account.Held.String(),
				account.Total.String(),
				account.Locked,
			)
			if err != nil {
				stmt.Close()
				return err
			}
		}

		// an argument-less Exec flushes the COPY buffer
		if _, err := stmt.Exec(); err != nil {
			stmt.Close()
			return err
		}
		return stmt.Close()
	})

	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			r.logger.Warn("Snapshot already exported", "run_id", runID)
			return errors.ErrDuplicateSnapshot.WithDetails(runID.String())
		}
		r.logger.Error("Failed to save snapshot", "run_id", runID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to save snapshot").WithDetails(err.Error())
	}

	r.logger.Info("Snapshot saved", "run_id", runID, "accounts", len(accounts))
	return nil
}

func (r *accountRepository) GetSnapshot(runID uuid.UUID) ([]domain.Account, error) {
	query := `
		SELECT client_id, available, held, total, locked
		FROM account_snapshots WHERE run_id = $1
		ORDER BY client_id
	`

	rows, err := r.store.executor.Query(query, runID.String())
	if err != nil {
		r.logger.Error("Failed to query snapshot", "run_id", runID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to query snapshot").WithDetails(err.Error())
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to read snapshot").WithDetails(err.Error())
	}

	if len(accounts) == 0 {
		r.logger.Warn("Snapshot not found", "run_id", runID)
		return nil, errors.ErrAccountNotFound.WithDetails(runID.String())
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *accountRepository) scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var clientID int
	var availableStr, heldStr, totalStr string

	if err := row.Scan(&clientID, &availableStr, &heldStr, &totalStr, &account.Locked); err != nil {
		r.logger.Error("Failed to scan snapshot row", "error", err)
		return domain.Account{}, errors.NewAppError(errors.InternalError, "failed to scan snapshot row").WithDetails(err.Error())
	}
	account.Client = domain.ClientID(clientID)

	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{availableStr, &account.Available},
		{heldStr, &account.Held},
		{totalStr, &account.Total},
	} {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			r.logger.Error("Failed to parse balance", "client", clientID, "balance_str", f.raw, "error", err)
			return domain.Account{}, errors.NewAppError(errors.InternalError, "failed to parse balance").WithDetails(err.Error())
		}
		*f.dst = d
	}

	return account, nil
}
