package service

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"

	"payments-engine/internal/csvio"
	"payments-engine/internal/domain"
)

// TransactionSource yields transactions one at a time. Next returns io.EOF
// when exhausted and a *csvio.RowError for a row that should be skipped.
type TransactionSource interface {
	Next() (domain.Transaction, error)
}

// TransactionRecorder applies one transaction; a non-nil error means it was rejected.
type TransactionRecorder interface {
	RecordTransaction(tx domain.Transaction) error
}

type TransactionService struct {
	accounts TransactionRecorder
	logger   *slog.Logger
}

func NewTransactionService(accounts TransactionRecorder, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		accounts: accounts,
		logger:   logger,
	}
}

// Summary counts what happened to each row of a run.
type Summary struct {
	Rows      int
	Applied   int
	Rejected  int
	Malformed int
}

// Process drains source into the account recorder. Malformed rows and
// rejected transactions are logged and skipped; only a broken stream or a
// cancelled context stops the run.
func (s *TransactionService) Process(ctx context.Context, source TransactionSource) (Summary, error) {
	var summary Summary

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		tx, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var rowErr *csvio.RowError
			if !stderrors.As(err, &rowErr) {
				s.logger.Error("Failed to read transactions", "error", err)
				return summary, err
			}
			summary.Rows++
			summary.Malformed++
			s.logger.Warn("Skipping malformed row", "line", rowErr.Line, "error", rowErr.Err)
			continue
		}

		summary.Rows++
		if err := s.accounts.RecordTransaction(tx); err != nil {
			summary.Rejected++
			s.logger.Warn("Transaction rejected",
				"type", tx.Type,
				"client", tx.Client,
				"tx", tx.Tx,
				"error", err)
			continue
		}
		summary.Applied++
	}

	s.logger.Info("Transactions processed",
		"rows", summary.Rows,
		"applied", summary.Applied,
		"rejected", summary.Rejected,
		"malformed", summary.Malformed)
	return summary, nil
}
