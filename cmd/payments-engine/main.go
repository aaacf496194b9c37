package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"payments-engine/internal/config"
	"payments-engine/internal/csvio"
	"payments-engine/internal/repository"
	"payments-engine/internal/server"
	"payments-engine/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one processing run and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if err != nil {
		var usageErr *config.UsageError
		if stderrors.As(err, &usageErr) {
			return 2
		}
		slog.New(slog.NewTextHandler(stderr, nil)).Error("Failed to load configuration", "error", err)
		return 1
	}

	runID := uuid.New()
	logger := newLogger(cfg, stderr).With("run_id", runID)

	file, err := csvio.Open(cfg.TransactionsFile)
	if err != nil {
		logger.Error("Cannot read transactions", "error", err)
		return 1
	}
	defer file.Close()

	accountService := service.NewAccountService(logger)
	transactionService := service.NewTransactionService(accountService, logger)

	if _, err := transactionService.Process(ctx, csvio.NewReader(bufio.NewReader(file))); err != nil {
		logger.Error("Processing aborted", "file", cfg.TransactionsFile, "error", err)
		return 1
	}

	accounts := accountService.Accounts()

	out := bufio.NewWriter(stdout)
	if err := csvio.NewWriter(out).WriteAccounts(accounts); err != nil {
		logger.Error("Failed to write account summary", "error", err)
		return 1
	}
	if err := out.Flush(); err != nil {
		logger.Error("Failed to flush account summary", "error", err)
		return 1
	}

	var db server.Pinger
	if cfg.DatabaseURL != "" {
		store, closeDB, err := openStore(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			return 1
		}
		defer closeDB()

		if err := store.Account().SaveSnapshot(runID, accounts); err != nil {
			logger.Error("Failed to export account snapshot", "error", err)
			return 1
		}
		db = store
	}

	if cfg.HTTPAddr != "" {
		srv := server.NewServer(accountService, db, logger)
		if _, err := srv.Start(cfg.HTTPAddr); err != nil {
			logger.Error("Failed to start report server", "addr", cfg.HTTPAddr, "error", err)
			return 1
		}

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("Report server shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openStore(dsn string, logger *slog.Logger) (*repository.Store, func(), error) {
	db, err := repository.Open(dsn)
	if err != nil {
		return nil, nil, err
	}

	store := repository.NewStore(db, logger)
	if err := store.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("Connected to database")
	return store, func() { db.Close() }, nil
}
