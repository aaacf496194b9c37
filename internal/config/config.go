package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds run settings. Environment variables provide defaults and
// command-line flags override them.
type Config struct {
	TransactionsFile string `validate:"required"`

	LogErrors bool   `env:"LOG_ERRORS" env-default:"false"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"error" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`

	DatabaseURL string `env:"DATABASE_URL"`
	HTTPAddr    string `env:"HTTP_ADDR" validate:"omitempty,hostname_port"`
}

// UsageError marks a problem with the command line itself.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Load reads the environment, then parses args (without the program name).
// Usage text and flag errors are written to output.
func Load(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	fs := flag.NewFlagSet("payments-engine", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: payments-engine [flags] <transactions.csv>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.LogErrors, "e", cfg.LogErrors, "shorthand for -log-errors")
	fs.BoolVar(&cfg.LogErrors, "log-errors", cfg.LogErrors, "log skipped rows to stderr")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "export the final account snapshot to this Postgres database")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "serve the final account snapshot over HTTP on this address")

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Err: err}
	}

	switch fs.NArg() {
	case 0:
		fs.Usage()
		return nil, &UsageError{Err: fmt.Errorf("missing path to the transactions .csv file")}
	case 1:
		cfg.TransactionsFile = fs.Arg(0)
	default:
		fs.Usage()
		return nil, &UsageError{Err: fmt.Errorf("expected one transactions file, got %d arguments", fs.NArg())}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, &UsageError{Err: fmt.Errorf("invalid configuration: %w", err)}
	}

	return cfg, nil
}

// Level returns the slog level to log at. -log-errors lowers it to warn so
// that skipped rows show up.
func (c *Config) Level() slog.Level {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelError
	}

	if c.LogErrors && level > slog.LevelWarn {
		level = slog.LevelWarn
	}
	return level
}
