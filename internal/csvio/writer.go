package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"payments-engine/internal/domain"
)

var summaryHeader = []string{"client", "available", "held", "total", "locked"}

type Writer struct {
	csv *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAccounts writes the header followed by one row per account, in the
// order given, and flushes.
func (w *Writer) WriteAccounts(accounts []domain.Account) error {
	if err := w.csv.Write(summaryHeader); err != nil {
		return err
	}

	for _, account := range accounts {
		row := []string{
			strconv.FormatUint(uint64(account.Client), 10),
			domain.FormatAmount(account.Available),
			domain.FormatAmount(account.Held),
			domain.FormatAmount(account.Total),
			strconv.FormatBool(account.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}
