// Package csvio reads transaction rows from CSV input and writes account
// summaries as CSV.
package csvio

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"payments-engine/internal/domain"
	"payments-engine/internal/errors"
)

const (
	columnType   = "type"
	columnClient = "client"
	columnTx     = "tx"
	columnAmount = "amount"
)

// RowError reports a row that could not be turned into a transaction.
// Processing can continue after it.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Open opens a transactions file, refusing anything that is not a regular file.
func Open(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("transactions file %q doesn't exist", path)
		}
		return nil, fmt.Errorf("stat transactions file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions file: %w", err)
	}
	return f, nil
}

// Reader yields transactions from a CSV stream whose first row is a header.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnType, columnClient, columnTx} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("header is missing column %q", required)
		}
	}

	r.columns = columns
	return nil
}

// Next returns the next transaction. It returns io.EOF at the end of input,
// a *RowError for a malformed row, and any other error for a broken stream.
func (r *Reader) Next() (domain.Transaction, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return domain.Transaction{}, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if stderrors.As(err, &parseErr) {
			return domain.Transaction{}, &RowError{Line: parseErr.StartLine, Err: parseErr.Err}
		}
		return domain.Transaction{}, err
	}

	line, _ := r.csv.FieldPos(0)
	tx, err := r.parse(record)
	if err != nil {
		return domain.Transaction{}, &RowError{Line: line, Err: err}
	}
	return tx, nil
}

func (r *Reader) field(record []string, column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (r *Reader) parse(record []string) (domain.Transaction, error) {
	typ := r.field(record, columnType)
	if typ == "" {
		return domain.Transaction{}, errors.NewAppErrorf(errors.InvalidInput, "missing %s", columnType)
	}

	client, err := strconv.ParseUint(r.field(record, columnClient), 10, 16)
	if err != nil {
		return domain.Transaction{}, errors.NewAppErrorf(errors.InvalidInput, "invalid %s", columnClient).WithDetails(err.Error())
	}

	txID, err := strconv.ParseUint(r.field(record, columnTx), 10, 32)
	if err != nil {
		return domain.Transaction{}, errors.NewAppErrorf(errors.InvalidInput, "invalid %s", columnTx).WithDetails(err.Error())
	}

	tx := domain.Transaction{
		Type:   domain.ParseTransactionType(typ),
		Client: domain.ClientID(client),
		Tx:     domain.TransactionID(txID),
	}

	if raw := r.field(record, columnAmount); raw != "" {
		amount, err := domain.ParseAmount(raw)
		if err != nil {
			return domain.Transaction{}, errors.NewAppErrorf(errors.InvalidAmount, "invalid %s", columnAmount).WithDetails(err.Error())
		}
		tx.Amount = &amount
	}

	return tx, nil
}
