package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTransactions(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestRunSingleDeposit(t *testing.T) {
	path := writeTransactions(t, "type,client,tx,amount\ndeposit,1,1,10.5\n")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{path}, &stdout, &stderr)

	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Equal(t, "client,available,held,total,locked\n1,10.5,0,10.5,false\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunFullFlow(t *testing.T) {
	path := writeTransactions(t, `type,       client, tx, amount
deposit,    1,      1,  1.0
deposit,    2,      2,  2.0
deposit,    1,      3,  2.0
withdrawal, 1,      4,  1.5
withdrawal, 2,      5,  3.0
deposit,    3,      6,  10.00001
dispute,    3,      6,
deposit,    4,      7,  5
dispute,    4,      7,
chargeback, 4,      7,
deposit,    4,      8,  100
`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	want := "client,available,held,total,locked\n" +
		"1,1.5,0,1.5,false\n" +
		"2,2,0,2,false\n" +
		"3,0,10,10,false\n" +
		"4,0,0,0,true\n"
	assert.Equal(t, want, stdout.String())
}

func TestRunLogsSkippedRowsWhenAsked(t *testing.T) {
	path := writeTransactions(t, "type,client,tx,amount\ndeposit,x,1,1\nwithdrawal,1,2,5\n")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-e", path}, &stdout, &stderr)
	require.Equal(t, 0, code)

	assert.Equal(t, "client,available,held,total,locked\n1,0,0,0,false\n", stdout.String())
	assert.Contains(t, stderr.String(), "Skipping malformed row")
	assert.Contains(t, stderr.String(), "insufficient_funds")
}

func TestRunIsQuietAboutSkippedRowsByDefault(t *testing.T) {
	path := writeTransactions(t, "type,client,tx,amount\ndeposit,x,1,1\n")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{path}, &stdout, &stderr)
	require.Equal(t, 0, code)

	assert.Equal(t, "client,available,held,total,locked\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{filepath.Join(t.TempDir(), "nope.csv")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "doesn't exist")
}

func TestRunDirectoryIsNotAFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{t.TempDir()}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "is not a file")
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Usage: payments-engine")
}
