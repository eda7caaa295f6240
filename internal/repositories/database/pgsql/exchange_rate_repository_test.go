package pgsql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// returnedRow yields the RETURNING value of one upsert, or err.
type returnedRow struct {
	code string
	err  error
}

func (r returnedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.code
	return nil
}

type fakeBatchRows struct {
	rows []returnedRow
}

func (f *fakeBatchRows) QueryRow() pgx.Row {
	row := f.rows[0]
	f.rows = f.rows[1:]
	return row
}

func TestReadMergeOutcome_BlockedUpsertIsSkipped(t *testing.T) {
	br := &fakeBatchRows{rows: []returnedRow{
		{code: "EUR"},
		{err: pgx.ErrNoRows},
		{code: "JPY"},
	}}

	merged, skipped, err := readMergeOutcome(br, []string{"EUR", "GBP", "JPY"})

	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "JPY"}, merged)
	assert.Equal(t, []string{"GBP"}, skipped)
}

func TestReadMergeOutcome_Error(t *testing.T) {
	br := &fakeBatchRows{rows: []returnedRow{{err: errors.New("conn reset")}}}

	_, _, err := readMergeOutcome(br, []string{"EUR"})

	assert.ErrorContains(t, err, "upsert EUR")
}

func TestMergeAutomaticRateSQL_ReportsWrittenRows(t *testing.T) {
	assert.Contains(t, mergeAutomaticRateSQL, "WHERE exchange_rates.is_manual = FALSE")
	assert.Contains(t, mergeAutomaticRateSQL, "RETURNING currency_code")
}
