package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_UserOnly(t *testing.T) {
	query, args := listQuery("SELECT * FROM incomes", "received_on", "income_id", portsrepo.RecordFilter{UserID: "u1"})

	assert.Equal(t, "SELECT * FROM incomes WHERE user_id = $1 ORDER BY received_on DESC, income_id", query)
	assert.Equal(t, []any{"u1"}, args)
}

func TestListQuery_RangeAndPaging(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	dr, err := domain.NewDateRange(start, end)
	require.NoError(t, err)

	query, args := listQuery("SELECT * FROM expenses", "spent_on", "expense_id",
		portsrepo.RecordFilter{UserID: "u1", Range: &dr, Limit: 10, Offset: 20})

	assert.Equal(t, "SELECT * FROM expenses WHERE user_id = $1 AND spent_on BETWEEN $2 AND $3"+
		" ORDER BY spent_on DESC, expense_id LIMIT $4 OFFSET $5", query)
	assert.Equal(t, []any{"u1", start, end, 10, 20}, args)
}
