package pgsql

import (
	"context"
	"fmt"
	"strings"

	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// listQuery renders the WHERE/ORDER/LIMIT tail of a record list for filter.
// dateExpr is the column (or expression) the record is dated by.
func listQuery(base, dateExpr, idColumn string, filter portsrepo.RecordFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(" WHERE user_id = $1")
	args := []any{filter.UserID}

	if filter.Range != nil {
		args = append(args, filter.Range.Start(), filter.Range.End())
		fmt.Fprintf(&sb, " AND %s BETWEEN $%d AND $%d", dateExpr, len(args)-1, len(args))
	}
	fmt.Fprintf(&sb, " ORDER BY %s DESC, %s", dateExpr, idColumn)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args
}

// collect scans every row with scan and maps it to the domain type.
func collect[M, D any](ctx context.Context, pool *pgxpool.Pool, entity, query string, args []any,
	scan func(pgx.Row) (M, error), toDomain func(M) (D, error)) ([]D, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entity, err)
	}
	defer rows.Close()

	out := make([]D, 0)
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", entity, err)
		}
		d, err := toDomain(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt %s row: %w", entity, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", entity, err)
	}
	return out, nil
}
