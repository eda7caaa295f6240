package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/models"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseSelect = `SELECT expense_id, user_id, category, description, spent_on, recurrence, recurrence_interval,
	amount, currency_code, base_amount, base_currency_code, rate_used,
	created_at, created_by, last_updated_at, last_updated_by FROM expenses`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(&m.ExpenseID, &m.UserID, &m.Category, &m.Description, &m.SpentOn, &m.Recurrence, &m.RecurrenceInterval,
		&m.Amount, &m.Currency, &m.BaseAmount, &m.BaseCurrency, &m.RateUsed,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	m, err := scanExpense(r.Pool.QueryRow(ctx, expenseSelect+` WHERE user_id = $1 AND expense_id = $2`, userID, expenseID))
	if err != nil {
		return nil, notFoundOr(err, "expense %s", expenseID)
	}
	expense, err := mapping.ToDomainExpense(m)
	if err != nil {
		return nil, fmt.Errorf("corrupt expense row %s: %w", expenseID, err)
	}
	return &expense, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Expense, error) {
	query, args := listQuery(expenseSelect, "spent_on", "expense_id", filter)
	return collect(ctx, r.Pool, "expenses", query, args, scanExpense, mapping.ToDomainExpense)
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO expenses (expense_id, user_id, category, description, spent_on, recurrence, recurrence_interval,
			amount, currency_code, base_amount, base_currency_code, rate_used,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.ExpenseID, m.UserID, m.Category, m.Description, m.SpentOn, m.Recurrence, m.RecurrenceInterval,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	return r.execOne(ctx, "expense", m.ExpenseID, `
		UPDATE expenses SET category = $3, description = $4, spent_on = $5, recurrence = $6, recurrence_interval = $7,
			amount = $8, currency_code = $9, base_amount = $10, base_currency_code = $11, rate_used = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE user_id = $1 AND expense_id = $2`,
		m.UserID, m.ExpenseID, m.Category, m.Description, m.SpentOn, m.Recurrence, m.RecurrenceInterval,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return r.execOne(ctx, "expense", expenseID, `DELETE FROM expenses WHERE user_id = $1 AND expense_id = $2`, userID, expenseID)
}
