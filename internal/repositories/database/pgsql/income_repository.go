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

type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(db *pgxpool.Pool) *PgxIncomeRepository {
	return &PgxIncomeRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

const incomeSelect = `SELECT income_id, user_id, source, description, received_on, recurrence, recurrence_interval,
	amount, currency_code, base_amount, base_currency_code, rate_used,
	created_at, created_by, last_updated_at, last_updated_by FROM incomes`

func scanIncome(row pgx.Row) (models.Income, error) {
	var m models.Income
	err := row.Scan(&m.IncomeID, &m.UserID, &m.Source, &m.Description, &m.ReceivedOn, &m.Recurrence, &m.RecurrenceInterval,
		&m.Amount, &m.Currency, &m.BaseAmount, &m.BaseCurrency, &m.RateUsed,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	m, err := scanIncome(r.Pool.QueryRow(ctx, incomeSelect+` WHERE user_id = $1 AND income_id = $2`, userID, incomeID))
	if err != nil {
		return nil, notFoundOr(err, "income %s", incomeID)
	}
	income, err := mapping.ToDomainIncome(m)
	if err != nil {
		return nil, fmt.Errorf("corrupt income row %s: %w", incomeID, err)
	}
	return &income, nil
}

func (r *PgxIncomeRepository) ListIncomes(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Income, error) {
	query, args := listQuery(incomeSelect, "received_on", "income_id", filter)
	return collect(ctx, r.Pool, "incomes", query, args, scanIncome, mapping.ToDomainIncome)
}

func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO incomes (income_id, user_id, source, description, received_on, recurrence, recurrence_interval,
			amount, currency_code, base_amount, base_currency_code, rate_used,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.IncomeID, m.UserID, m.Source, m.Description, m.ReceivedOn, m.Recurrence, m.RecurrenceInterval,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save income %s: %w", m.IncomeID, err)
	}
	return nil
}

func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	return r.execOne(ctx, "income", m.IncomeID, `
		UPDATE incomes SET source = $3, description = $4, received_on = $5, recurrence = $6, recurrence_interval = $7,
			amount = $8, currency_code = $9, base_amount = $10, base_currency_code = $11, rate_used = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE user_id = $1 AND income_id = $2`,
		m.UserID, m.IncomeID, m.Source, m.Description, m.ReceivedOn, m.Recurrence, m.RecurrenceInterval,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxIncomeRepository) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	return r.execOne(ctx, "income", incomeID, `DELETE FROM incomes WHERE user_id = $1 AND income_id = $2`, userID, incomeID)
}
