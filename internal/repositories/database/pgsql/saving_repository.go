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

type PgxSavingRepository struct {
	BaseRepository
}

func newPgxSavingRepository(db *pgxpool.Pool) *PgxSavingRepository {
	return &PgxSavingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SavingRepositoryFacade = (*PgxSavingRepository)(nil)

const savingSelect = `SELECT saving_id, user_id, goal, target_amount, target_date,
	amount, currency_code, base_amount, base_currency_code, rate_used,
	created_at, created_by, last_updated_at, last_updated_by FROM savings`

func scanSaving(row pgx.Row) (models.Saving, error) {
	var m models.Saving
	err := row.Scan(&m.SavingID, &m.UserID, &m.Goal, &m.TargetAmount, &m.TargetDate,
		&m.Amount, &m.Currency, &m.BaseAmount, &m.BaseCurrency, &m.RateUsed,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxSavingRepository) FindSavingByID(ctx context.Context, userID, savingID string) (*domain.Saving, error) {
	m, err := scanSaving(r.Pool.QueryRow(ctx, savingSelect+` WHERE user_id = $1 AND saving_id = $2`, userID, savingID))
	if err != nil {
		return nil, notFoundOr(err, "saving %s", savingID)
	}
	saving, err := mapping.ToDomainSaving(m)
	if err != nil {
		return nil, fmt.Errorf("corrupt saving row %s: %w", savingID, err)
	}
	return &saving, nil
}

// ListSavings dates a goal by its last update, the moment its balance was last known.
func (r *PgxSavingRepository) ListSavings(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Saving, error) {
	query, args := listQuery(savingSelect, "last_updated_at", "saving_id", filter)
	return collect(ctx, r.Pool, "savings", query, args, scanSaving, mapping.ToDomainSaving)
}

func (r *PgxSavingRepository) SaveSaving(ctx context.Context, saving domain.Saving) error {
	m := mapping.ToModelSaving(saving)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO savings (saving_id, user_id, goal, target_amount, target_date,
			amount, currency_code, base_amount, base_currency_code, rate_used,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.SavingID, m.UserID, m.Goal, m.TargetAmount, m.TargetDate,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save saving %s: %w", m.SavingID, err)
	}
	return nil
}

func (r *PgxSavingRepository) UpdateSaving(ctx context.Context, saving domain.Saving) error {
	m := mapping.ToModelSaving(saving)
	return r.execOne(ctx, "saving", m.SavingID, `
		UPDATE savings SET goal = $3, target_amount = $4, target_date = $5,
			amount = $6, currency_code = $7, base_amount = $8, base_currency_code = $9, rate_used = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE user_id = $1 AND saving_id = $2`,
		m.UserID, m.SavingID, m.Goal, m.TargetAmount, m.TargetDate,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxSavingRepository) DeleteSaving(ctx context.Context, userID, savingID string) error {
	return r.execOne(ctx, "saving", savingID, `DELETE FROM savings WHERE user_id = $1 AND saving_id = $2`, userID, savingID)
}
