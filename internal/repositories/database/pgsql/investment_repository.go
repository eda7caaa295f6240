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

type PgxInvestmentRepository struct {
	BaseRepository
}

func newPgxInvestmentRepository(db *pgxpool.Pool) *PgxInvestmentRepository {
	return &PgxInvestmentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.InvestmentRepositoryFacade = (*PgxInvestmentRepository)(nil)

const investmentSelect = `SELECT investment_id, user_id, symbol, name, asset_type, quantity,
	purchase_price, current_price, purchased_on, price_updated_at,
	amount, currency_code, base_amount, base_currency_code, rate_used,
	created_at, created_by, last_updated_at, last_updated_by FROM investments`

func scanInvestment(row pgx.Row) (models.Investment, error) {
	var m models.Investment
	err := row.Scan(&m.InvestmentID, &m.UserID, &m.Symbol, &m.Name, &m.AssetType, &m.Quantity,
		&m.PurchasePrice, &m.CurrentPrice, &m.PurchasedOn, &m.PriceUpdatedAt,
		&m.Amount, &m.Currency, &m.BaseAmount, &m.BaseCurrency, &m.RateUsed,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxInvestmentRepository) FindInvestmentByID(ctx context.Context, userID, investmentID string) (*domain.Investment, error) {
	m, err := scanInvestment(r.Pool.QueryRow(ctx, investmentSelect+` WHERE user_id = $1 AND investment_id = $2`, userID, investmentID))
	if err != nil {
		return nil, notFoundOr(err, "investment %s", investmentID)
	}
	inv, err := mapping.ToDomainInvestment(m)
	if err != nil {
		return nil, fmt.Errorf("corrupt investment row %s: %w", investmentID, err)
	}
	return &inv, nil
}

func (r *PgxInvestmentRepository) ListInvestments(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Investment, error) {
	query, args := listQuery(investmentSelect, "COALESCE(price_updated_at, purchased_on)", "investment_id", filter)
	return collect(ctx, r.Pool, "investments", query, args, scanInvestment, mapping.ToDomainInvestment)
}

func (r *PgxInvestmentRepository) SaveInvestment(ctx context.Context, investment domain.Investment) error {
	m := mapping.ToModelInvestment(investment)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO investments (investment_id, user_id, symbol, name, asset_type, quantity,
			purchase_price, current_price, purchased_on, price_updated_at,
			amount, currency_code, base_amount, base_currency_code, rate_used,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		m.InvestmentID, m.UserID, m.Symbol, m.Name, m.AssetType, m.Quantity,
		m.PurchasePrice, m.CurrentPrice, m.PurchasedOn, m.PriceUpdatedAt,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save investment %s: %w", m.InvestmentID, err)
	}
	return nil
}

func (r *PgxInvestmentRepository) UpdateInvestment(ctx context.Context, investment domain.Investment) error {
	m := mapping.ToModelInvestment(investment)
	return r.execOne(ctx, "investment", m.InvestmentID, `
		UPDATE investments SET symbol = $3, name = $4, asset_type = $5, quantity = $6,
			purchase_price = $7, current_price = $8, purchased_on = $9, price_updated_at = $10,
			amount = $11, currency_code = $12, base_amount = $13, base_currency_code = $14, rate_used = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE user_id = $1 AND investment_id = $2`,
		m.UserID, m.InvestmentID, m.Symbol, m.Name, m.AssetType, m.Quantity,
		m.PurchasePrice, m.CurrentPrice, m.PurchasedOn, m.PriceUpdatedAt,
		m.Amount, m.Currency, m.BaseAmount, m.BaseCurrency, m.RateUsed,
		m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxInvestmentRepository) DeleteInvestment(ctx context.Context, userID, investmentID string) error {
	return r.execOne(ctx, "investment", investmentID, `DELETE FROM investments WHERE user_id = $1 AND investment_id = $2`, userID, investmentID)
}
