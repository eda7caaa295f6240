package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/models"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository stores one base-relative rate per currency.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `currency_code, rate, last_updated, is_manual`

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(&m.CurrencyCode, &m.Rate, &m.LastUpdated, &m.IsManual)
	return m, err
}

func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx,
		`SELECT `+exchangeRateColumns+` FROM exchange_rates WHERE currency_code = $1`, currencyCode))
	if err != nil {
		return nil, notFoundOr(err, "exchange rate %s", currencyCode)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+exchangeRateColumns+` FROM exchange_rates ORDER BY currency_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	var ms []models.ExchangeRate
	for rows.Next() {
		m, err := scanExchangeRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(ms), nil
}

func (r *PgxExchangeRateRepository) FindLastAutomaticUpdate(ctx context.Context) (*time.Time, error) {
	var last *time.Time
	err := r.Pool.QueryRow(ctx,
		`SELECT MAX(last_updated) FROM exchange_rates WHERE is_manual = FALSE`).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to query last automatic update: %w", err)
	}
	if last != nil {
		utc := last.UTC()
		last = &utc
	}
	return last, nil
}

func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (currency_code, rate, last_updated, is_manual)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated = EXCLUDED.last_updated,
			is_manual = EXCLUDED.is_manual`,
		m.CurrencyCode, m.Rate, m.LastUpdated, m.IsManual)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s: %w", m.CurrencyCode, err)
	}
	return nil
}

// mergeAutomaticRateSQL returns no row when the stored rate is manual.
const mergeAutomaticRateSQL = `
	INSERT INTO exchange_rates (currency_code, rate, last_updated, is_manual)
	VALUES ($1, $2, $3, FALSE)
	ON CONFLICT (currency_code) DO UPDATE SET
		rate = EXCLUDED.rate,
		last_updated = EXCLUDED.last_updated
	WHERE exchange_rates.is_manual = FALSE
	RETURNING currency_code`

type batchRows interface {
	QueryRow() pgx.Row
}

// readMergeOutcome reads one RETURNING row per queued upsert. A missing row means
// a manual rate appeared after the lock was taken and the upsert was blocked.
func readMergeOutcome(br batchRows, queued []string) (merged, skipped []string, err error) {
	for _, code := range queued {
		var written string
		switch err := br.QueryRow().Scan(&written); {
		case errors.Is(err, pgx.ErrNoRows):
			skipped = append(skipped, code)
		case err != nil:
			return nil, nil, fmt.Errorf("upsert %s: %w", code, err)
		default:
			merged = append(merged, written)
		}
	}
	return merged, skipped, nil
}

// MergeAutomaticRates locks the manual rows it is about to skip so a concurrent
// SetRate cannot slip a manual row in between the check and the upsert.
func (r *PgxExchangeRateRepository) MergeAutomaticRates(ctx context.Context, quotes []domain.RateQuote, at time.Time) (domain.MergeResult, error) {
	result := domain.MergeResult{MergedAt: at}
	if len(quotes) == 0 {
		return result, nil
	}
	codes := make([]string, len(quotes))
	for i, q := range quotes {
		codes[i] = q.CurrencyCode
	}

	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT currency_code FROM exchange_rates WHERE currency_code = ANY($1) AND is_manual = TRUE FOR UPDATE`, codes)
		if err != nil {
			return fmt.Errorf("failed to lock manual rates: %w", err)
		}
		manual, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("failed to read manual rates: %w", err)
		}
		skip := make(map[string]struct{}, len(manual))
		for _, code := range manual {
			skip[code] = struct{}{}
		}

		batch := &pgx.Batch{}
		var queued []string
		for _, q := range quotes {
			if _, ok := skip[q.CurrencyCode]; ok {
				result.SkippedManual = append(result.SkippedManual, q.CurrencyCode)
				continue
			}
			batch.Queue(mergeAutomaticRateSQL, q.CurrencyCode, q.Rate, at)
			queued = append(queued, q.CurrencyCode)
		}
		if batch.Len() == 0 {
			return nil
		}
		br := tx.SendBatch(ctx, batch)
		merged, skipped, err := readMergeOutcome(br, queued)
		if closeErr := br.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("failed to merge exchange rates: %w", err)
		}
		result.Merged = merged
		result.SkippedManual = append(result.SkippedManual, skipped...)
		return nil
	})
	if err != nil {
		return domain.MergeResult{}, err
	}
	return result, nil
}

func (r *PgxExchangeRateRepository) ClearManualFlag(ctx context.Context, currencyCode string) error {
	return r.execOne(ctx, "exchange rate", currencyCode,
		`UPDATE exchange_rates SET is_manual = FALSE WHERE currency_code = $1`, currencyCode)
}
