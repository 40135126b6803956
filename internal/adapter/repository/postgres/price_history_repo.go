package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// priceHistoryRepository implements domain.PriceHistoryRepository
type priceHistoryRepository struct {
	db *DB
}

// NewPriceHistoryRepository creates a new price history repository
func NewPriceHistoryRepository(db *DB) domain.PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

// CreateIfAbsent inserts the observation unless its
// (asset_symbol, observed_at, source) triple already exists. Duplicate
// observations replayed by upstream pollers collapse into no-ops.
func (r *priceHistoryRepository) CreateIfAbsent(ctx context.Context, point *domain.PricePoint) (bool, error) {
	query := `
		INSERT INTO price_history (id, asset_symbol, price, source, observed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (asset_symbol, observed_at, source) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		point.ID,
		point.AssetSymbol,
		point.Price.String(),
		point.Source,
		point.ObservedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert price observation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}

// History retrieves observations for one symbol within [from, to], oldest first
func (r *priceHistoryRepository) History(ctx context.Context, symbol string, from, to time.Time) ([]*domain.PricePoint, error) {
	query := `
		SELECT id, asset_symbol, price, source, observed_at
		FROM price_history
		WHERE asset_symbol = $1 AND observed_at BETWEEN $2 AND $3
		ORDER BY observed_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}
	defer rows.Close()

	points := make([]*domain.PricePoint, 0)
	for rows.Next() {
		var point domain.PricePoint
		var priceStr string

		err := rows.Scan(
			&point.ID,
			&point.AssetSymbol,
			&priceStr,
			&point.Source,
			&point.ObservedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price observation: %w", err)
		}

		if point.Price, err = decimal.NewFromString(priceStr); err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}

		points = append(points, &point)
	}

	return points, rows.Err()
}
