package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

// Upsert inserts or replaces the single holding row for a symbol
func (r *holdingRepository) Upsert(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (asset_symbol, quantity, avg_purchase_price, total_invested,
			current_value, unrealized_pnl, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (asset_symbol) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			avg_purchase_price = EXCLUDED.avg_purchase_price,
			total_invested = EXCLUDED.total_invested,
			current_value = EXCLUDED.current_value,
			unrealized_pnl = EXCLUDED.unrealized_pnl,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.AssetSymbol,
		holding.Quantity.String(),
		holding.AvgPurchasePrice.String(),
		holding.TotalInvested.String(),
		nullableDecimal(holding.CurrentValue),
		nullableDecimal(holding.UnrealizedPnL),
		holding.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding: %w", err)
	}

	return nil
}

// GetBySymbol retrieves the holding for one symbol
func (r *holdingRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Holding, error) {
	query := `
		SELECT asset_symbol, quantity, avg_purchase_price, total_invested,
			current_value, unrealized_pnl, last_updated
		FROM holdings
		WHERE asset_symbol = $1
	`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, query, symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("holding", symbol)
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return holding, nil
}

// List retrieves all holdings ordered by symbol
func (r *holdingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	query := `
		SELECT asset_symbol, quantity, avg_purchase_price, total_invested,
			current_value, unrealized_pnl, last_updated
		FROM holdings
		ORDER BY asset_symbol
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]*domain.Holding, 0)
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}

	return holdings, rows.Err()
}

func scanHolding(row rowScanner) (*domain.Holding, error) {
	var holding domain.Holding
	var quantityStr, avgStr, investedStr string
	var valueStr, pnlStr sql.NullString

	err := row.Scan(
		&holding.AssetSymbol,
		&quantityStr,
		&avgStr,
		&investedStr,
		&valueStr,
		&pnlStr,
		&holding.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if holding.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	if holding.AvgPurchasePrice, err = decimal.NewFromString(avgStr); err != nil {
		return nil, fmt.Errorf("failed to parse avg_purchase_price: %w", err)
	}
	if holding.TotalInvested, err = decimal.NewFromString(investedStr); err != nil {
		return nil, fmt.Errorf("failed to parse total_invested: %w", err)
	}

	if holding.CurrentValue, err = parseNullableDecimal(valueStr); err != nil {
		return nil, fmt.Errorf("failed to parse current_value: %w", err)
	}
	if holding.UnrealizedPnL, err = parseNullableDecimal(pnlStr); err != nil {
		return nil, fmt.Errorf("failed to parse unrealized_pnl: %w", err)
	}

	return &holding, nil
}

func nullableDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseNullableDecimal(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
