package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `symbol, name, category, subcategory, exchange, api_source, api_id, current_price, price_updated_at`

// GetBySymbol retrieves an asset by its symbol
func (r *assetRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE symbol = $1
	`

	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("asset", symbol)
		}
		return nil, fmt.Errorf("failed to get asset by symbol: %w", err)
	}

	return asset, nil
}

// CreateIfAbsent inserts the asset unless the symbol is already taken.
// The unique constraint on symbol turns a concurrent duplicate insert into a
// no-op instead of an error.
func (r *assetRepository) CreateIfAbsent(ctx context.Context, asset *domain.Asset) (bool, error) {
	query := `
		INSERT INTO assets (symbol, name, category, subcategory, exchange, api_source, api_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		asset.Symbol,
		asset.Name,
		string(asset.Category),
		asset.Subcategory,
		asset.Exchange,
		asset.APISource,
		asset.APIID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create asset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}

// UpdatePrice overwrites current_price and price_updated_at for an existing symbol
func (r *assetRepository) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal, observedAt time.Time) error {
	query := `
		UPDATE assets
		SET current_price = $2, price_updated_at = $3
		WHERE symbol = $1
	`

	result, err := r.db.ExecContext(ctx, query, symbol, price.String(), observedAt)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("asset", symbol)
	}

	return nil
}

// List retrieves assets, optionally filtered by category
func (r *assetRepository) List(ctx context.Context, category domain.AssetCategory) ([]*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
	`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, string(category))
	}
	query += ` ORDER BY symbol`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var asset domain.Asset
	var subcategory, exchange, apiSource, apiID sql.NullString
	var priceStr sql.NullString
	var priceUpdatedAt sql.NullTime

	err := row.Scan(
		&asset.Symbol,
		&asset.Name,
		&asset.Category,
		&subcategory,
		&exchange,
		&apiSource,
		&apiID,
		&priceStr,
		&priceUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	asset.Subcategory = subcategory.String
	asset.Exchange = exchange.String
	asset.APISource = apiSource.String
	asset.APIID = apiID.String

	if priceStr.Valid {
		price, err := decimal.NewFromString(priceStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse current_price: %w", err)
		}
		asset.CurrentPrice = &price
	}
	if priceUpdatedAt.Valid {
		t := priceUpdatedAt.Time
		asset.PriceUpdatedAt = &t
	}

	return &asset, nil
}
