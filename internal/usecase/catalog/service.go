package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// CatalogService handles asset catalog operations. The catalog is the
// referential integrity anchor for every other entity: transactions,
// holdings, snapshots, price history and watchlist all reference its symbols.
type CatalogService struct {
	AssetRepo domain.AssetRepository
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(assetRepo domain.AssetRepository) *CatalogService {
	return &CatalogService{AssetRepo: assetRepo}
}

// UpsertAssetInput carries the fields for catalog seeding
type UpsertAssetInput struct {
	Symbol      string
	Name        string
	Category    domain.AssetCategory
	Subcategory string
	Exchange    string
	APISource   string
	APIID       string
}

// UpsertAsset creates the asset if the symbol is absent and is a no-op for
// existing rows (idempotent seeding). Prices are never written here: a new
// asset starts with its price pending until the first live fetch.
// Returns the asset's current catalog row and whether it was created.
func (s *CatalogService) UpsertAsset(ctx context.Context, input UpsertAssetInput) (*domain.Asset, bool, error) {
	asset := &domain.Asset{
		Symbol:      input.Symbol,
		Name:        input.Name,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Exchange:    input.Exchange,
		APISource:   input.APISource,
		APIID:       input.APIID,
	}

	// Validate against the closed category set before any write
	if err := asset.Validate(); err != nil {
		return nil, false, err
	}

	created, err := s.AssetRepo.CreateIfAbsent(ctx, asset)
	if err != nil {
		return nil, false, err
	}
	if created {
		return asset, true, nil
	}

	// Symbol already existed; the insert was a no-op. Return the live row.
	existing, err := s.AssetRepo.GetBySymbol(ctx, input.Symbol)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// RefreshPrice overwrites current_price and price_updated_at for an existing
// symbol. Unlike UpsertAsset this always writes; it fails with NotFound if
// the symbol is unknown.
func (s *CatalogService) RefreshPrice(ctx context.Context, symbol string, price decimal.Decimal, observedAt time.Time) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError("price", "must be positive")
	}
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	return s.AssetRepo.UpdatePrice(ctx, symbol, price, observedAt)
}

// GetAsset retrieves one asset by symbol
func (s *CatalogService) GetAsset(ctx context.Context, symbol string) (*domain.Asset, error) {
	return s.AssetRepo.GetBySymbol(ctx, symbol)
}

// ListAssets retrieves assets, optionally filtered by category.
// A non-empty category outside the closed set fails with ValidationError.
func (s *CatalogService) ListAssets(ctx context.Context, category domain.AssetCategory) ([]*domain.Asset, error) {
	if category != "" && !category.Valid() {
		return nil, domain.NewValidationError("category", "must be one of stocks, etfs, crypto, fiat")
	}
	return s.AssetRepo.List(ctx, category)
}
