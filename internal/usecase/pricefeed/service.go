package pricefeed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// PriceFeedService ingests price observations from external fetch pollers.
// Observations are deduplicated by (symbol, observed_at, source) so pollers
// can replay their output idempotently.
type PriceFeedService struct {
	AssetRepo        domain.AssetRepository
	PriceHistoryRepo domain.PriceHistoryRepository
}

// NewPriceFeedService creates a new PriceFeedService instance
func NewPriceFeedService(assetRepo domain.AssetRepository, priceHistoryRepo domain.PriceHistoryRepository) *PriceFeedService {
	return &PriceFeedService{
		AssetRepo:        assetRepo,
		PriceHistoryRepo: priceHistoryRepo,
	}
}

// RecordObservation stores one observed price. A duplicate observation from
// the same source at the same instant is silently dropped rather than
// erroring. When the observation is at least as fresh as the asset's stored
// price, the asset's current_price is refreshed as well.
// Returns whether a new history row was written.
func (s *PriceFeedService) RecordObservation(ctx context.Context, symbol string, price decimal.Decimal, observedAt time.Time, source string) (bool, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return false, domain.NewValidationError("price", "must be positive")
	}
	if source == "" {
		return false, domain.NewValidationError("source", "cannot be empty")
	}
	if observedAt.IsZero() {
		return false, domain.NewValidationError("observed_at", "cannot be empty")
	}

	asset, err := s.AssetRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return false, err
	}

	point := &domain.PricePoint{
		ID:          uuid.New(),
		AssetSymbol: symbol,
		Price:       price,
		Source:      source,
		ObservedAt:  observedAt,
	}

	created, err := s.PriceHistoryRepo.CreateIfAbsent(ctx, point)
	if err != nil {
		return false, err
	}

	// Refresh the catalog price unless a fresher one is already stored
	if asset.PriceUpdatedAt == nil || !observedAt.Before(*asset.PriceUpdatedAt) {
		if err := s.AssetRepo.UpdatePrice(ctx, symbol, price, observedAt); err != nil {
			return created, err
		}
	}

	return created, nil
}

// History retrieves observations for one symbol within [from, to]
func (s *PriceFeedService) History(ctx context.Context, symbol string, from, to time.Time) ([]*domain.PricePoint, error) {
	if _, err := s.AssetRepo.GetBySymbol(ctx, symbol); err != nil {
		return nil, err
	}
	return s.PriceHistoryRepo.History(ctx, symbol, from, to)
}
