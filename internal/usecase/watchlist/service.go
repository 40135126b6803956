package watchlist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// WatchlistService manages user-curated watch entries and evaluates their
// alert thresholds against current catalog prices. Evaluation is read-only:
// it never writes derived state back into the store.
type WatchlistService struct {
	AssetRepo     domain.AssetRepository
	WatchlistRepo domain.WatchlistRepository
}

// NewWatchlistService creates a new WatchlistService instance
func NewWatchlistService(assetRepo domain.AssetRepository, watchlistRepo domain.WatchlistRepository) *WatchlistService {
	return &WatchlistService{
		AssetRepo:     assetRepo,
		WatchlistRepo: watchlistRepo,
	}
}

// AddInput carries the fields for a new watchlist entry
type AddInput struct {
	AssetSymbol  string
	Notes        string
	TargetPrice  *decimal.Decimal
	AlertPercent *decimal.Decimal
	ActiveAlerts bool
}

// Add creates a watchlist item for an existing asset. Name and category are
// copied from the asset at insertion time, and the asset's current price is
// captured as the alert baseline. The copies are deliberately allowed to go
// stale — watchlist reads must stay join-free.
// Fails with NotFound if the symbol is unknown.
func (s *WatchlistService) Add(ctx context.Context, input AddInput) (*domain.WatchlistItem, error) {
	if input.TargetPrice != nil && input.TargetPrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("target_price", "must be positive when set")
	}
	if input.AlertPercent != nil && input.AlertPercent.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("alert_percent", "must be positive when set")
	}

	asset, err := s.AssetRepo.GetBySymbol(ctx, input.AssetSymbol)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &domain.WatchlistItem{
		ID:            uuid.New(),
		AssetSymbol:   asset.Symbol,
		Name:          asset.Name,
		Category:      asset.Category,
		Notes:         input.Notes,
		TargetPrice:   input.TargetPrice,
		AlertPercent:  input.AlertPercent,
		BaselinePrice: asset.CurrentPrice,
		ActiveAlerts:  input.ActiveAlerts,
		AddedAt:       now,
		UpdatedAt:     now,
	}

	if err := s.WatchlistRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Remove deletes a watchlist item
func (s *WatchlistService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.WatchlistRepo.Delete(ctx, id)
}

// SetAlertsActive toggles alerting for one item
func (s *WatchlistService) SetAlertsActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.WatchlistRepo.SetAlertsActive(ctx, id, active)
}

// List retrieves all watchlist items
func (s *WatchlistService) List(ctx context.Context) ([]*domain.WatchlistItem, error) {
	return s.WatchlistRepo.List(ctx)
}

// EvaluateAlerts joins the items with active_alerts against current catalog
// prices and returns the ones that triggered. An item triggers when the
// price crossed its target relative to the baseline, or moved by at least
// alert_percent from the baseline. Items whose asset price is still pending
// are skipped.
func (s *WatchlistService) EvaluateAlerts(ctx context.Context) ([]*domain.AlertEvent, error) {
	items, err := s.WatchlistRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]*domain.AlertEvent, 0)
	for _, item := range items {
		asset, err := s.AssetRepo.GetBySymbol(ctx, item.AssetSymbol)
		if err != nil {
			if domain.IsNotFound(err) {
				// Asset removed from the catalog after the item was added;
				// the watchlist lifecycle is independent, so just skip it.
				continue
			}
			return nil, err
		}
		if asset.CurrentPrice == nil {
			continue
		}
		price := *asset.CurrentPrice

		if reason, triggered := evaluate(item, price); triggered {
			events = append(events, &domain.AlertEvent{
				Item:         item,
				CurrentPrice: price,
				Reason:       reason,
			})
		}
	}

	return events, nil
}

func evaluate(item *domain.WatchlistItem, price decimal.Decimal) (domain.AlertReason, bool) {
	if item.TargetPrice != nil {
		target := *item.TargetPrice
		// Baseline below target means we watch for an upward crossing,
		// baseline above target for a downward one. A missing baseline
		// defaults to watching upward.
		if item.BaselinePrice == nil || item.BaselinePrice.LessThan(target) {
			if price.GreaterThanOrEqual(target) {
				return domain.AlertTargetCrossed, true
			}
		} else if price.LessThanOrEqual(target) {
			return domain.AlertTargetCrossed, true
		}
	}

	if item.AlertPercent != nil && item.BaselinePrice != nil && item.BaselinePrice.IsPositive() {
		move := price.Sub(*item.BaselinePrice).Abs().
			Div(*item.BaselinePrice).
			Mul(decimal.NewFromInt(100))
		if move.GreaterThanOrEqual(*item.AlertPercent) {
			return domain.AlertPercentMove, true
		}
	}

	return "", false
}
