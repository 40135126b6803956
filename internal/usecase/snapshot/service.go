package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-tracker/internal/domain"
)

// SnapshotService records the once-per-day valuation archive. It is
// stateless between invocations and trusts the external scheduler for
// timing; duplicate invocations for the same day are safe no-ops.
type SnapshotService struct {
	HoldingRepo  domain.HoldingRepository
	SnapshotRepo domain.SnapshotRepository
}

// NewSnapshotService creates a new SnapshotService instance
func NewSnapshotService(holdingRepo domain.HoldingRepository, snapshotRepo domain.SnapshotRepository) *SnapshotService {
	return &SnapshotService{
		HoldingRepo:  holdingRepo,
		SnapshotRepo: snapshotRepo,
	}
}

// RecordDaily freezes the current state of every holding into a snapshot row
// for the given calendar day. Pairs that already have a snapshot are skipped
// silently, guaranteeing at-most-once-per-day semantics under duplicate
// invocation. Returns the snapshots actually written.
func (s *SnapshotService) RecordDaily(ctx context.Context, date time.Time) ([]*domain.DailySnapshot, error) {
	if date.IsZero() {
		return nil, domain.NewValidationError("snapshot_date", "cannot be empty")
	}
	day := truncateToDay(date)

	holdings, err := s.HoldingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	written := make([]*domain.DailySnapshot, 0, len(holdings))
	for _, holding := range holdings {
		snap := &domain.DailySnapshot{
			ID:            uuid.New(),
			AssetSymbol:   holding.AssetSymbol,
			SnapshotDate:  day,
			Quantity:      holding.Quantity,
			TotalValue:    holding.CurrentValue,
			UnrealizedPnL: holding.UnrealizedPnL,
			CreatedAt:     time.Now(),
		}
		if holding.CurrentValue != nil && holding.Quantity.IsPositive() {
			price := holding.CurrentValue.Div(holding.Quantity)
			snap.PricePerUnit = &price
		}

		created, err := s.SnapshotRepo.CreateIfAbsent(ctx, snap)
		if err != nil {
			return nil, err
		}
		if created {
			written = append(written, snap)
		}
	}

	return written, nil
}

// ListByDate retrieves the archive for one calendar day
func (s *SnapshotService) ListByDate(ctx context.Context, date time.Time) ([]*domain.DailySnapshot, error) {
	return s.SnapshotRepo.ListByDate(ctx, truncateToDay(date))
}

// ListBySymbol retrieves the archive for one symbol within [from, to]
func (s *SnapshotService) ListBySymbol(ctx context.Context, symbol string, from, to time.Time) ([]*domain.DailySnapshot, error) {
	return s.SnapshotRepo.ListBySymbol(ctx, symbol, truncateToDay(from), truncateToDay(to))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
