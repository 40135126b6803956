package holdings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// HoldingsService recomputes the materialized holdings cache from the
// transaction ledger. Recomputation is always a full replay of the symbol's
// history — no incremental updates, so repeated runs cannot accumulate drift.
type HoldingsService struct {
	AssetRepo       domain.AssetRepository
	TransactionRepo domain.TransactionRepository
	HoldingRepo     domain.HoldingRepository
}

// NewHoldingsService creates a new HoldingsService instance
func NewHoldingsService(
	assetRepo domain.AssetRepository,
	transactionRepo domain.TransactionRepository,
	holdingRepo domain.HoldingRepository,
) *HoldingsService {
	return &HoldingsService{
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
		HoldingRepo:     holdingRepo,
	}
}

// Recompute derives the holding for one symbol from its full transaction
// history and upserts the single row.
//
// Cost basis uses the weighted-average convention: buys and trade-ins add
// quantity and cost, sells and trade-outs reduce quantity and release cost
// basis at the current average price, leaving the average unchanged. Fees on
// net-increasing transactions roll into the cost basis.
//
// The result is a pure function of ledger + current price: recomputing with
// no new transactions yields identical output, and an empty ledger yields a
// zero position.
func (s *HoldingsService) Recompute(ctx context.Context, symbol string) (*domain.Holding, error) {
	asset, err := s.AssetRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	txs, err := s.TransactionRepo.ListBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	quantity := decimal.Zero
	costBasis := decimal.Zero
	avgPrice := decimal.Zero

	for _, tx := range txs {
		if tx.Type.IncreasesPosition() {
			quantity = quantity.Add(tx.Quantity)
			costBasis = costBasis.Add(tx.Quantity.Mul(tx.PricePerUnit)).Add(tx.Fees)
			if quantity.IsPositive() {
				avgPrice = costBasis.Div(quantity)
			}
		} else {
			// Release cost basis at the current average; the average
			// itself does not move on a sale.
			quantity = quantity.Sub(tx.Quantity)
			costBasis = costBasis.Sub(tx.Quantity.Mul(avgPrice))
			if !quantity.IsPositive() {
				// Position fully closed (or oversold): basis resets
				quantity = decimal.Max(quantity, decimal.Zero)
				costBasis = decimal.Zero
				avgPrice = decimal.Zero
			}
		}
	}

	holding := &domain.Holding{
		AssetSymbol:      symbol,
		Quantity:         quantity,
		AvgPurchasePrice: avgPrice,
		TotalInvested:    costBasis,
		LastUpdated:      time.Now(),
	}

	if asset.CurrentPrice != nil {
		value := quantity.Mul(*asset.CurrentPrice)
		pnl := value.Sub(costBasis)
		holding.CurrentValue = &value
		holding.UnrealizedPnL = &pnl
	}

	if err := s.HoldingRepo.Upsert(ctx, holding); err != nil {
		return nil, err
	}

	return holding, nil
}

// RecomputeAll recomputes the holding for every symbol that has transactions
func (s *HoldingsService) RecomputeAll(ctx context.Context) ([]*domain.Holding, error) {
	symbols, err := s.TransactionRepo.Symbols(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Holding, 0, len(symbols))
	for _, symbol := range symbols {
		holding, err := s.Recompute(ctx, symbol)
		if err != nil {
			return nil, err
		}
		result = append(result, holding)
	}

	return result, nil
}

// ListHoldings retrieves the current holdings cache
func (s *HoldingsService) ListHoldings(ctx context.Context) ([]*domain.Holding, error) {
	return s.HoldingRepo.List(ctx)
}
