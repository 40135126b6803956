package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents the current net position for one asset.
// It is a materialized cache of the transaction history combined with the
// asset's latest price — recomputable at any time, never a source of truth.
type Holding struct {
	AssetSymbol      string          `json:"asset_symbol"`
	Quantity         decimal.Decimal `json:"quantity"`
	AvgPurchasePrice decimal.Decimal `json:"avg_purchase_price"`
	TotalInvested    decimal.Decimal `json:"total_invested"` // remaining cost basis, fees included

	// CurrentValue and UnrealizedPnL are nil while the asset's price is
	// still pending its first fetch.
	CurrentValue  *decimal.Decimal `json:"current_value,omitempty"`
	UnrealizedPnL *decimal.Decimal `json:"unrealized_pnl,omitempty"`
	LastUpdated   time.Time        `json:"last_updated"`
}
