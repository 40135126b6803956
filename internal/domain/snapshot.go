package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySnapshot represents a point-in-time valuation record for one asset on
// one calendar day. At most one row exists per (asset_symbol, snapshot_date);
// once written it is immutable history.
type DailySnapshot struct {
	ID           uuid.UUID       `json:"id"`
	AssetSymbol  string          `json:"asset_symbol"`
	SnapshotDate time.Time       `json:"snapshot_date"` // date component only
	Quantity     decimal.Decimal `json:"quantity"`

	// Nil when the asset's price was still pending at snapshot time
	PricePerUnit  *decimal.Decimal `json:"price_per_unit,omitempty"`
	TotalValue    *decimal.Decimal `json:"total_value,omitempty"`
	UnrealizedPnL *decimal.Decimal `json:"unrealized_pnl,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
