package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricePoint represents one observed price for an asset from one source.
// Entries are deduplicated by (asset_symbol, observed_at, source): the same
// source may not report two different prices for the same instant.
type PricePoint struct {
	ID          uuid.UUID       `json:"id"`
	AssetSymbol string          `json:"asset_symbol"`
	Price       decimal.Decimal `json:"price"`
	Source      string          `json:"source"`
	ObservedAt  time.Time       `json:"observed_at"`
}
