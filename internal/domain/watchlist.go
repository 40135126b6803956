package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WatchlistItem represents a user-curated asset entry with optional alert
// thresholds. Name and Category are denormalized copies taken from the Asset
// at insertion time so watchlist reads never need a join; they are allowed to
// go stale if the Asset changes later.
//
// The same symbol may appear more than once — the watchlist lifecycle is
// independent of both holdings and the asset catalog.
type WatchlistItem struct {
	ID          uuid.UUID     `json:"id"`
	AssetSymbol string        `json:"asset_symbol"`
	Name        string        `json:"name"`
	Category    AssetCategory `json:"category"`
	Notes       string        `json:"notes,omitempty"`

	TargetPrice  *decimal.Decimal `json:"target_price,omitempty"`
	AlertPercent *decimal.Decimal `json:"alert_percent,omitempty"`

	// BaselinePrice is the asset's price at the moment the item was added,
	// nil if the price was still pending. Alert evaluation measures target
	// crossings and percent moves against this baseline.
	BaselinePrice *decimal.Decimal `json:"baseline_price,omitempty"`

	ActiveAlerts bool      `json:"active_alerts"`
	AddedAt      time.Time `json:"added_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AlertReason explains why a watchlist item triggered
type AlertReason string

const (
	AlertTargetCrossed AlertReason = "target_crossed"
	AlertPercentMove   AlertReason = "percent_move"
)

// AlertEvent represents one triggered watchlist alert. Evaluation is
// read-only: events are returned to the caller, never written back.
type AlertEvent struct {
	Item         *WatchlistItem  `json:"item"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Reason       AlertReason     `json:"reason"`
}
