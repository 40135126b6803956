package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of ledger event
type TransactionType string

const (
	TransactionBuy      TransactionType = "buy"
	TransactionSell     TransactionType = "sell"
	TransactionTradeIn  TransactionType = "trade_in"
	TransactionTradeOut TransactionType = "trade_out"
)

// Valid reports whether the type belongs to the closed enumeration
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBuy, TransactionSell, TransactionTradeIn, TransactionTradeOut:
		return true
	}
	return false
}

// IncreasesPosition reports whether the type adds to the net position.
// Buys and trade-ins add; sells and trade-outs subtract.
func (t TransactionType) IncreasesPosition() bool {
	return t == TransactionBuy || t == TransactionTradeIn
}

// Transaction represents a single ledger event referencing an asset.
// The ledger is append-only from the domain's perspective: rows are never
// updated or deleted outside a corrective migration.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Type         TransactionType `json:"type"`
	AssetSymbol  string          `json:"asset_symbol"`
	Exchange     string          `json:"exchange,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalAmount  decimal.Decimal `json:"total_amount"` // must equal Quantity * PricePerUnit
	Fees         decimal.Decimal `json:"fees"`
	Notes        string          `json:"notes,omitempty"`
	Date         time.Time       `json:"transaction_date"`

	// Enrichment fields captured at purchase time
	PurchaseLocation string `json:"purchase_location,omitempty"`
	PurchaseTime     string `json:"purchase_time,omitempty"` // HH:MM:SS
	PurchaseMethod   string `json:"purchase_method,omitempty"`
	Reference        string `json:"transaction_reference,omitempty"`
	Currency         string `json:"currency,omitempty"`
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
// CRITICAL: TotalAmount must equal Quantity * PricePerUnit — the store never
// recomputes the product, so drift is rejected here instead of persisted.
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return NewValidationError("type", "must be one of buy, sell, trade_in, trade_out")
	}
	if t.AssetSymbol == "" {
		return NewValidationError("asset_symbol", "cannot be empty")
	}
	if t.Quantity.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("quantity", "must be positive")
	}
	if t.PricePerUnit.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("price_per_unit", "must be positive")
	}
	if t.Fees.IsNegative() {
		return NewValidationError("fees", "cannot be negative")
	}
	if t.Date.IsZero() {
		return NewValidationError("transaction_date", "cannot be empty")
	}
	if t.PurchaseTime != "" {
		if _, err := time.Parse("15:04:05", t.PurchaseTime); err != nil {
			return NewValidationError("purchase_time", "must be in HH:MM:SS format")
		}
	}

	expected := t.Quantity.Mul(t.PricePerUnit)
	if !t.TotalAmount.Equal(expected) {
		return &ArithmeticMismatchError{Expected: expected, Got: t.TotalAmount}
	}

	return nil
}
