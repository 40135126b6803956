package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetCategory represents the category of a tracked instrument
type AssetCategory string

const (
	CategoryStocks AssetCategory = "stocks"
	CategoryETFs   AssetCategory = "etfs"
	CategoryCrypto AssetCategory = "crypto"
	CategoryFiat   AssetCategory = "fiat"
)

// Valid reports whether the category belongs to the closed enumeration
func (c AssetCategory) Valid() bool {
	switch c {
	case CategoryStocks, CategoryETFs, CategoryCrypto, CategoryFiat:
		return true
	}
	return false
}

// Asset represents a tradable/trackable instrument in the domain layer.
// The symbol is the stable identifier every other entity references; it is
// immutable once created.
type Asset struct {
	Symbol      string        `json:"symbol"`
	Name        string        `json:"name"`
	Category    AssetCategory `json:"category"`
	Subcategory string        `json:"subcategory,omitempty"`
	Exchange    string        `json:"exchange,omitempty"`

	// Coordinates for the external price-fetch provider
	APISource string `json:"api_source,omitempty"`
	APIID     string `json:"api_id,omitempty"`

	// CurrentPrice is nil until the first live fetch succeeds.
	// A pending price is an absent value, never a sentinel zero.
	CurrentPrice   *decimal.Decimal `json:"current_price,omitempty"`
	PriceUpdatedAt *time.Time       `json:"price_updated_at,omitempty"`
}

// Validate ensures the asset adheres to domain rules
// Returns an error if validation fails
func (a *Asset) Validate() error {
	if a.Symbol == "" {
		return NewValidationError("symbol", "cannot be empty")
	}
	if a.Name == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if !a.Category.Valid() {
		return NewValidationError("category", "must be one of stocks, etfs, crypto, fiat")
	}
	if a.CurrentPrice != nil && a.CurrentPrice.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("current_price", "must be positive when set")
	}
	return nil
}
