package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetRepository defines the interface for asset catalog persistence operations
type AssetRepository interface {
	// GetBySymbol retrieves an asset by its symbol
	// Returns a NotFoundError if the symbol is unknown
	GetBySymbol(ctx context.Context, symbol string) (*Asset, error)

	// CreateIfAbsent inserts the asset if the symbol is not taken yet.
	// Returns true if a row was created, false if the symbol already existed
	// (idempotent seeding — a duplicate is a no-op, not an error).
	CreateIfAbsent(ctx context.Context, asset *Asset) (bool, error)

	// UpdatePrice overwrites current_price and price_updated_at for an
	// existing symbol. Returns a NotFoundError if the symbol is unknown.
	UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal, observedAt time.Time) error

	// List retrieves assets, optionally filtered by category.
	// If category is empty, returns all assets ordered by symbol.
	List(ctx context.Context, category AssetCategory) ([]*Asset, error)
}

// TransactionRepository defines the interface for ledger persistence operations
type TransactionRepository interface {
	// Create appends a new transaction to the ledger
	Create(ctx context.Context, tx *Transaction) error

	// ListBySymbol retrieves the full history for one symbol in date order,
	// oldest first. Holdings recomputation depends on this ordering.
	ListBySymbol(ctx context.Context, symbol string) ([]*Transaction, error)

	// List retrieves a paginated list of transactions, newest first.
	// If symbol is empty, returns transactions for all assets.
	List(ctx context.Context, limit, offset int, symbol string) ([]*Transaction, error)

	// Count returns the number of transactions, optionally for one symbol
	Count(ctx context.Context, symbol string) (int, error)

	// Symbols returns the distinct asset symbols that have transactions
	Symbols(ctx context.Context) ([]string, error)
}

// HoldingRepository defines the interface for the holdings cache
type HoldingRepository interface {
	// Upsert inserts or replaces the single holding row for a symbol
	Upsert(ctx context.Context, holding *Holding) error

	// GetBySymbol retrieves the holding for one symbol
	// Returns a NotFoundError if no holding row exists
	GetBySymbol(ctx context.Context, symbol string) (*Holding, error)

	// List retrieves all holdings ordered by symbol
	List(ctx context.Context) ([]*Holding, error)
}

// SnapshotRepository defines the interface for the daily snapshot archive
type SnapshotRepository interface {
	// CreateIfAbsent inserts the snapshot unless one already exists for its
	// (asset_symbol, snapshot_date) pair. Returns true if a row was created,
	// false if the pair was already recorded (silent no-op).
	CreateIfAbsent(ctx context.Context, snapshot *DailySnapshot) (bool, error)

	// ListByDate retrieves all snapshots for one calendar day
	ListByDate(ctx context.Context, date time.Time) ([]*DailySnapshot, error)

	// ListBySymbol retrieves snapshots for one symbol within [from, to],
	// oldest first
	ListBySymbol(ctx context.Context, symbol string, from, to time.Time) ([]*DailySnapshot, error)
}

// PriceHistoryRepository defines the interface for the observed-price archive
type PriceHistoryRepository interface {
	// CreateIfAbsent inserts the observation unless one already exists for
	// its (asset_symbol, observed_at, source) triple. Returns true if a row
	// was created, false on a duplicate (silent no-op for idempotent replay).
	CreateIfAbsent(ctx context.Context, point *PricePoint) (bool, error)

	// History retrieves observations for one symbol within [from, to],
	// oldest first
	History(ctx context.Context, symbol string, from, to time.Time) ([]*PricePoint, error)
}

// WatchlistRepository defines the interface for watchlist persistence operations
type WatchlistRepository interface {
	// Create adds a new watchlist item
	Create(ctx context.Context, item *WatchlistItem) error

	// Delete removes a watchlist item by id
	// Returns a NotFoundError if the id is unknown
	Delete(ctx context.Context, id uuid.UUID) error

	// SetAlertsActive toggles the active_alerts flag for an item
	// Returns a NotFoundError if the id is unknown
	SetAlertsActive(ctx context.Context, id uuid.UUID, active bool) error

	// List retrieves all watchlist items, oldest first
	List(ctx context.Context) ([]*WatchlistItem, error)

	// ListActive retrieves the items with active_alerts = true
	ListActive(ctx context.Context) ([]*WatchlistItem, error)
}

// ConfigRepository defines the interface for the key/value settings store
type ConfigRepository interface {
	// Get retrieves a config entry by key
	// Returns a NotFoundError if the key is absent
	Get(ctx context.Context, key string) (*ConfigEntry, error)

	// Put inserts or overwrites the value for a key, bumping updated_at
	Put(ctx context.Context, key, value string) error

	// SetDefault inserts the value only if the key is absent.
	// Returns true if a row was created, false if the key already existed.
	SetDefault(ctx context.Context, key, value string) (bool, error)
}
