package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// In-memory repository implementations backing the end-to-end tests. They
// mirror the Postgres adapter's semantics: insert-if-absent returns false on
// duplicates, missing rows surface as NotFoundError, and list operations keep
// the same orderings the SQL queries guarantee.

type memoryAssetRepo struct {
	mu     sync.Mutex
	assets map[string]*domain.Asset
}

func newMemoryAssetRepo() *memoryAssetRepo {
	return &memoryAssetRepo{assets: make(map[string]*domain.Asset)}
}

func (r *memoryAssetRepo) GetBySymbol(_ context.Context, symbol string) (*domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[symbol]
	if !ok {
		return nil, domain.NewNotFoundError("asset", symbol)
	}
	copied := *asset
	return &copied, nil
}

func (r *memoryAssetRepo) CreateIfAbsent(_ context.Context, asset *domain.Asset) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[asset.Symbol]; ok {
		return false, nil
	}
	copied := *asset
	r.assets[asset.Symbol] = &copied
	return true, nil
}

func (r *memoryAssetRepo) UpdatePrice(_ context.Context, symbol string, price decimal.Decimal, observedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[symbol]
	if !ok {
		return domain.NewNotFoundError("asset", symbol)
	}
	asset.CurrentPrice = &price
	asset.PriceUpdatedAt = &observedAt
	return nil
}

func (r *memoryAssetRepo) List(_ context.Context, category domain.AssetCategory) ([]*domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Asset
	for _, asset := range r.assets {
		if category != "" && asset.Category != category {
			continue
		}
		copied := *asset
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Symbol < result[j].Symbol })
	return result, nil
}

type memoryTransactionRepo struct {
	mu  sync.Mutex
	txs []*domain.Transaction
}

func newMemoryTransactionRepo() *memoryTransactionRepo {
	return &memoryTransactionRepo{}
}

func (r *memoryTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *tx
	r.txs = append(r.txs, &copied)
	return nil
}

func (r *memoryTransactionRepo) ListBySymbol(_ context.Context, symbol string) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Transaction
	for _, tx := range r.txs {
		if tx.AssetSymbol == symbol {
			copied := *tx
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *memoryTransactionRepo) List(_ context.Context, limit, offset int, symbol string) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var filtered []*domain.Transaction
	for _, tx := range r.txs {
		if symbol == "" || tx.AssetSymbol == symbol {
			copied := *tx
			filtered = append(filtered, &copied)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.After(filtered[j].Date) })
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *memoryTransactionRepo) Count(_ context.Context, symbol string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, tx := range r.txs {
		if symbol == "" || tx.AssetSymbol == symbol {
			count++
		}
	}
	return count, nil
}

func (r *memoryTransactionRepo) Symbols(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var symbols []string
	for _, tx := range r.txs {
		if !seen[tx.AssetSymbol] {
			seen[tx.AssetSymbol] = true
			symbols = append(symbols, tx.AssetSymbol)
		}
	}
	sort.Strings(symbols)
	return symbols, nil
}

type memoryHoldingRepo struct {
	mu       sync.Mutex
	holdings map[string]*domain.Holding
}

func newMemoryHoldingRepo() *memoryHoldingRepo {
	return &memoryHoldingRepo{holdings: make(map[string]*domain.Holding)}
}

func (r *memoryHoldingRepo) Upsert(_ context.Context, holding *domain.Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *holding
	r.holdings[holding.AssetSymbol] = &copied
	return nil
}

func (r *memoryHoldingRepo) GetBySymbol(_ context.Context, symbol string) (*domain.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	holding, ok := r.holdings[symbol]
	if !ok {
		return nil, domain.NewNotFoundError("holding", symbol)
	}
	copied := *holding
	return &copied, nil
}

func (r *memoryHoldingRepo) List(_ context.Context) ([]*domain.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Holding
	for _, holding := range r.holdings {
		copied := *holding
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssetSymbol < result[j].AssetSymbol })
	return result, nil
}

type snapshotKey struct {
	symbol string
	date   string
}

type memorySnapshotRepo struct {
	mu        sync.Mutex
	snapshots map[snapshotKey]*domain.DailySnapshot
}

func newMemorySnapshotRepo() *memorySnapshotRepo {
	return &memorySnapshotRepo{snapshots: make(map[snapshotKey]*domain.DailySnapshot)}
}

func (r *memorySnapshotRepo) CreateIfAbsent(_ context.Context, snapshot *domain.DailySnapshot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := snapshotKey{symbol: snapshot.AssetSymbol, date: snapshot.SnapshotDate.Format("2006-01-02")}
	if _, ok := r.snapshots[key]; ok {
		return false, nil
	}
	copied := *snapshot
	r.snapshots[key] = &copied
	return true, nil
}

func (r *memorySnapshotRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.DailySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := date.Format("2006-01-02")
	var result []*domain.DailySnapshot
	for key, snapshot := range r.snapshots {
		if key.date == day {
			copied := *snapshot
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssetSymbol < result[j].AssetSymbol })
	return result, nil
}

func (r *memorySnapshotRepo) ListBySymbol(_ context.Context, symbol string, from, to time.Time) ([]*domain.DailySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.DailySnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.AssetSymbol != symbol {
			continue
		}
		if snapshot.SnapshotDate.Before(from) || snapshot.SnapshotDate.After(to) {
			continue
		}
		copied := *snapshot
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SnapshotDate.Before(result[j].SnapshotDate) })
	return result, nil
}

type priceKey struct {
	symbol     string
	observedAt int64
	source     string
}

type memoryPriceHistoryRepo struct {
	mu     sync.Mutex
	points map[priceKey]*domain.PricePoint
}

func newMemoryPriceHistoryRepo() *memoryPriceHistoryRepo {
	return &memoryPriceHistoryRepo{points: make(map[priceKey]*domain.PricePoint)}
}

func (r *memoryPriceHistoryRepo) CreateIfAbsent(_ context.Context, point *domain.PricePoint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := priceKey{symbol: point.AssetSymbol, observedAt: point.ObservedAt.UnixNano(), source: point.Source}
	if _, ok := r.points[key]; ok {
		return false, nil
	}
	copied := *point
	r.points[key] = &copied
	return true, nil
}

func (r *memoryPriceHistoryRepo) History(_ context.Context, symbol string, from, to time.Time) ([]*domain.PricePoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.PricePoint
	for _, point := range r.points {
		if point.AssetSymbol != symbol {
			continue
		}
		if point.ObservedAt.Before(from) || point.ObservedAt.After(to) {
			continue
		}
		copied := *point
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ObservedAt.Before(result[j].ObservedAt) })
	return result, nil
}

type memoryWatchlistRepo struct {
	mu    sync.Mutex
	items []*domain.WatchlistItem
}

func newMemoryWatchlistRepo() *memoryWatchlistRepo {
	return &memoryWatchlistRepo{}
}

func (r *memoryWatchlistRepo) Create(_ context.Context, item *domain.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items = append(r.items, &copied)
	return nil
}

func (r *memoryWatchlistRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("watchlist item", id.String())
}

func (r *memoryWatchlistRepo) SetAlertsActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			item.ActiveAlerts = active
			item.UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.NewNotFoundError("watchlist item", id.String())
}

func (r *memoryWatchlistRepo) List(_ context.Context) ([]*domain.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.WatchlistItem, 0, len(r.items))
	for _, item := range r.items {
		copied := *item
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memoryWatchlistRepo) ListActive(_ context.Context) ([]*domain.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.WatchlistItem
	for _, item := range r.items {
		if item.ActiveAlerts {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result, nil
}

type memoryConfigRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.ConfigEntry
}

func newMemoryConfigRepo() *memoryConfigRepo {
	return &memoryConfigRepo{entries: make(map[string]*domain.ConfigEntry)}
}

func (r *memoryConfigRepo) Get(_ context.Context, key string) (*domain.ConfigEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[key]
	if !ok {
		return nil, domain.NewNotFoundError("config entry", key)
	}
	copied := *entry
	return &copied, nil
}

func (r *memoryConfigRepo) Put(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if entry, ok := r.entries[key]; ok {
		entry.Value = value
		entry.UpdatedAt = now
		return nil
	}
	r.entries[key] = &domain.ConfigEntry{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	return nil
}

func (r *memoryConfigRepo) SetDefault(_ context.Context, key, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; ok {
		return false, nil
	}
	now := time.Now()
	r.entries[key] = &domain.ConfigEntry{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	return true, nil
}
