package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// CreateIfAbsent inserts the snapshot unless its (asset_symbol, snapshot_date)
// pair already exists. The unique constraint makes concurrent duplicate
// invocations of the recorder collapse into safe no-ops.
func (r *snapshotRepository) CreateIfAbsent(ctx context.Context, snapshot *domain.DailySnapshot) (bool, error) {
	query := `
		INSERT INTO daily_snapshots (id, asset_symbol, snapshot_date, quantity,
			price_per_unit, total_value, unrealized_pnl, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (asset_symbol, snapshot_date) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.AssetSymbol,
		snapshot.SnapshotDate,
		snapshot.Quantity.String(),
		nullableDecimal(snapshot.PricePerUnit),
		nullableDecimal(snapshot.TotalValue),
		nullableDecimal(snapshot.UnrealizedPnL),
		snapshot.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}

// ListByDate retrieves all snapshots for one calendar day
func (r *snapshotRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.DailySnapshot, error) {
	query := `
		SELECT id, asset_symbol, snapshot_date, quantity, price_per_unit,
			total_value, unrealized_pnl, created_at
		FROM daily_snapshots
		WHERE snapshot_date = $1
		ORDER BY asset_symbol
	`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots by date: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// ListBySymbol retrieves snapshots for one symbol within [from, to], oldest first
func (r *snapshotRepository) ListBySymbol(ctx context.Context, symbol string, from, to time.Time) ([]*domain.DailySnapshot, error) {
	query := `
		SELECT id, asset_symbol, snapshot_date, quantity, price_per_unit,
			total_value, unrealized_pnl, created_at
		FROM daily_snapshots
		WHERE asset_symbol = $1 AND snapshot_date BETWEEN $2 AND $3
		ORDER BY snapshot_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots by symbol: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

func collectSnapshots(rows *sql.Rows) ([]*domain.DailySnapshot, error) {
	snapshots := make([]*domain.DailySnapshot, 0)
	for rows.Next() {
		var snap domain.DailySnapshot
		var quantityStr string
		var priceStr, valueStr, pnlStr sql.NullString

		err := rows.Scan(
			&snap.ID,
			&snap.AssetSymbol,
			&snap.SnapshotDate,
			&quantityStr,
			&priceStr,
			&valueStr,
			&pnlStr,
			&snap.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		if snap.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		if snap.PricePerUnit, err = parseNullableDecimal(priceStr); err != nil {
			return nil, fmt.Errorf("failed to parse price_per_unit: %w", err)
		}
		if snap.TotalValue, err = parseNullableDecimal(valueStr); err != nil {
			return nil, fmt.Errorf("failed to parse total_value: %w", err)
		}
		if snap.UnrealizedPnL, err = parseNullableDecimal(pnlStr); err != nil {
			return nil, fmt.Errorf("failed to parse unrealized_pnl: %w", err)
		}

		snapshots = append(snapshots, &snap)
	}

	return snapshots, rows.Err()
}
