package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/portfolio-tracker/internal/domain"
)

// watchlistRepository implements domain.WatchlistRepository
type watchlistRepository struct {
	db *DB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *DB) domain.WatchlistRepository {
	return &watchlistRepository{db: db}
}

const watchlistColumns = `id, asset_symbol, name, category, notes, target_price,
		alert_percent, baseline_price, active_alerts, added_at, updated_at`

// Create adds a new watchlist item
func (r *watchlistRepository) Create(ctx context.Context, item *domain.WatchlistItem) error {
	query := `
		INSERT INTO watchlist (` + watchlistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.AssetSymbol,
		item.Name,
		string(item.Category),
		item.Notes,
		nullableDecimal(item.TargetPrice),
		nullableDecimal(item.AlertPercent),
		nullableDecimal(item.BaselinePrice),
		item.ActiveAlerts,
		item.AddedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert watchlist item: %w", err)
	}

	return nil
}

// Delete removes a watchlist item by id
func (r *watchlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM watchlist WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("watchlist item", id.String())
	}

	return nil
}

// SetAlertsActive toggles the active_alerts flag for an item
func (r *watchlistRepository) SetAlertsActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE watchlist
		SET active_alerts = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to update watchlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("watchlist item", id.String())
	}

	return nil
}

// List retrieves all watchlist items, oldest first
func (r *watchlistRepository) List(ctx context.Context) ([]*domain.WatchlistItem, error) {
	return r.list(ctx, `SELECT `+watchlistColumns+` FROM watchlist ORDER BY added_at ASC`)
}

// ListActive retrieves the items with active_alerts = true
func (r *watchlistRepository) ListActive(ctx context.Context) ([]*domain.WatchlistItem, error) {
	return r.list(ctx, `SELECT `+watchlistColumns+` FROM watchlist WHERE active_alerts = TRUE ORDER BY added_at ASC`)
}

func (r *watchlistRepository) list(ctx context.Context, query string) ([]*domain.WatchlistItem, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.WatchlistItem, 0)
	for rows.Next() {
		var item domain.WatchlistItem
		var notes sql.NullString
		var targetStr, percentStr, baselineStr sql.NullString

		err := rows.Scan(
			&item.ID,
			&item.AssetSymbol,
			&item.Name,
			&item.Category,
			&notes,
			&targetStr,
			&percentStr,
			&baselineStr,
			&item.ActiveAlerts,
			&item.AddedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}

		item.Notes = notes.String

		if item.TargetPrice, err = parseNullableDecimal(targetStr); err != nil {
			return nil, fmt.Errorf("failed to parse target_price: %w", err)
		}
		if item.AlertPercent, err = parseNullableDecimal(percentStr); err != nil {
			return nil, fmt.Errorf("failed to parse alert_percent: %w", err)
		}
		if item.BaselinePrice, err = parseNullableDecimal(baselineStr); err != nil {
			return nil, fmt.Errorf("failed to parse baseline_price: %w", err)
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}
