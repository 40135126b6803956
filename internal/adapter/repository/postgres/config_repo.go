package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/portfolio-tracker/internal/domain"
)

// configRepository implements domain.ConfigRepository
type configRepository struct {
	db *DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *DB) domain.ConfigRepository {
	return &configRepository{db: db}
}

// Get retrieves a config entry by key
func (r *configRepository) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	query := `
		SELECT key, value, created_at, updated_at
		FROM config
		WHERE key = $1
	`

	var entry domain.ConfigEntry
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&entry.Key,
		&entry.Value,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("config entry", key)
		}
		return nil, fmt.Errorf("failed to get config entry: %w", err)
	}

	return &entry, nil
}

// Put inserts or overwrites the value for a key, bumping updated_at
func (r *configRepository) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put config entry: %w", err)
	}

	return nil
}

// SetDefault inserts the value only if the key is absent
func (r *configRepository) SetDefault(ctx context.Context, key, value string) (bool, error) {
	query := `
		INSERT INTO config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return false, fmt.Errorf("failed to set config default: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}
