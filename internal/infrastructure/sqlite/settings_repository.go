package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/settings"
)

// SettingsRepository implements settings.Repository using SQLite.
// Each blob key is one row.
type SettingsRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db, now: time.Now}
}

var _ settings.Repository = (*SettingsRepository)(nil)

// Load returns every stored key. An empty table yields an empty blob.
func (r *SettingsRepository) Load(ctx context.Context) (map[string]any, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var models []SettingModel
	for rows.Next() {
		var m SettingModel
		if err := rows.Scan(&m.Key, &m.Value, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}
	return toBlob(models)
}

// Save replaces the stored blob in one transaction. Keys absent from blob
// are removed.
func (r *SettingsRepository) Save(ctx context.Context, blob map[string]any) error {
	models, err := toSettingModels(blob, r.now())
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	for _, m := range models {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
			m.Key, m.Value, m.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", m.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	log.Debug(log.CatStore, "Saved settings", "keys", len(models))
	return nil
}

// UpdatedAt returns when key was last written, or false if it is not stored.
func (r *SettingsRepository) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var ts int64
	err := r.db.QueryRowContext(ctx, `SELECT updated_at FROM settings WHERE key = ?`, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return time.Unix(ts, 0), true, nil
}
