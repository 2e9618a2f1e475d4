package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/liliang-cn/conversa/internal/domain"
	"github.com/liliang-cn/conversa/internal/schema"
)

// ConfigKey is the fixed key the widget config is stored under
const ConfigKey = "conversa-widget-config"

// ConfigStore saves and loads a single widget config blob
type ConfigStore struct {
	db        *DB
	validator *schema.Validator
}

// NewConfigStore creates a new config store
func NewConfigStore(db *DB, validator *schema.Validator) *ConfigStore {
	return &ConfigStore{db: db, validator: validator}
}

// Save stores cfg under ConfigKey, replacing any previous value
func (s *ConfigStore) Save(ctx context.Context, cfg domain.WidgetConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode widget config: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, ConfigKey, string(data), time.Now())
	return err
}

// Load returns the stored config, or nil if nothing was saved. A stored
// value that is not a complete WidgetConfig yields an error wrapping
// domain.ErrCorruptConfig and a nil config.
func (s *ConfigStore) Load(ctx context.Context) (*domain.WidgetConfig, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, ConfigKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate([]byte(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptConfig, err)
	}

	var overrides domain.WidgetOverrides
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptConfig, err)
	}

	cfg := domain.GenerateWidgetConfig(overrides)
	return &cfg, nil
}

// Clear removes the stored config
func (s *ConfigStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, ConfigKey)
	return err
}
