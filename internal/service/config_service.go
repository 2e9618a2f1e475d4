package service

import (
	"context"
	"errors"
	"sync"

	"github.com/liliang-cn/conversa/internal/domain"
	"github.com/liliang-cn/conversa/internal/widgetid"
	"go.uber.org/zap"
)

// ConfigStore persists a single widget config
type ConfigStore interface {
	Save(ctx context.Context, cfg domain.WidgetConfig) error
	Load(ctx context.Context) (*domain.WidgetConfig, error)
	Clear(ctx context.Context) error
}

// ConfigService holds the admin session's widget config. Every mutation
// replaces the stored value; callers always receive copies.
type ConfigService struct {
	mu      sync.RWMutex
	current domain.WidgetConfig

	store  ConfigStore
	logger *zap.Logger
}

// NewConfigService restores the saved config when there is one, otherwise it
// builds a default config with a fresh id from gen.
func NewConfigService(ctx context.Context, store ConfigStore, gen widgetid.Generator, logger *zap.Logger) (*ConfigService, error) {
	s := &ConfigService{store: store, logger: logger}

	saved, err := store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptConfig):
		logger.Warn("Ignoring corrupt stored widget config", zap.Error(err))
	case err != nil:
		return nil, err
	}

	if saved != nil {
		s.current = *saved
		logger.Info("Restored widget config", zap.String("widget_id", saved.WidgetID))
		return s, nil
	}

	id := gen.NewID()
	s.current = domain.GenerateWidgetConfig(domain.WidgetOverrides{WidgetID: &id})
	logger.Info("Created widget config", zap.String("widget_id", id))
	return s, nil
}

// Current returns the current config
func (s *ConfigService) Current() domain.WidgetConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// UpdateField sets one leaf of the current config
func (s *ConfigService) UpdateField(path string, value any) (domain.WidgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := domain.UpdateConfigField(s.current, path, value)
	if err != nil {
		return s.current, err
	}
	s.current = next

	s.logger.Debug("Updated widget config field", zap.String("path", path), zap.Any("value", value))
	return next, nil
}

// Replace rebuilds the config from overrides over the defaults. The widget id is kept.
func (s *ConfigService) Replace(overrides domain.WidgetOverrides) (domain.WidgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.current.WidgetID
	overrides.WidgetID = &id
	next := domain.GenerateWidgetConfig(overrides)
	if err := next.Validate(); err != nil {
		return s.current, err
	}
	s.current = next

	s.logger.Info("Replaced widget config", zap.String("widget_id", id))
	return next, nil
}

// Reset restores the defaults, keeping the widget id
func (s *ConfigService) Reset() domain.WidgetConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.current.WidgetID
	s.current = domain.GenerateWidgetConfig(domain.WidgetOverrides{WidgetID: &id})

	s.logger.Info("Reset widget config", zap.String("widget_id", id))
	return s.current
}

// Save writes the current config to the store
func (s *ConfigService) Save(ctx context.Context) error {
	cfg := s.Current()
	if err := s.store.Save(ctx, cfg); err != nil {
		return err
	}
	s.logger.Info("Saved widget config", zap.String("widget_id", cfg.WidgetID))
	return nil
}

// Load replaces the current config with the stored one.
// It returns domain.ErrNotFound when nothing is stored.
func (s *ConfigService) Load(ctx context.Context) (domain.WidgetConfig, error) {
	saved, err := s.store.Load(ctx)
	if err != nil {
		return s.Current(), err
	}
	if saved == nil {
		return s.Current(), domain.ErrNotFound
	}

	s.mu.Lock()
	s.current = *saved
	s.mu.Unlock()

	s.logger.Info("Loaded widget config", zap.String("widget_id", saved.WidgetID))
	return *saved, nil
}

// Discard removes the stored config. The current config is unchanged.
func (s *ConfigService) Discard(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("Discarded stored widget config")
	return nil
}
