package helpers

import (
	"context"
	"fmt"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

// LoadConfig reads the current configuration through the container.
func LoadConfig(ctx context.Context, container *app.Container) (domain.Config, error) {
	if container.ConfigProvider == nil {
		return domain.Config{}, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigProvider.Load(ctx)
}

// UpdateConfig loads the configuration, applies mutate and saves the result.
// The file is validated only after mutate, so an update can fix an invalid field.
func UpdateConfig(ctx context.Context, container *app.Container, mutate func(*domain.Config) error) (domain.Config, error) {
	if container.ConfigWriter == nil {
		return domain.Config{}, fmt.Errorf("config writer unavailable")
	}
	var (
		cfg domain.Config
		err error
	)
	if container.ConfigLoader != nil {
		cfg, err = container.ConfigLoader.LoadUnvalidated(ctx)
	} else {
		cfg, err = LoadConfig(ctx, container)
	}
	if err != nil {
		return domain.Config{}, err
	}
	if err := mutate(&cfg); err != nil {
		return domain.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := container.ConfigWriter.Save(ctx, cfg); err != nil {
		return domain.Config{}, fmt.Errorf("failed to save configuration: %w", err)
	}
	return cfg, nil
}
