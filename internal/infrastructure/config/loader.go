package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yakuperoglu/nova-ai-cli/assets"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Environment variables consulted by the loader.
const (
	EnvConfigPath = "NOVA_CONFIG"
	EnvAPIKey     = "NOVA_API_KEY"
)

// FileLoader loads YAML configuration from ~/.nova/config.yaml (overridable via NOVA_CONFIG).
type FileLoader struct {
	overridePath string
	getenv       func(string) string
}

// NewFileLoader builds a new loader. An empty path defers to NOVA_CONFIG, then ~/.nova/config.yaml.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path, getenv: os.Getenv}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults; missing fields are hydrated.
func (l *FileLoader) Load(ctx context.Context) (domain.Config, error) {
	cfg, err := l.LoadUnvalidated(ctx)
	if err != nil {
		return domain.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", l.Path(), err)
	}
	return cfg, nil
}

// LoadUnvalidated reads and hydrates the file like Load but skips validation,
// so commands that rewrite a field can repair an invalid file.
func (l *FileLoader) LoadUnvalidated(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := filesystem.EnsurePrivateDir(filepath.Dir(path)); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		cfg := DefaultConfig()
		if err := l.write(path, cfg); err != nil {
			return domain.Config{}, err
		}
		return l.withEnv(cfg), nil
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return l.withEnv(hydrateDefaults(cfg)), nil
}

// Save implements ports.ConfigWriter with an atomic replace.
func (l *FileLoader) Save(_ context.Context, cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path := l.Path()
	if err := filesystem.EnsurePrivateDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return l.write(path, cfg)
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := l.getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filesystem.NovaPath("config.yaml")
}

func (l *FileLoader) write(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := filesystem.AtomicWriteFile(path, raw, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (l *FileLoader) withEnv(cfg domain.Config) domain.Config {
	cfg.EnvAPIKey = strings.TrimSpace(l.getenv(EnvAPIKey))
	return cfg
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// embedded YAML is corrupted; hydration still yields a usable config
		return hydrateDefaults(domain.Config{})
	}
	return hydrateDefaults(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = domain.DefaultModel
	}
	if cfg.Theme == "" {
		cfg.Theme = domain.ThemeDefault
	}
	if cfg.Provider.Kind == "" {
		cfg.Provider.Kind = string(domain.ProviderGemini)
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = int(domain.DefaultHTTPClientTimeout.Seconds())
	}
	if cfg.Execution.TimeoutSeconds == 0 {
		cfg.Execution.TimeoutSeconds = int(domain.DefaultCommandTimeout.Seconds())
	}
	if cfg.Execution.ConfirmDefaultSafe == nil {
		cfg.Execution.ConfirmDefaultSafe = domain.BoolPtr(true)
	}
	if cfg.Execution.ConfirmDefaultWarning == nil {
		cfg.Execution.ConfirmDefaultWarning = domain.BoolPtr(true)
	}
	if cfg.History.MaxTurns <= 0 {
		cfg.History.MaxTurns = domain.DefaultHistoryTurns
	}
	if cfg.Security.RulesFile == "" {
		cfg.Security.RulesFile = "~/" + filesystem.NovaDirName + "/rules.yaml"
	}
	return cfg
}

var (
	_ ports.ConfigProvider = (*FileLoader)(nil)
	_ ports.ConfigWriter   = (*FileLoader)(nil)
)
