package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

func newTestLoader(t *testing.T, env map[string]string) (*FileLoader, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nova", "config.yaml")
	loader := NewFileLoader(path)
	loader.getenv = func(key string) string { return env[key] }
	return loader, path
}

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	loader, path := newTestLoader(t, nil)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultModel, cfg.ActiveModel())
	require.Equal(t, domain.ThemeDefault, cfg.ActiveTheme())
	require.Equal(t, domain.DefaultCommandTimeout, cfg.CommandTimeout())
	require.True(t, cfg.ConfirmDefault(domain.TierSafe))
	require.True(t, cfg.ConfirmDefault(domain.TierWarning))
	require.Equal(t, domain.DefaultHistoryTurns, cfg.HistoryTurns())

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestLoadHydratesPartialFile(t *testing.T) {
	loader, path := newTestLoader(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("theme: dracula\nexecution:\n  confirm_default_warning: false\n"), 0o600))

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.ThemeDracula, cfg.ActiveTheme())
	require.Equal(t, domain.DefaultModel, cfg.Model)
	require.False(t, cfg.ConfirmDefault(domain.TierWarning))
	require.True(t, cfg.ConfirmDefault(domain.TierSafe))
	require.Equal(t, "gemini", cfg.Provider.Kind)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	loader, path := newTestLoader(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\nprovider:\n  kind: carrier-pigeon\n"), 0o600))

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme")
	require.Contains(t, err.Error(), "carrier-pigeon")
}

func TestLoadUnvalidatedKeepsInvalidFields(t *testing.T) {
	loader, path := newTestLoader(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0o600))

	cfg, err := loader.LoadUnvalidated(context.Background())
	require.NoError(t, err)
	require.Equal(t, "neon", cfg.Theme)
	require.Equal(t, domain.DefaultModel, cfg.Model)

	cfg.Theme = domain.ThemeOcean
	require.NoError(t, loader.Save(context.Background(), cfg))
	cfg, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.ThemeOcean, cfg.ActiveTheme())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	loader, path := newTestLoader(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated"), 0o600))

	_, err := loader.Load(context.Background())
	require.Error(t, err)
}

func TestEnvironmentAPIKeyOverridesStoredKey(t *testing.T) {
	loader, _ := newTestLoader(t, map[string]string{EnvAPIKey: " env-key-1234567890 "})
	ctx := context.Background()

	cfg, err := loader.Load(ctx)
	require.NoError(t, err)
	cfg.APIKey = "stored-key-0987654321"
	require.NoError(t, loader.Save(ctx, cfg))

	reloaded, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "stored-key-0987654321", reloaded.APIKey)
	require.Equal(t, "env-key-1234567890", reloaded.APICredential())
}

func TestSaveDoesNotPersistEnvironmentKey(t *testing.T) {
	loader, path := newTestLoader(t, map[string]string{EnvAPIKey: "from-env-secret"})
	ctx := context.Background()

	cfg, err := loader.Load(ctx)
	require.NoError(t, err)
	cfg.Theme = domain.ThemeOcean
	require.NoError(t, loader.Save(ctx, cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "from-env-secret"))
	require.Contains(t, string(raw), "theme: ocean")
}

func TestSaveRejectsInvalidTheme(t *testing.T) {
	loader, _ := newTestLoader(t, nil)
	cfg := DefaultConfig()
	cfg.Theme = "neon"
	require.Error(t, loader.Save(context.Background(), cfg))
}

func TestPathPrefersOverrideThenEnvironment(t *testing.T) {
	loader := NewFileLoader("")
	loader.getenv = func(key string) string {
		if key == EnvConfigPath {
			return "/tmp/custom-nova.yaml"
		}
		return ""
	}
	require.Equal(t, filepath.Clean("/tmp/custom-nova.yaml"), loader.Path())

	loader.overridePath = "/tmp/explicit.yaml"
	require.Equal(t, filepath.Clean("/tmp/explicit.yaml"), loader.Path())
}
