package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"photocull/internal/config"
	"photocull/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const (
	validYAML = `
scan:
  extensions: "*.{jpg,png}"
  order: Taken
  recursive: true
move:
  discard_dir: Rejects
  collision: skip
  workers: 2
thumbnails:
  grid_width: 20
theme:
  name: dark
`
	invalidSyntaxYAML = `
scan:
  order: "name
move: [
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "*.{jpg,png}", cfg.Scan.Extensions)
		assert.Equal(t, config.OrderTaken, cfg.Scan.Order)
		assert.True(t, cfg.Scan.Recursive)
		assert.Equal(t, "Rejects", cfg.Move.DiscardDir)
		assert.Equal(t, config.CollisionSkip, cfg.Move.Collision)
		assert.Equal(t, 2, cfg.Move.Workers)
		assert.Equal(t, 20, cfg.Thumbnails.GridWidth)
		assert.Equal(t, "dark", cfg.Theme.Name)

		// Unset fields keep defaults
		assert.Equal(t, 10, cfg.Thumbnails.SideWidth)
		assert.Equal(t, 256, cfg.Thumbnails.CacheEntries)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		param string
	}{
		{"unknown order", "scan:\n  order: random\n", "scan.order"},
		{"unknown collision", "move:\n  collision: delete\n", "move.collision"},
		{"nested discard dir", "move:\n  discard_dir: a/b\n", "move.discard_dir"},
		{"zero workers", "move:\n  workers: 0\n", "move.workers"},
		{"tiny tiles", "thumbnails:\n  side_width: 2\n", "thumbnails.side_width"},
		{"empty cache", "thumbnails:\n  cache_entries: 0\n", "thumbnails.cache_entries"},
		{"unknown theme", "theme:\n  name: neon\n", "theme.name"},
		{"zero beside a scalar section", "notes: trial run\nmove:\n  workers: 0\n", "move.workers"},
		{"zero after a null section", "scan:\nthumbnails:\n  grid_width: 0\n", "thumbnails.grid_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestYAML(t, tt.yaml))
			require.Error(t, err)
			var cfgErr *errors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.param, cfgErr.Param())
		})
	}

	assert.NoError(t, config.New().Validate())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Move.Collision = config.CollisionOverwrite
	cfg.Scan.Order = config.OrderModTime

	require.NoError(t, config.SaveConfig(cfg, path))
	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestStorePath(t *testing.T) {
	cfg := config.New()
	cfg.Store.Path = "/tmp/layout.db"
	path, err := cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/layout.db", path)
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("no-such-theme"))
	for _, name := range config.ListThemes() {
		assert.Contains(t, config.GetTheme(name), "primary", name)
	}
}
