package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"photocull/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Scan orders accepted by scan.order.
const (
	OrderName    = "name"
	OrderModTime = "modtime"
	OrderTaken   = "taken"
)

// Collision strategies accepted by move.collision.
const (
	CollisionRename    = "rename"
	CollisionSkip      = "skip"
	CollisionOverwrite = "overwrite"
)

// DefaultExtensions matches the image formats photocull can list.
const DefaultExtensions = "*.{jpg,jpeg,png,gif,bmp,tif,tiff,heic,heif,webp}"

// Config represents the application configuration structure.
type Config struct {
	Scan struct {
		Extensions    string `yaml:"extensions"`     // Glob over lowercase file names
		Order         string `yaml:"order"`          // name, modtime or taken
		Recursive     bool   `yaml:"recursive"`      // Descend into subfolders
		IncludeHidden bool   `yaml:"include_hidden"` // List dot files
	} `yaml:"scan"`
	Move struct {
		DiscardDir string `yaml:"discard_dir"` // Folder name, relative to the loaded folder
		Collision  string `yaml:"collision"`   // rename, skip or overwrite
		DryRun     bool   `yaml:"dry_run"`     // Log moves without touching files
		Workers    int    `yaml:"workers"`     // Concurrent moves
	} `yaml:"move"`
	Thumbnails struct {
		CacheEntries int `yaml:"cache_entries"` // LRU capacity
		GridWidth    int `yaml:"grid_width"`    // Grid tile width in cells
		SideWidth    int `yaml:"side_width"`    // Keep/Discard tile width in cells
	} `yaml:"thumbnails"`
	Theme struct {
		Name string `yaml:"name"`
	} `yaml:"theme"`
	Store struct {
		Path string `yaml:"path"` // Layout database, empty for the default location
	} `yaml:"store"`
}

// Dir returns ~/.config/photocull.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, ".config", "photocull"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/photocull/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if tempCfg.Scan.Extensions != "" {
		cfg.Scan.Extensions = tempCfg.Scan.Extensions
	}
	if tempCfg.Scan.Order != "" {
		cfg.Scan.Order = strings.ToLower(tempCfg.Scan.Order)
	}
	cfg.Scan.Recursive = tempCfg.Scan.Recursive
	cfg.Scan.IncludeHidden = tempCfg.Scan.IncludeHidden

	if tempCfg.Move.DiscardDir != "" {
		cfg.Move.DiscardDir = tempCfg.Move.DiscardDir
	}
	if tempCfg.Move.Collision != "" {
		cfg.Move.Collision = strings.ToLower(tempCfg.Move.Collision)
	}
	cfg.Move.DryRun = tempCfg.Move.DryRun
	if has(raw, "move", "workers") {
		cfg.Move.Workers = tempCfg.Move.Workers
	}

	if has(raw, "thumbnails", "cache_entries") {
		cfg.Thumbnails.CacheEntries = tempCfg.Thumbnails.CacheEntries
	}
	if has(raw, "thumbnails", "grid_width") {
		cfg.Thumbnails.GridWidth = tempCfg.Thumbnails.GridWidth
	}
	if has(raw, "thumbnails", "side_width") {
		cfg.Thumbnails.SideWidth = tempCfg.Thumbnails.SideWidth
	}

	if tempCfg.Theme.Name != "" {
		cfg.Theme.Name = tempCfg.Theme.Name
	}
	if tempCfg.Store.Path != "" {
		cfg.Store.Path = tempCfg.Store.Path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// has reports whether section.key was present in the file, so explicit
// zeros reach Validate instead of silently keeping the default.
func has(raw map[string]yaml.Node, section, key string) bool {
	node, ok := raw[section]
	if !ok || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Scan.Extensions = DefaultExtensions
	cfg.Scan.Order = OrderName

	cfg.Move.DiscardDir = "Discarded"
	cfg.Move.Collision = CollisionRename
	cfg.Move.Workers = 4

	cfg.Thumbnails.CacheEntries = 256
	cfg.Thumbnails.GridWidth = 16
	cfg.Thumbnails.SideWidth = 10

	cfg.Theme.Name = "default"
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewFileError("failed to create config directory", filepath.Dir(path), errors.FileAccessDenied, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.FromOS("failed to write config file", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if _, err := glob.Compile(strings.ToLower(c.Scan.Extensions)); err != nil {
		return errors.NewConfigError("invalid value", "scan.extensions", errors.InvalidConfig, err)
	}

	switch c.Scan.Order {
	case OrderName, OrderModTime, OrderTaken:
	default:
		return errors.NewConfigError("invalid value", "scan.order", errors.InvalidConfig,
			errors.Newf("unknown order %q", c.Scan.Order))
	}

	switch c.Move.Collision {
	case CollisionRename, CollisionSkip, CollisionOverwrite:
	default:
		return errors.NewConfigError("invalid value", "move.collision", errors.InvalidConfig,
			errors.Newf("unknown strategy %q", c.Move.Collision))
	}

	if c.Move.DiscardDir == "" || filepath.IsAbs(c.Move.DiscardDir) || strings.ContainsRune(c.Move.DiscardDir, filepath.Separator) {
		return errors.NewConfigError("must be a plain folder name", "move.discard_dir", errors.InvalidConfig, nil)
	}
	if c.Move.Workers < 1 {
		return errors.NewConfigError("must be >= 1", "move.workers", errors.InvalidConfig, nil)
	}

	if c.Thumbnails.CacheEntries < 1 {
		return errors.NewConfigError("must be >= 1", "thumbnails.cache_entries", errors.InvalidConfig, nil)
	}
	if c.Thumbnails.GridWidth < 4 {
		return errors.NewConfigError("must be >= 4", "thumbnails.grid_width", errors.InvalidConfig, nil)
	}
	if c.Thumbnails.SideWidth < 4 {
		return errors.NewConfigError("must be >= 4", "thumbnails.side_width", errors.InvalidConfig, nil)
	}

	if !slices.Contains(ListThemes(), c.Theme.Name) {
		return errors.NewConfigError("invalid value", "theme.name", errors.InvalidConfig,
			errors.Newf("unknown theme %q", c.Theme.Name))
	}

	return nil
}

// StorePath resolves the layout database location.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "layout.db"), nil
}

// LogPath returns the TUI log file location.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "photocull.log"), nil
}

// GetTheme returns a predefined theme palette by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "240", // Grey
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "238",
		},
		"light": {
			"primary":  "135",
			"success":  "28",
			"warning":  "130",
			"error":    "124",
			"info":     "25",
			"emphasis": "90",
			"border":   "250",
		},
		"monochrome": {
			"primary":  "255",
			"success":  "252",
			"warning":  "248",
			"error":    "245",
			"info":     "250",
			"emphasis": "255",
			"border":   "240",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
