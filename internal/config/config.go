package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/gerunddev/algodeck/internal/styles"
)

// Config represents the algodeck configuration
type Config struct {
	CatalogDir      string        `json:"catalog_dir,omitempty"`
	LogFile         string        `json:"log_file"`
	Theme           string        `json:"theme"`
	DefaultLanguage string        `json:"default_language"`
	Width           int           `json:"width,omitempty"`
	WatchDebounce   time.Duration `json:"-"` // Custom JSON handling below
}

// rawConfig is the on-disk form, with durations as strings
type rawConfig struct {
	CatalogDir      string `json:"catalog_dir,omitempty"`
	LogFile         string `json:"log_file"`
	Theme           string `json:"theme"`
	DefaultLanguage string `json:"default_language"`
	Width           int    `json:"width,omitempty"`
	WatchDebounce   string `json:"watch_debounce"`
}

// DefaultConfig returns default configuration. An empty CatalogDir selects
// the built-in catalog.
func DefaultConfig() *Config {
	return &Config{
		LogFile:         filepath.Join(os.TempDir(), "algodeck.log"),
		Theme:           styles.ThemeDark,
		DefaultLanguage: "go",
		WatchDebounce:   300 * time.Millisecond,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "algodeck", "config.json")
	}
	return filepath.Join(home, ".config", "algodeck", "config.json")
}

// StateFilePath returns the path to the session state file
// Uses platform-specific XDG data directory
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "algodeck", "state.json")
}

// Load reads configuration from the config directory
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.CatalogDir = raw.CatalogDir
	cfg.Width = raw.Width
	if raw.LogFile != "" {
		cfg.LogFile = raw.LogFile
	}
	if raw.Theme != "" {
		cfg.Theme = raw.Theme
	}
	if raw.DefaultLanguage != "" {
		cfg.DefaultLanguage = raw.DefaultLanguage
	}
	if raw.WatchDebounce != "" {
		cfg.WatchDebounce, err = time.ParseDuration(raw.WatchDebounce)
		if err != nil {
			return nil, fmt.Errorf("invalid watch_debounce format '%s': %w", raw.WatchDebounce, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		CatalogDir:      c.CatalogDir,
		LogFile:         c.LogFile,
		Theme:           c.Theme,
		DefaultLanguage: c.DefaultLanguage,
		Width:           c.Width,
		WatchDebounce:   c.WatchDebounce.String(),
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.DefaultLanguage == "" {
		return fmt.Errorf("default_language cannot be empty")
	}
	if _, err := styles.ThemeByName(c.Theme); err != nil {
		return err
	}
	if c.Width < 0 {
		return fmt.Errorf("width cannot be negative")
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("watch_debounce must be positive")
	}
	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.CatalogDir, err = expandPath(c.CatalogDir)
	if err != nil {
		return fmt.Errorf("failed to expand catalog_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
