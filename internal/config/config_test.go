package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// useConfigPath points ConfigPath at a temp file for the test
func useConfigPath(t *testing.T) string {
	t.Helper()
	testConfigPath := filepath.Join(t.TempDir(), "config.json")

	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return testConfigPath
	}
	t.Cleanup(func() {
		ConfigPath = originalConfigPath
	})
	return testConfigPath
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CatalogDir != "" {
		t.Errorf("Expected CatalogDir to be empty for the builtin catalog, got %q", cfg.CatalogDir)
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.Theme != "dark" {
		t.Errorf("Expected Theme to be dark, got %q", cfg.Theme)
	}
	if cfg.DefaultLanguage != "go" {
		t.Errorf("Expected DefaultLanguage to be go, got %q", cfg.DefaultLanguage)
	}
	if cfg.WatchDebounce != 300*time.Millisecond {
		t.Errorf("Expected WatchDebounce to be 300ms, got %v", cfg.WatchDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		cfg := DefaultConfig()
		mutate(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "light theme",
			config:  valid(func(c *Config) { c.Theme = "Light" }),
			wantErr: false,
		},
		{
			name:    "unknown theme",
			config:  valid(func(c *Config) { c.Theme = "solarized" }),
			wantErr: true,
		},
		{
			name:    "empty log_file",
			config:  valid(func(c *Config) { c.LogFile = "" }),
			wantErr: true,
		},
		{
			name:    "empty default_language",
			config:  valid(func(c *Config) { c.DefaultLanguage = "" }),
			wantErr: true,
		},
		{
			name:    "negative width",
			config:  valid(func(c *Config) { c.Width = -1 }),
			wantErr: true,
		},
		{
			name:    "zero debounce",
			config:  valid(func(c *Config) { c.WatchDebounce = 0 }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	testConfigPath := useConfigPath(t)

	testCfg := &Config{
		CatalogDir:      "/test/catalog",
		LogFile:         "/tmp/algodeck-test.log",
		Theme:           "light",
		DefaultLanguage: "python",
		Width:           100,
		WatchDebounce:   2 * time.Second,
	}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.WatchDebounce != testCfg.WatchDebounce {
		t.Errorf("WatchDebounce mismatch: got %v, want %v", loadedCfg.WatchDebounce, testCfg.WatchDebounce)
	}
	if loadedCfg.Theme != "light" {
		t.Errorf("Theme mismatch: got %q", loadedCfg.Theme)
	}
	if loadedCfg.DefaultLanguage != "python" {
		t.Errorf("DefaultLanguage mismatch: got %q", loadedCfg.DefaultLanguage)
	}
	if loadedCfg.Width != 100 {
		t.Errorf("Width mismatch: got %d", loadedCfg.Width)
	}
	if loadedCfg.CatalogDir == "" {
		t.Error("CatalogDir should not be empty")
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	useConfigPath(t)

	// Load should return default config when file doesn't exist
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.WatchDebounce != 300*time.Millisecond {
		t.Errorf("Expected default debounce 300ms, got %v", cfg.WatchDebounce)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	testConfigPath := useConfigPath(t)
	if err := os.WriteFile(testConfigPath, []byte(`{"catalog_dir": "/srv/algos"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CatalogDir != "/srv/algos" {
		t.Errorf("CatalogDir = %q", cfg.CatalogDir)
	}
	if cfg.Theme != "dark" || cfg.DefaultLanguage != "go" {
		t.Errorf("missing fields should keep defaults, got theme=%q language=%q", cfg.Theme, cfg.DefaultLanguage)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad json", data: `{"theme": `},
		{name: "bad duration", data: `{"watch_debounce": "soon"}`},
		{name: "bad theme", data: `{"theme": "neon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testConfigPath := useConfigPath(t)
			if err := os.WriteFile(testConfigPath, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(); err == nil {
				t.Error("expected Load() to fail")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "tilde expansion", input: "~/test"},
		{name: "tilde only", input: "~"},
		{name: "absolute path", input: "/tmp/test"},
		{name: "relative path", input: "catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if !filepath.IsAbs(result) {
				t.Errorf("expandPath(%q) = %q, want an absolute path", tt.input, result)
			}
		})
	}

	if got, _ := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\") = %q, want empty", got)
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	useConfigPath(t)

	testCfg := DefaultConfig()
	testCfg.CatalogDir = "~/algorithms"
	testCfg.LogFile = "~/algodeck.log"

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.CatalogDir[0] == '~' {
		t.Error("CatalogDir was not expanded")
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
