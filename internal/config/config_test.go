package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "Duit" {
		t.Errorf("expected Name=Duit, got %s", cfg.Name)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected Backend=sqlite, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.SQLite.Driver != "sqlite" {
		t.Errorf("expected Driver=sqlite, got %s", cfg.Storage.SQLite.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("DUIT_DATA_DIR", "")
	t.Setenv("DUIT_STORAGE", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.DataDir = tmpDir
	cfg.Storage.Backend = BackendRedis
	cfg.Storage.Redis.Addr = "redis:6380"
	cfg.Logging.DebugMode = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Storage.Backend != BackendRedis {
		t.Errorf("expected Backend=redis, got %s", loaded.Storage.Backend)
	}
	if loaded.Storage.Redis.Addr != "redis:6380" {
		t.Errorf("expected Addr=redis:6380, got %s", loaded.Storage.Redis.Addr)
	}
	if !loaded.Logging.DebugMode {
		t.Error("expected DebugMode to survive round trip")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("DUIT_DATA_DIR", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetLoadingDelay() != 2000*time.Millisecond {
		t.Errorf("expected 2s loading delay, got %v", cfg.GetLoadingDelay())
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Storage.Backend = "etcd"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown backend")
	}

	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.SQLite.Driver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown driver")
	}

	cfg.Storage.SQLite.Driver = "sqlite3"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}

	cfg.Storage.Backend = BackendRedis
	cfg.Storage.Redis.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing redis addr")
	}

	cfg.Storage.Redis.Addr = "localhost:6379"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid redis config, got error: %v", err)
	}

	cfg.Storage.Redis.Prefix = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty redis prefix")
	}

	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing data dir")
	}
}

func TestConfig_Helpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/duit"

	if got := cfg.SQLitePath(); got != filepath.Join("/var/duit", "duit.db") {
		t.Errorf("SQLitePath = %s", got)
	}
	cfg.Storage.SQLite.Path = ":memory:"
	if got := cfg.SQLitePath(); got != ":memory:" {
		t.Errorf("SQLitePath should keep :memory:, got %s", got)
	}
	if got := cfg.LogsDir(); got != filepath.Join("/var/duit", "logs") {
		t.Errorf("LogsDir = %s", got)
	}

	cfg.Interaction.RevealDelay = "not-a-duration"
	if cfg.GetRevealDelay() != 500*time.Millisecond {
		t.Error("GetRevealDelay should fall back to 500ms")
	}
	cfg.Interaction.LoadingDelay = "10ms"
	if cfg.GetLoadingDelay() != 10*time.Millisecond {
		t.Error("GetLoadingDelay should parse configured value")
	}
	if cfg.GetRedisTimeout() != 5*time.Second {
		t.Error("GetRedisTimeout should default to 5s")
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if lc.IsCategoryEnabled("store") {
		t.Error("categories must be disabled outside debug mode")
	}
	lc.DebugMode = true
	if !lc.IsCategoryEnabled("store") {
		t.Error("unlisted category should default to enabled")
	}
	lc.Categories = map[string]bool{"ui": false}
	if lc.IsCategoryEnabled("ui") {
		t.Error("explicitly disabled category should be off")
	}
}

func TestUIConfig_ResolveDark(t *testing.T) {
	ui := DefaultUIConfig()
	if !ui.ResolveDark(true) || ui.ResolveDark(false) {
		t.Error("auto theme should follow detection")
	}
	ui.Theme = "light"
	if ui.ResolveDark(true) {
		t.Error("light theme should win over detection")
	}
	dark := true
	ui.DarkMode = &dark
	if !ui.ResolveDark(false) {
		t.Error("DarkMode should win over theme")
	}
}
