package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Duit configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// DataDir holds the database, logs and backups.
	DataDir string `yaml:"data_dir"`

	// Storage backend for profile, counter and history keys
	Storage StorageConfig `yaml:"storage"`

	// Simulated delays in the setup wizard
	Interaction InteractionConfig `yaml:"interaction"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StorageConfig configures the key-value store.
type StorageConfig struct {
	Backend string       `yaml:"backend"` // sqlite, redis, memory
	SQLite  SQLiteConfig `yaml:"sqlite"`
	Redis   RedisConfig  `yaml:"redis"`
}

// SQLiteConfig configures the SQLite store.
type SQLiteConfig struct {
	Driver string `yaml:"driver"` // sqlite (pure Go) or sqlite3 (cgo)
	Path   string `yaml:"path"`   // relative paths resolve against DataDir
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
	Timeout  string `yaml:"timeout"`
}

// InteractionConfig holds the test-interaction delays.
type InteractionConfig struct {
	LoadingDelay string `yaml:"loading_delay"`
	RevealDelay  string `yaml:"reveal_delay"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "Duit",
		Version: "1.0.0",
		DataDir: DefaultDataDir(),

		Storage: StorageConfig{
			Backend: BackendSQLite,
			SQLite: SQLiteConfig{
				Driver: "sqlite",
				Path:   "duit.db",
			},
			Redis: RedisConfig{
				Addr:    "localhost:6379",
				Prefix:  "duit:",
				Timeout: "5s",
			},
		},

		Interaction: InteractionConfig{
			LoadingDelay: "2000ms",
			RevealDelay:  "500ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},

		UI: *DefaultUIConfig(),
	}
}

// DefaultDataDir returns ~/.duit, or .duit when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".duit"
	}
	return filepath.Join(home, ".duit")
}

// DefaultPath returns the config file location inside dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Missing file: defaults plus environment
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("DUIT_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if backend := os.Getenv("DUIT_STORAGE"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if addr := os.Getenv("DUIT_REDIS_ADDR"); addr != "" {
		c.Storage.Redis.Addr = addr
	}
	if v := os.Getenv("DUIT_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			c.UI.DarkMode = &dark
		}
	}
}

// SQLitePath returns the database path, resolved against DataDir when relative.
func (c *Config) SQLitePath() string {
	p := c.Storage.SQLite.Path
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// LogsDir returns the directory debug logs are written to.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// GetLoadingDelay returns the test-interaction loading delay as a duration.
func (c *Config) GetLoadingDelay() time.Duration {
	return parseDuration(c.Interaction.LoadingDelay, 2000*time.Millisecond)
}

// GetRevealDelay returns the delay between loading and message reveal.
func (c *Config) GetRevealDelay() time.Duration {
	return parseDuration(c.Interaction.RevealDelay, 500*time.Millisecond)
}

// GetRedisTimeout returns the Redis dial/ping timeout as a duration.
func (c *Config) GetRedisTimeout() time.Duration {
	return parseDuration(c.Storage.Redis.Timeout, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// ValidBackends lists all supported storage backends.
var ValidBackends = []string{BackendSQLite, BackendRedis, BackendMemory}

// ValidSQLiteDrivers lists the registered database/sql driver names.
var ValidSQLiteDrivers = []string{"sqlite", "sqlite3"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir not configured (set DUIT_DATA_DIR or --data-dir)")
	}

	if !contains(ValidBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s (valid: %v)", c.Storage.Backend, ValidBackends)
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if !contains(ValidSQLiteDrivers, c.Storage.SQLite.Driver) {
			return fmt.Errorf("invalid sqlite driver: %s (valid: %v)", c.Storage.SQLite.Driver, ValidSQLiteDrivers)
		}
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("sqlite path not configured")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("redis addr not configured (set DUIT_REDIS_ADDR)")
		}
		// Clear deletes everything under the prefix; empty would match the whole DB.
		if c.Storage.Redis.Prefix == "" {
			return fmt.Errorf("redis prefix must not be empty")
		}
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
