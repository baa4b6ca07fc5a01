package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the cinedex configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	SearchIndex SearchIndexConfig `yaml:"search_index"`
	Search      SearchConfig      `yaml:"search"`
	Auth        AuthConfig        `yaml:"auth"`
	Sync        SyncConfig        `yaml:"sync"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	AdminRole string `yaml:"admin_role"`
	Disabled  bool   `yaml:"disabled"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig holds the relational catalog connection.
type CatalogConfig struct {
	Driver             string `yaml:"driver"` // sqlite, postgres, mysql (default: sqlite)
	DSN                string `yaml:"dsn"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
	AutoMigrate        bool   `yaml:"auto_migrate"`
}

// SearchIndexConfig holds the full-text index connection. Empty Addrs
// runs the service in catalog-only mode.
type SearchIndexConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	DefaultDurationMinutes int `yaml:"default_duration_minutes"`
}

// SyncConfig holds index resync settings.
type SyncConfig struct {
	ResyncCron string `yaml:"resync_cron"` // empty disables scheduled resync
	Workers    int    `yaml:"workers"`
	PageSize   int    `yaml:"page_size"`
	OnStartup  bool   `yaml:"on_startup"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// ReadinessTimeoutDuration returns the index dial and ping budget.
func (c SearchIndexConfig) ReadinessTimeoutDuration() time.Duration {
	return time.Duration(c.ReadinessTimeout) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands environment references in data, decodes it, applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.Driver == "" {
		c.Catalog.Driver = "sqlite"
	}
	if c.Catalog.DSN == "" && c.Catalog.Driver == "sqlite" {
		c.Catalog.DSN = "file:cinedex.db?_pragma=busy_timeout(5000)"
	}
	if c.Catalog.MaxOpenConns <= 0 {
		c.Catalog.MaxOpenConns = 10
	}
	if c.Catalog.MaxIdleConns <= 0 {
		c.Catalog.MaxIdleConns = 5
	}
	if c.Catalog.ConnMaxLifetimeSec <= 0 {
		c.Catalog.ConnMaxLifetimeSec = 300
	}
	addrs := c.SearchIndex.Addrs[:0]
	for _, a := range c.SearchIndex.Addrs {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	c.SearchIndex.Addrs = addrs
	if c.SearchIndex.KeyPrefix == "" {
		c.SearchIndex.KeyPrefix = "cinedex:"
	}
	if c.SearchIndex.ReadinessTimeout <= 0 {
		c.SearchIndex.ReadinessTimeout = 5
	}
	if c.Search.DefaultDurationMinutes <= 0 {
		c.Search.DefaultDurationMinutes = 45
	}
	if c.Auth.AdminRole == "" {
		c.Auth.AdminRole = "admin"
	}
	if c.Sync.Workers <= 0 {
		c.Sync.Workers = 4
	}
	if c.Sync.PageSize <= 0 {
		c.Sync.PageSize = 200
	}
	if c.Sync.TimeoutSec <= 0 {
		c.Sync.TimeoutSec = 600
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Catalog.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("catalog.driver must be sqlite, postgres or mysql, got %q", c.Catalog.Driver)
	}
	if c.Catalog.DSN == "" {
		return fmt.Errorf("catalog.dsn is required for driver %q", c.Catalog.Driver)
	}
	if !c.Auth.Disabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required unless auth.disabled is set")
	}
	if c.Sync.PageSize > 1000 {
		return fmt.Errorf("sync.page_size must be at most 1000, got %d", c.Sync.PageSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
