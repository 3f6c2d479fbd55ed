package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverLibSQL   = "libsql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Coach     CoachConfig     `yaml:"coach"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Timezone  string          `yaml:"timezone"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`       // sqlite file
	URL      string         `yaml:"url"`        // libsql database URL
	Token    string         `yaml:"auth_token"` // libsql auth token
	Postgres DatabaseConfig `yaml:"postgres"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// TailscaleConfig serves the API on a tailnet through tsnet instead of a
// plain TCP listener.
type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// CoachConfig configures the Gemini generator. An empty APIKey disables it and
// every coach call returns its fallback.
type CoachConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// CatalogConfig lists extra template files (.yaml, .yml or .toml).
type CatalogConfig struct {
	Files []string `yaml:"files"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// LibSQLDSN returns the libsql URL with the auth token attached.
func (s StorageConfig) LibSQLDSN() string {
	if s.Token == "" {
		return s.URL
	}
	sep := "?"
	if strings.Contains(s.URL, "?") {
		sep = "&"
	}
	return s.URL + sep + "authToken=" + url.QueryEscape(s.Token)
}

// StorageDSN returns the connection string for the configured driver.
func (c *Config) StorageDSN() string {
	switch c.Storage.Driver {
	case DriverLibSQL:
		return c.Storage.LibSQLDSN()
	case DriverPostgres:
		return c.Storage.Postgres.DSN()
	default:
		return c.Storage.Path
	}
}

// TimeoutDuration returns the generator request timeout (30s by default).
func (c CoachConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Location returns the time zone used to name the weekday a session finishes on.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A .env file next to the config file is loaded first if present; variables
// already set in the environment win over it.
// Env vars use the prefix JELLYFIT_ and underscore-separated paths:
//
//	JELLYFIT_SERVER_HOST, JELLYFIT_SERVER_PORT,
//	JELLYFIT_STORAGE_DRIVER, JELLYFIT_STORAGE_PATH,
//	JELLYFIT_STORAGE_URL, JELLYFIT_STORAGE_AUTH_TOKEN,
//	JELLYFIT_DB_HOST, JELLYFIT_DB_PORT, JELLYFIT_DB_NAME,
//	JELLYFIT_DB_USER, JELLYFIT_DB_PASSWORD, JELLYFIT_DB_SSLMODE,
//	JELLYFIT_AUTH_API_KEY, JELLYFIT_GEMINI_API_KEY, JELLYFIT_GEMINI_MODEL,
//	JELLYFIT_TAILSCALE_ENABLED, JELLYFIT_TAILSCALE_HOSTNAME,
//	JELLYFIT_TIMEZONE
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func applyEnvOverrides(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str("JELLYFIT_SERVER_HOST", &cfg.Server.Host)
	num("JELLYFIT_SERVER_PORT", &cfg.Server.Port)
	str("JELLYFIT_STORAGE_DRIVER", &cfg.Storage.Driver)
	str("JELLYFIT_STORAGE_PATH", &cfg.Storage.Path)
	str("JELLYFIT_STORAGE_URL", &cfg.Storage.URL)
	str("JELLYFIT_STORAGE_AUTH_TOKEN", &cfg.Storage.Token)
	str("JELLYFIT_DB_HOST", &cfg.Storage.Postgres.Host)
	num("JELLYFIT_DB_PORT", &cfg.Storage.Postgres.Port)
	str("JELLYFIT_DB_NAME", &cfg.Storage.Postgres.Name)
	str("JELLYFIT_DB_USER", &cfg.Storage.Postgres.User)
	str("JELLYFIT_DB_PASSWORD", &cfg.Storage.Postgres.Password)
	str("JELLYFIT_DB_SSLMODE", &cfg.Storage.Postgres.SSLMode)
	str("JELLYFIT_AUTH_API_KEY", &cfg.Auth.APIKey)
	str("JELLYFIT_GEMINI_API_KEY", &cfg.Coach.APIKey)
	str("JELLYFIT_GEMINI_MODEL", &cfg.Coach.Model)
	if v := os.Getenv("JELLYFIT_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	str("JELLYFIT_TAILSCALE_HOSTNAME", &cfg.Tailscale.Hostname)
	str("JELLYFIT_TIMEZONE", &cfg.Timezone)
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.Path == "" {
		c.Storage.Path = "jellyfit.db"
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.Postgres.Port == 0 {
		c.Storage.Postgres.Port = 5432
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		c.Tailscale.Hostname = "jellyfit"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverLibSQL:
		if c.Storage.URL == "" {
			return fmt.Errorf("storage.url is required for libsql")
		}
	case DriverPostgres:
		pg := c.Storage.Postgres
		if pg.Host == "" {
			return fmt.Errorf("storage.postgres.host is required")
		}
		if pg.Name == "" {
			return fmt.Errorf("storage.postgres.name is required")
		}
		if pg.User == "" {
			return fmt.Errorf("storage.postgres.user is required")
		}
	default:
		return fmt.Errorf("storage.driver %q is not one of sqlite, libsql, postgres, memory", c.Storage.Driver)
	}

	if c.Coach.Timeout != "" {
		if _, err := time.ParseDuration(c.Coach.Timeout); err != nil {
			return fmt.Errorf("coach.timeout: %w", err)
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}
