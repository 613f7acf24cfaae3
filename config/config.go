package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Database holds connection settings for the relational store. Driver is
// either "postgres" (production) or "sqlite3" (embedded / tests); Path is
// only used by sqlite3.
type Database struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
	Path     string `toml:"path"`
}

// Config is the full server configuration.
type Config struct {
	ListenAddr       string   `toml:"listen_addr"`
	LogLevel         string   `toml:"log_level"`
	QueryTimeoutSecs int      `toml:"query_timeout_seconds"`
	Database         Database `toml:"database"`
}

func defaults() *Config {
	return &Config{
		ListenAddr:       ":3000",
		LogLevel:         "info",
		QueryTimeoutSecs: 5,
		Database: Database{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
			Path:    "todo.db",
		},
	}
}

// Load builds the configuration in priority order: defaults, then the TOML
// file at path (if non-empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("postgres config requires DB_USER and DB_NAME (or the [database] user/name keys)")
		}
	case "sqlite3":
		if c.Database.Path == "" {
			return fmt.Errorf("sqlite3 config requires DB_PATH (or the [database] path key)")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// QueryTimeout returns the per-statement store timeout.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSecs) * time.Second
}

// DSN renders the driver-specific connection string. The sqlite DSN enables
// foreign key enforcement, which the cascade semantics rely on.
func (d Database) DSN() string {
	if d.Driver == "sqlite3" {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", d.Path)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
