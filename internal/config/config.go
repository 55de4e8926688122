// Package config loads the tracker's settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"

	defaultSQLitePath = "nba_stats.db"
)

// Config is the process configuration. Every field is read from an
// NBA_TRACKER_ prefixed variable.
type Config struct {
	Addr         string        `env:"NBA_TRACKER_ADDR" envDefault:":8080"`
	DBDriver     string        `env:"NBA_TRACKER_DB_DRIVER" envDefault:"sqlite"`
	DBDSN        string        `env:"NBA_TRACKER_DB_DSN"`
	QueryTimeout time.Duration `env:"NBA_TRACKER_QUERY_TIMEOUT" envDefault:"5s"`

	Postgres Postgres

	SessionSecret string        `env:"NBA_TRACKER_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"NBA_TRACKER_SESSION_TTL" envDefault:"24h"`
	SeedOnStart   bool          `env:"NBA_TRACKER_SEED_ON_START" envDefault:"false"`
}

// Postgres holds the connection parts used when no DSN is given.
type Postgres struct {
	Host     string `env:"NBA_TRACKER_PG_HOST" envDefault:"localhost"`
	Port     int    `env:"NBA_TRACKER_PG_PORT" envDefault:"5432"`
	User     string `env:"NBA_TRACKER_PG_USER" envDefault:"postgres"`
	Password string `env:"NBA_TRACKER_PG_PASSWORD"`
	Name     string `env:"NBA_TRACKER_PG_NAME" envDefault:"nba_stats"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the tracker configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.DBDriver {
	case driverSQLite, driverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("query timeout must not be negative")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}

// DSN returns the connection string for the configured driver. An explicit
// NBA_TRACKER_DB_DSN always wins.
func (c Config) DSN() string {
	if dsn := strings.TrimSpace(c.DBDSN); dsn != "" {
		return dsn
	}
	if c.DBDriver == driverPostgres {
		return c.Postgres.DSN()
	}
	return defaultSQLitePath
}

// DSN builds a lib/pq keyword connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Name,
	)
}
