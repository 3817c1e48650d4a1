package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode   string `env:"GIN_MODE" envDefault:"debug"`
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	TZ        string `env:"TZ" envDefault:"UTC"`
	DBDriver  string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost    string `env:"DB_HOST" envDefault:"localhost"`
	DBPort    string `env:"DB_PORT" envDefault:"5432"`
	DBUser    string `env:"DB_USER" envDefault:"postgres"`
	DBPass    string `env:"DB_PASS"`
	DBName    string `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode string `env:"DB_SSLMODE"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"catalog.db"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`

	// Zero disables rate limiting.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads .env (debug mode only) and then the process environment.
func Load() (*Config, error) {
	if os.Getenv("GIN_MODE") == "" || os.Getenv("GIN_MODE") == "debug" {
		loadDotEnv(".env")
	}

	return Parse(nil)
}

// Parse builds a Config from the given variables, or from the process
// environment when vars is nil.
func Parse(vars map[string]string) (*Config, error) {
	cfg := &Config{}

	opts := env.Options{}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if cfg.LogFormat == "" {
		if cfg.GinMode == "release" {
			cfg.LogFormat = "json"
		} else {
			cfg.LogFormat = "text"
		}
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("parse config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

// loadDotEnv walks up from the working directory looking for filename.
// A missing file is not an error; variables already set are not overridden.
func loadDotEnv(filename string) {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			if err := godotenv.Load(candidate); err != nil {
				slog.Warn("could not load env file", slog.String("path", candidate), slog.Any("error", err))
			} else {
				slog.Info("loaded env file", slog.String("path", candidate))
			}
			return
		} else if !errors.Is(err, fs.ErrNotExist) {
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
