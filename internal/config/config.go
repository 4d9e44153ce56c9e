package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverJSON     = "json"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
	DriverMemory   = "memory"
)

// Config holds the application settings read from the environment.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"json"`
	CardDataFile  string `env:"CARD_DATA_FILE" envDefault:"customers.json"`
	BankDataFile  string `env:"BANK_DATA_FILE" envDefault:"bankdatabase.json"`
	SQLiteDSN     string `env:"SQLITE_DSN" envDefault:"bank.db"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"bank_ledger"`
}

// Load reads a .env file when present and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverJSON, DriverPostgres, DriverSQLite, DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}

// GetDBConnectionString returns the postgres DSN.
func (c *Config) GetDBConnectionString() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBName)
	if c.DBPassword != "" {
		dsn += fmt.Sprintf(" password=%s", c.DBPassword)
	}
	return dsn
}

// SlogLevel converts LogLevel, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
