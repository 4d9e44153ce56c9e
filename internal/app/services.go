package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	// SQL drivers selectable through STORAGE_DRIVER
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"bank-ledger/internal/config"
	"bank-ledger/internal/domain"
	"bank-ledger/internal/metrics"
	"bank-ledger/internal/repository"
	"bank-ledger/internal/service"
)

// Ledger names used to scope rows in a shared SQL database
const (
	CardLedger = "card"
	BankLedger = "bank"
)

// Injector is a function that will inject desired services
// to a target function
type Injector func(function interface{}) error

// Database is the SQL handle shared by both ledgers. DB is nil for file
// and in-memory storage.
type Database struct {
	DB *sql.DB
}

// Close releases the connection pool, if any.
func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// NewLogger builds the process logger. Logs go to stderr so they do not
// interleave with console output.
func NewLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// BootstrapServices setup di container with all app services
func BootstrapServices(cfg *config.Config, logger *slog.Logger) Injector {
	c := dig.New()

	c.Provide(func() *config.Config { return cfg })
	c.Provide(func() *slog.Logger { return logger })

	c.Provide(func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		return reg
	})
	c.Provide(func(reg *prometheus.Registry) *metrics.Recorder {
		return metrics.NewRecorder(reg)
	})

	c.Provide(openDatabase)

	c.Provide(func(db *Database) (*repository.Store[uint64], error) {
		persister, err := newPersister(cfg, db, CardLedger, cfg.CardDataFile, logger)
		if err != nil {
			return nil, err
		}
		return repository.Open(context.Background(), domain.ByNumber, persister, logger.With("ledger", CardLedger))
	})
	c.Provide(func(db *Database) (*repository.Store[domain.Credential], error) {
		persister, err := newPersister(cfg, db, BankLedger, cfg.BankDataFile, logger)
		if err != nil {
			return nil, err
		}
		return repository.Open(context.Background(), domain.ByCredential, persister, logger.With("ledger", BankLedger))
	})

	c.Provide(func(store *repository.Store[uint64], recorder *metrics.Recorder) *service.Bank[uint64] {
		return service.NewBank(store, service.WithLogger(logger), service.WithRecorder(recorder))
	})
	c.Provide(func(store *repository.Store[domain.Credential], recorder *metrics.Recorder) *service.Bank[domain.Credential] {
		return service.NewBank(store, service.WithLogger(logger), service.WithRecorder(recorder))
	})

	return func(function interface{}) error {
		return c.Invoke(function)
	}
}

func openDatabase(cfg *config.Config, logger *slog.Logger) (*Database, error) {
	var dsn string
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		dsn = cfg.GetDBConnectionString()
	case config.DriverSQLite:
		dsn = cfg.SQLiteDSN
	default:
		return &Database{}, nil
	}

	db, err := sql.Open(cfg.StorageDriver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.StorageDriver, err)
	}

	logger.Info("Successfully connected to database", "driver", cfg.StorageDriver)
	return &Database{DB: db}, nil
}

func newPersister(cfg *config.Config, db *Database, ledger, file string, logger *slog.Logger) (repository.Persister, error) {
	switch cfg.StorageDriver {
	case config.DriverJSON:
		return repository.NewJSONPersister(file, logger), nil
	case config.DriverPostgres, config.DriverSQLite:
		persister := repository.NewSQLPersister(db.DB, ledger, repository.WithLogger(logger))
		if err := persister.Setup(context.Background()); err != nil {
			return nil, err
		}
		return persister, nil
	default:
		return repository.NopPersister{}, nil
	}
}
