package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-ledger/internal/config"
	"bank-ledger/internal/domain"
	"bank-ledger/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func openAccount(t *testing.T, injector Injector, req service.NewAccount) {
	t.Helper()

	require.NoError(t, injector(func(bank *service.Bank[uint64]) error {
		_, err := bank.Accounts.CreateAccount(context.Background(), req)
		return err
	}))
}

func TestBootstrapServices(t *testing.T) {
	dir := t.TempDir()

	tcs := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "json files",
			cfg: &config.Config{
				StorageDriver: config.DriverJSON,
				CardDataFile:  filepath.Join(dir, "customers.json"),
				BankDataFile:  filepath.Join(dir, "bankdatabase.json"),
			},
		},
		{
			name: "sqlite",
			cfg: &config.Config{
				StorageDriver: config.DriverSQLite,
				SQLiteDSN:     filepath.Join(dir, "bank.db"),
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			injector := BootstrapServices(tc.cfg, discardLogger())
			openAccount(t, injector, service.NewAccount{
				Number: 123, FullName: "Card Holder", Secret: 1, Category: domain.Debit, InitialBalance: decimal.NewFromInt(10),
			})
			require.NoError(t, injector(func(bank *service.Bank[domain.Credential]) error {
				_, err := bank.Accounts.CreateAccount(context.Background(), service.NewAccount{
					FullName: "Acme Corp", Secret: 2, Category: domain.Company,
				})
				return err
			}))
			require.NoError(t, injector(func(db *Database) error { return db.Close() }))

			// a fresh container reads back what the first one stored
			reopened := BootstrapServices(tc.cfg, discardLogger())
			require.NoError(t, reopened(func(card *service.Bank[uint64], bank *service.Bank[domain.Credential]) {
				balance, err := card.Accounts.Balance(123)
				assert.NoError(t, err)
				assert.True(t, balance.Equal(decimal.NewFromInt(10)))

				assert.Len(t, card.Accounts.ListAccounts(), 1)
				assert.Len(t, bank.Accounts.ListAccounts(), 1)
			}))
			require.NoError(t, reopened(func(db *Database) error { return db.Close() }))
		})
	}
}

func TestBootstrapServicesMemory(t *testing.T) {
	injector := BootstrapServices(&config.Config{StorageDriver: config.DriverMemory}, discardLogger())

	require.NoError(t, injector(func(db *Database) {
		assert.Nil(t, db.DB)
	}))
	openAccount(t, injector, service.NewAccount{Number: 1, FullName: "A", Category: domain.ATM})
	require.NoError(t, injector(func(bank *service.Bank[uint64]) {
		assert.Len(t, bank.Accounts.ListAccounts(), 1)
	}))
}
