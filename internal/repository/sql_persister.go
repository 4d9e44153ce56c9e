package repository

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"bank-ledger/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts(
	ledger         VARCHAR(32) NOT NULL,
	ordinal        INTEGER NOT NULL,
	account_number VARCHAR(20) NOT NULL,
	full_name      TEXT NOT NULL,
	email          TEXT NOT NULL,
	secret         INTEGER NOT NULL,
	category       VARCHAR(32) NOT NULL,
	balance        TEXT NOT NULL,
	created_at     VARCHAR(40) NOT NULL,
	PRIMARY KEY (ledger, ordinal)
)`,
	`CREATE TABLE IF NOT EXISTS transactions(
	id              VARCHAR(36) NOT NULL PRIMARY KEY,
	ledger          VARCHAR(32) NOT NULL,
	account_ordinal INTEGER NOT NULL,
	seq             INTEGER NOT NULL,
	occurred_at     VARCHAR(40) NOT NULL,
	kind            VARCHAR(32) NOT NULL,
	amount          TEXT NOT NULL,
	counterparty    VARCHAR(20)
)`,
}

// SQLPersister stores the ledger in the accounts and transactions tables.
// Several ledgers can share a database; rows are scoped by ledger name.
type SQLPersister struct {
	db     DB
	ledger string
	logger *slog.Logger
}

// SQLPersisterOpt is an option of the SQL persister
type SQLPersisterOpt func(p *SQLPersister)

// WithLogger sets the logger of the persister
func WithLogger(logger *slog.Logger) SQLPersisterOpt {
	return func(p *SQLPersister) {
		p.logger = logger
	}
}

// NewSQLPersister returns a persister writing the named ledger to db.
// Works with the postgres and sqlite3 drivers.
func NewSQLPersister(db DB, ledger string, opts ...SQLPersisterOpt) *SQLPersister {
	p := &SQLPersister{
		db:     db,
		ledger: ledger,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Setup creates the tables when missing.
func (p *SQLPersister) Setup(ctx context.Context) error {
	p.logger.Info("Setup SQL storage", "ledger", p.ledger)
	for _, stmt := range schema {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to setup storage")
		}
	}
	return nil
}

func (p *SQLPersister) Load(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := newAccountRepository(p.db, p.ledger, p.logger).ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := newTransactionRepository(p.db, p.ledger, p.logger).ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	for ordinal, account := range accounts {
		account.Transactions = transactions[ordinal]
	}
	return accounts, nil
}

// Save replaces the stored ledger within a single database transaction.
func (p *SQLPersister) Save(ctx context.Context, accounts []*domain.Account) error {
	return p.withTransaction(ctx, func(tx SQLExecutor) error {
		accountRepo := newAccountRepository(tx, p.ledger, p.logger)
		transactionRepo := newTransactionRepository(tx, p.ledger, p.logger)

		if err := transactionRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := accountRepo.DeleteAll(ctx); err != nil {
			return err
		}

		for ordinal, account := range accounts {
			if err := accountRepo.CreateAccount(ctx, ordinal, account); err != nil {
				return err
			}
			for seq, trx := range account.Transactions {
				if err := transactionRepo.CreateTransaction(ctx, ordinal, seq, trx); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (p *SQLPersister) withTransaction(ctx context.Context, fn func(SQLExecutor) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return errors.Wrap(tx.Commit(), "failed to commit ledger")
}
