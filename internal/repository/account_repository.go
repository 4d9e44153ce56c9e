package repository

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
)

type accountRepository struct {
	db     SQLExecutor
	ledger string
	logger *slog.Logger
}

func newAccountRepository(db SQLExecutor, ledger string, logger *slog.Logger) *accountRepository {
	return &accountRepository{
		db:     db,
		ledger: ledger,
		logger: logger,
	}
}

func (r *accountRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM accounts WHERE ledger = $1`

	if _, err := r.db.ExecContext(ctx, query, r.ledger); err != nil {
		return errors.Wrap(err, "failed to clear accounts")
	}
	return nil
}

func (r *accountRepository) CreateAccount(ctx context.Context, ordinal int, account *domain.Account) error {
	query := `
		INSERT INTO accounts
		(ledger, ordinal, account_number, full_name, email, secret, category, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		r.ledger,
		ordinal,
		strconv.FormatUint(account.Number, 10),
		account.FullName,
		account.Email,
		account.Secret,
		string(account.Category),
		account.Balance.String(),
		account.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		r.logger.Error("Failed to store account", "account_number", account.Number, "error", err)
		return errors.Wrapf(err, "failed to store account %d", account.Number)
	}
	return nil
}

// ListAccounts returns the ledger's accounts in insertion order.
func (r *accountRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT account_number, full_name, email, secret, category, balance, created_at
		FROM accounts WHERE ledger = $1 ORDER BY ordinal
	`

	rows, err := r.db.QueryContext(ctx, query, r.ledger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query accounts")
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read accounts")
	}
	return accounts, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		account    domain.Account
		numberStr  string
		category   string
		balanceStr string
		createdAt  string
	)

	if err := row.Scan(
		&numberStr,
		&account.FullName,
		&account.Email,
		&account.Secret,
		&category,
		&balanceStr,
		&createdAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to scan account")
	}

	number, err := strconv.ParseUint(numberStr, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse account number %q", numberStr)
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse balance of account %d", number)
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse created_at of account %d", number)
	}

	account.Number = number
	account.Category = domain.Category(category)
	account.Balance = balance
	account.CreatedAt = created
	return &account, nil
}
