package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
)

type transactionRepository struct {
	db     SQLExecutor
	ledger string
	logger *slog.Logger
}

func newTransactionRepository(db SQLExecutor, ledger string, logger *slog.Logger) *transactionRepository {
	return &transactionRepository{
		db:     db,
		ledger: ledger,
		logger: logger,
	}
}

func (r *transactionRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM transactions WHERE ledger = $1`

	if _, err := r.db.ExecContext(ctx, query, r.ledger); err != nil {
		return errors.Wrap(err, "failed to clear transactions")
	}
	return nil
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, ordinal, seq int, tx domain.Transaction) error {
	query := `
		INSERT INTO transactions
		(id, ledger, account_ordinal, seq, occurred_at, kind, amount, counterparty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Handle optional counterparty
	var counterparty interface{}
	if tx.Counterparty != nil {
		counterparty = strconv.FormatUint(*tx.Counterparty, 10)
	}

	_, err := r.db.ExecContext(ctx,
		query,
		tx.ID.String(),
		r.ledger,
		ordinal,
		seq,
		tx.Date.UTC().Format(time.RFC3339Nano),
		string(tx.Kind),
		tx.Amount.String(),
		counterparty,
	)
	if err != nil {
		r.logger.Error("Failed to store transaction", "transaction_id", tx.ID, "error", err)
		return errors.Wrapf(err, "failed to store transaction %s", tx.ID)
	}
	return nil
}

// ListTransactions returns every transaction of the ledger grouped by the
// owning account's ordinal, each group in chronological order.
func (r *transactionRepository) ListTransactions(ctx context.Context) (map[int][]domain.Transaction, error) {
	query := `
		SELECT account_ordinal, id, occurred_at, kind, amount, counterparty
		FROM transactions WHERE ledger = $1 ORDER BY account_ordinal, seq
	`

	rows, err := r.db.QueryContext(ctx, query, r.ledger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query transactions")
	}
	defer rows.Close()

	out := make(map[int][]domain.Transaction)
	for rows.Next() {
		var (
			ordinal      int
			idStr        string
			occurredAt   string
			kind         string
			amountStr    string
			counterparty sql.NullString
		)
		if err := rows.Scan(&ordinal, &idStr, &occurredAt, &kind, &amountStr, &counterparty); err != nil {
			return nil, errors.Wrap(err, "failed to scan transaction")
		}

		tx, err := parseTransaction(idStr, occurredAt, kind, amountStr, counterparty)
		if err != nil {
			return nil, err
		}
		out[ordinal] = append(out[ordinal], tx)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read transactions")
	}
	return out, nil
}

func parseTransaction(idStr, occurredAt, kind, amountStr string, counterparty sql.NullString) (domain.Transaction, error) {
	var tx domain.Transaction

	id, err := uuid.Parse(idStr)
	if err != nil {
		return tx, errors.Wrapf(err, "failed to parse transaction id %q", idStr)
	}
	date, err := time.Parse(time.RFC3339Nano, occurredAt)
	if err != nil {
		return tx, errors.Wrapf(err, "failed to parse date of transaction %s", idStr)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return tx, errors.Wrapf(err, "failed to parse amount of transaction %s", idStr)
	}

	tx.ID = id
	tx.Date = date
	tx.Kind = domain.Kind(kind)
	tx.Amount = amount

	// Parse optional counterparty
	if counterparty.Valid {
		n, err := strconv.ParseUint(counterparty.String, 10, 64)
		if err != nil {
			return tx, errors.Wrapf(err, "failed to parse counterparty of transaction %s", idStr)
		}
		tx.Counterparty = &n
	}
	return tx, nil
}
