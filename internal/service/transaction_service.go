package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
)

type TransactionService[K comparable] struct {
	store *repository.Store[K]
	settings
}

func NewTransactionService[K comparable](store *repository.Store[K], opts ...Option) *TransactionService[K] {
	return &TransactionService[K]{
		store:    store,
		settings: newSettings(opts),
	}
}

// Receipt describes a completed withdrawal.
type Receipt struct {
	TransactionID uuid.UUID
	AccountNumber uint64
	Amount        decimal.Decimal
	Balance       decimal.Decimal
	Date          time.Time
}

// ReceiptFunc is called once a withdrawal has been committed.
type ReceiptFunc func(Receipt)

// Withdraw takes amount out of the account and returns the new balance.
// onReceipt may be nil; it runs after the change is committed.
func (s *TransactionService[K]) Withdraw(ctx context.Context, key K, amount decimal.Decimal, onReceipt ReceiptFunc) (decimal.Decimal, error) {
	s.logger.Info("Processing withdrawal", "amount", amount)

	if !amount.IsPositive() {
		s.recorder.Observe("withdraw", errors.ErrInvalidAmount)
		return decimal.Zero, errors.ErrInvalidAmount
	}

	var receipt Receipt
	err := s.store.WithTransaction(ctx, func(tx *repository.Tx[K]) error {
		account, err := tx.Get(key)
		if err != nil {
			return err
		}
		if amount.GreaterThan(account.Balance) {
			return errors.ErrInsufficientFunds
		}

		trx := domain.NewTransaction(s.clock(), domain.Withdraw, amount, nil)
		account.Balance = account.Balance.Sub(amount)
		account.Append(trx)

		receipt = Receipt{
			TransactionID: trx.ID,
			AccountNumber: account.Number,
			Amount:        amount,
			Balance:       account.Balance,
			Date:          trx.Date,
		}
		return nil
	})
	s.recorder.Observe("withdraw", err)
	if err != nil {
		s.logger.Warn("Withdrawal rejected", "error", err)
		return decimal.Zero, err
	}

	s.logger.Info("Withdrawal completed", "transaction_id", receipt.TransactionID, "new_balance", receipt.Balance)
	if onReceipt != nil {
		onReceipt(receipt)
	}
	return receipt.Balance, nil
}

// Deposit adds amount to the account and returns the new balance.
func (s *TransactionService[K]) Deposit(ctx context.Context, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	s.logger.Info("Processing deposit", "amount", amount)

	if !amount.IsPositive() {
		s.recorder.Observe("deposit", errors.ErrInvalidAmount)
		return decimal.Zero, errors.ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := s.store.WithTransaction(ctx, func(tx *repository.Tx[K]) error {
		account, err := tx.Get(key)
		if err != nil {
			return err
		}

		account.Balance = account.Balance.Add(amount)
		account.Append(domain.NewTransaction(s.clock(), domain.Deposit, amount, nil))
		balance = account.Balance
		return nil
	})
	s.recorder.Observe("deposit", err)
	if err != nil {
		s.logger.Warn("Deposit rejected", "error", err)
		return decimal.Zero, err
	}
	return balance, nil
}

// Transfer moves amount from source to destination as one unit. Every
// rejection other than a non-positive amount is reported as
// ErrTransferFailed; the details name the cause.
func (s *TransactionService[K]) Transfer(ctx context.Context, source, destination K, amount decimal.Decimal) error {
	s.logger.Info("Processing transfer", "amount", amount)

	if !amount.IsPositive() {
		s.recorder.Observe("transfer", errors.ErrInvalidAmount)
		return errors.ErrInvalidAmount
	}
	if source == destination {
		s.recorder.Observe("transfer", errors.ErrTransferFailed)
		return errors.ErrTransferFailed.WithDetails("source and destination are the same account")
	}

	err := s.store.WithTransaction(ctx, func(tx *repository.Tx[K]) error {
		sourceAccount := tx.Find(source)
		if sourceAccount == nil {
			return errors.ErrTransferFailed.WithDetails("source account not found")
		}
		destAccount := tx.Find(destination)
		if destAccount == nil {
			return errors.ErrTransferFailed.WithDetails("destination account not found")
		}
		if amount.GreaterThan(sourceAccount.Balance) {
			return errors.ErrTransferFailed.WithDetails("insufficient funds")
		}

		now := s.clock()
		sourceAccount.Balance = sourceAccount.Balance.Sub(amount)
		destAccount.Balance = destAccount.Balance.Add(amount)
		sourceAccount.Append(domain.NewTransaction(now, domain.Transfer, amount, counterparty(destAccount.Number)))
		destAccount.Append(domain.NewTransaction(now, domain.Received, amount, counterparty(sourceAccount.Number)))
		return nil
	})
	s.recorder.Observe("transfer", err)
	if err != nil {
		s.logger.Warn("Transfer failed", "error", err)
		return err
	}

	s.logger.Info("Transfer completed successfully", "amount", amount)
	return nil
}
