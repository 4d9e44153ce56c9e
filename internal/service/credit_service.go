package service

import (
	"context"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
)

// Product is a credit line offered by the bank.
type Product struct {
	Name           string
	Draw           domain.Kind
	Payment        domain.Kind
	IndividualRate decimal.Decimal
	CompanyRate    decimal.Decimal
}

var (
	LoanProduct = Product{
		Name:           "loan",
		Draw:           domain.Loan,
		Payment:        domain.LoanPayment,
		IndividualRate: decimal.RequireFromString("0.05"),
		CompanyRate:    decimal.RequireFromString("0.04"),
	}
	MortgageProduct = Product{
		Name:           "mortgage",
		Draw:           domain.Mortgage,
		Payment:        domain.MortgagePayment,
		IndividualRate: decimal.RequireFromString("0.04"),
		CompanyRate:    decimal.RequireFromString("0.03"),
	}
)

// Rate returns the interest rate charged to customers of category c.
// Companies get the company rate; every personal category pays the
// individual rate.
func (p Product) Rate(c domain.Category) decimal.Decimal {
	if c == domain.Company {
		return p.CompanyRate
	}
	return p.IndividualRate
}

type CreditService[K comparable] struct {
	store *repository.Store[K]
	settings
}

func NewCreditService[K comparable](store *repository.Store[K], opts ...Option) *CreditService[K] {
	return &CreditService[K]{
		store:    store,
		settings: newSettings(opts),
	}
}

// Apply credits amount to the account. There is no credit check.
func (s *CreditService[K]) Apply(ctx context.Context, product Product, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	s.logger.Info("Applying for credit", "product", product.Name, "amount", amount)

	balance, err := s.apply(ctx, product, key, amount)
	s.recorder.Observe("apply_"+product.Name, err)
	if err != nil {
		s.logger.Warn("Credit application rejected", "product", product.Name, "error", err)
	}
	return balance, err
}

func (s *CreditService[K]) apply(ctx context.Context, product Product, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, errors.ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := s.store.WithTransaction(ctx, func(tx *repository.Tx[K]) error {
		account, err := tx.Get(key)
		if err != nil {
			return err
		}

		account.Balance = account.Balance.Add(amount)
		account.Append(domain.NewTransaction(s.clock(), product.Draw, amount, nil))
		balance = account.Balance
		return nil
	})
	return balance, err
}

// MakePayment debits amount plus interest at the product's rate for the
// account's category. The log records the principal only, and the balance
// may go negative.
func (s *CreditService[K]) MakePayment(ctx context.Context, product Product, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	s.logger.Info("Processing credit payment", "product", product.Name, "amount", amount)

	balance, err := s.makePayment(ctx, product, key, amount)
	s.recorder.Observe(product.Name+"_payment", err)
	if err != nil {
		s.logger.Warn("Credit payment rejected", "product", product.Name, "error", err)
	}
	return balance, err
}

func (s *CreditService[K]) makePayment(ctx context.Context, product Product, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, errors.ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := s.store.WithTransaction(ctx, func(tx *repository.Tx[K]) error {
		account, err := tx.Get(key)
		if err != nil {
			return err
		}

		interest := amount.Mul(product.Rate(account.Category))
		account.Balance = account.Balance.Sub(amount.Add(interest))
		account.Append(domain.NewTransaction(s.clock(), product.Payment, amount, nil))
		balance = account.Balance
		return nil
	})
	return balance, err
}

func (s *CreditService[K]) ApplyForLoan(ctx context.Context, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.Apply(ctx, LoanProduct, key, amount)
}

func (s *CreditService[K]) MakeLoanPayment(ctx context.Context, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.MakePayment(ctx, LoanProduct, key, amount)
}

func (s *CreditService[K]) ApplyForMortgage(ctx context.Context, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.Apply(ctx, MortgageProduct, key, amount)
}

func (s *CreditService[K]) MakeMortgagePayment(ctx context.Context, key K, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.MakePayment(ctx, MortgageProduct, key, amount)
}
