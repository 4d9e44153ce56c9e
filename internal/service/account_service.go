package service

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
)

type AccountService[K comparable] struct {
	store *repository.Store[K]
	settings
}

func NewAccountService[K comparable](store *repository.Store[K], opts ...Option) *AccountService[K] {
	return &AccountService[K]{
		store:    store,
		settings: newSettings(opts),
	}
}

// NewAccount holds the fields of a customer to open.
type NewAccount struct {
	Number         uint64
	FullName       string
	Email          string
	Secret         int
	Category       domain.Category
	InitialBalance decimal.Decimal
}

func (s *AccountService[K]) CreateAccount(ctx context.Context, req NewAccount) (*domain.Account, error) {
	s.logger.Info("Creating account", "account_number", req.Number, "category", req.Category, "initial_balance", req.InitialBalance)

	account, err := s.createAccount(ctx, req)
	s.recorder.Observe("create_account", err)
	return account, err
}

func (s *AccountService[K]) createAccount(ctx context.Context, req NewAccount) (*domain.Account, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "full name is required")
	}
	if !req.Category.Valid() {
		return nil, errors.NewAppErrorf(errors.InvalidInput, "unknown category %q", req.Category)
	}
	if err := checkIdentity[K](req); err != nil {
		return nil, err
	}
	if req.InitialBalance.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidAmount, "initial balance cannot be negative")
	}

	account := &domain.Account{
		Number:       req.Number,
		FullName:     req.FullName,
		Email:        req.Email,
		Secret:       req.Secret,
		Category:     req.Category,
		Balance:      req.InitialBalance,
		Transactions: []domain.Transaction{},
		CreatedAt:    s.clock(),
	}

	if err := s.store.Add(ctx, account); err != nil {
		return nil, err
	}
	return account.Clone(), nil
}

// checkIdentity enforces the rules of the ledger keyed by K: card
// accounts need a number and a card type, bank customers a customer type.
func checkIdentity[K comparable](req NewAccount) error {
	var key K
	switch any(key).(type) {
	case uint64:
		if req.Number == 0 {
			return errors.NewAppError(errors.InvalidInput, "account number must be positive")
		}
		if !req.Category.Card() {
			return errors.NewAppErrorf(errors.InvalidInput, "category %q is not a card type", req.Category)
		}
	case domain.Credential:
		if !req.Category.Customer() {
			return errors.NewAppErrorf(errors.InvalidInput, "category %q is not a customer type", req.Category)
		}
	}
	return nil
}

func (s *AccountService[K]) GetAccount(key K) (*domain.Account, error) {
	return s.store.Get(key)
}

// ListAccounts returns every account in insertion order.
func (s *AccountService[K]) ListAccounts() []*domain.Account {
	return slices.Collect(s.store.All())
}

// Authenticate checks secret against the account stored under key. It does
// not disclose whether the account exists.
func (s *AccountService[K]) Authenticate(key K, secret int) (*domain.Account, error) {
	account := s.store.Find(key)
	if account == nil || account.Secret != secret {
		s.logger.Warn("Authentication failed")
		s.recorder.Observe("authenticate", errors.ErrInvalidCredential)
		return nil, errors.ErrInvalidCredential
	}
	s.recorder.Observe("authenticate", nil)
	return account, nil
}

func (s *AccountService[K]) Balance(key K) (decimal.Decimal, error) {
	account, err := s.store.Get(key)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// History returns the account's transactions in the order they were recorded.
func (s *AccountService[K]) History(key K) ([]domain.Transaction, error) {
	account, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}
	if account.Transactions == nil {
		return []domain.Transaction{}, nil
	}
	return account.Transactions, nil
}
