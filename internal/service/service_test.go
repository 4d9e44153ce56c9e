package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/repository"
)

var fixedTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newCardBank returns a card ledger bank over an in-memory store holding
// the given accounts.
func newCardBank(t *testing.T, opts []Option, accounts ...*domain.Account) (*Bank[uint64], *repository.Store[uint64]) {
	t.Helper()

	store := repository.NewStore(domain.ByNumber, nil, nil)
	for _, a := range accounts {
		require.NoError(t, store.Add(context.Background(), a))
	}
	return NewBank(store, append([]Option{WithClock(fixedClock)}, opts...)...), store
}

func cardAccount(number uint64, balance string) *domain.Account {
	return &domain.Account{
		Number:   number,
		FullName: "Wendel Lapura",
		Email:    "lapurawendel95@gmail.com",
		Secret:   2004,
		Category: domain.Debit,
		Balance:  dec(balance),
	}
}

func companyAccount(name string, password int, balance string) *domain.Account {
	return &domain.Account{
		FullName: name,
		Secret:   password,
		Category: domain.Company,
		Balance:  dec(balance),
	}
}

func newCredentialStore(t *testing.T, accounts ...*domain.Account) *repository.Store[domain.Credential] {
	t.Helper()

	store := repository.NewStore(domain.ByCredential, nil, nil)
	for _, a := range accounts {
		require.NoError(t, store.Add(context.Background(), a))
	}
	return store
}
