package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
)

func TestCreateAccount(t *testing.T) {
	bank, store := newCardBank(t, nil)
	name, email := faker.Name(), faker.Email()

	account, err := bank.Accounts.CreateAccount(context.Background(), NewAccount{
		Number:         123,
		FullName:       name,
		Email:          email,
		Secret:         2004,
		Category:       domain.Debit,
		InitialBalance: dec("1000"),
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(123), account.Number)
	assert.Equal(t, name, account.FullName)
	assert.Equal(t, email, account.Email)
	assert.True(t, account.Balance.Equal(dec("1000")))
	assert.Empty(t, account.Transactions)
	assert.Equal(t, fixedTime, account.CreatedAt)
	assert.Equal(t, 1, store.Len())
}

func TestCreateAccountValidation(t *testing.T) {
	tcs := []struct {
		name string
		req  NewAccount
		code errors.ErrorCode
	}{
		{
			name: "missing name",
			req:  NewAccount{Number: 1, FullName: "  ", Category: domain.Debit},
			code: errors.InvalidInput,
		},
		{
			name: "unknown category",
			req:  NewAccount{Number: 1, FullName: "A", Category: "Gold"},
			code: errors.InvalidInput,
		},
		{
			name: "zero account number",
			req:  NewAccount{Number: 0, FullName: "A", Category: domain.Debit},
			code: errors.InvalidInput,
		},
		{
			name: "customer type on the card ledger",
			req:  NewAccount{Number: 1, FullName: "A", Category: domain.Company},
			code: errors.InvalidInput,
		},
		{
			name: "negative balance",
			req:  NewAccount{Number: 1, FullName: "A", Category: domain.Debit, InitialBalance: dec("-1")},
			code: errors.InvalidAmount,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			bank, store := newCardBank(t, nil)

			_, err := bank.Accounts.CreateAccount(context.Background(), tc.req)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	bank, store := newCardBank(t, nil, cardAccount(123, "10"))

	_, err := bank.Accounts.CreateAccount(context.Background(), NewAccount{
		Number: 123, FullName: "Other", Category: domain.ATM,
	})

	assert.True(t, stderrors.Is(err, errors.ErrDuplicateIdentity))
	assert.Equal(t, 1, store.Len())
}

func TestCreateAccountDuplicateCredential(t *testing.T) {
	store := repository.NewStore(domain.ByCredential, nil, nil)
	bank := NewBank(store)
	req := NewAccount{FullName: "Acme Corp", Secret: 42, Category: domain.Company}

	_, err := bank.Accounts.CreateAccount(context.Background(), req)
	require.NoError(t, err)

	_, err = bank.Accounts.CreateAccount(context.Background(), req)
	assert.True(t, stderrors.Is(err, errors.ErrDuplicateIdentity))

	req.Secret = 43
	_, err = bank.Accounts.CreateAccount(context.Background(), req)
	assert.NoError(t, err, "same name with another password is a different identity")
}

func TestCreateAccountBankLedgerCategories(t *testing.T) {
	bank := NewBank(repository.NewStore(domain.ByCredential, nil, nil))

	_, err := bank.Accounts.CreateAccount(context.Background(), NewAccount{FullName: "Ada", Secret: 1, Category: domain.Debit})
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.InvalidInput, appErr.Code)
	assert.Empty(t, bank.Accounts.ListAccounts())

	account, err := bank.Accounts.CreateAccount(context.Background(), NewAccount{FullName: "Ada", Secret: 1, Category: domain.Individual})
	require.NoError(t, err)
	assert.Zero(t, account.Number, "bank customers have no account number")
}

func TestAuthenticate(t *testing.T) {
	bank, _ := newCardBank(t, nil, cardAccount(123, "10"))

	account, err := bank.Accounts.Authenticate(123, 2004)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), account.Number)

	_, err = bank.Accounts.Authenticate(123, 1)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidCredential))

	_, err = bank.Accounts.Authenticate(999, 2004)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidCredential))
}

func TestBalanceAndHistory(t *testing.T) {
	bank, _ := newCardBank(t, nil, cardAccount(123, "10"))

	balance, err := bank.Accounts.Balance(123)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("10")))

	history, err := bank.Accounts.History(123)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	_, err = bank.Accounts.Balance(999)
	assert.True(t, stderrors.Is(err, errors.ErrAccountNotFound))
	_, err = bank.Accounts.History(999)
	assert.True(t, stderrors.Is(err, errors.ErrAccountNotFound))
}

func TestListAccounts(t *testing.T) {
	bank, _ := newCardBank(t, nil, cardAccount(3, "1"), cardAccount(1, "1"), cardAccount(2, "1"))

	accounts := bank.Accounts.ListAccounts()

	require.Len(t, accounts, 3)
	assert.Equal(t, uint64(3), accounts[0].Number)
	assert.Equal(t, uint64(1), accounts[1].Number)
	assert.Equal(t, uint64(2), accounts[2].Number)
}
