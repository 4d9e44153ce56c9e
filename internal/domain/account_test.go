package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCloneIsDeep(t *testing.T) {
	to := uint64(42)
	original := &Account{
		Number:   1234,
		FullName: "Wendel Lapura",
		Balance:  decimal.RequireFromString("100.00"),
		Transactions: []Transaction{
			NewTransaction(time.Now(), Transfer, decimal.NewFromInt(10), &to),
		},
	}

	cp := original.Clone()
	cp.Balance = decimal.Zero
	cp.Transactions[0].Amount = decimal.NewFromInt(99)
	*cp.Transactions[0].Counterparty = 7
	cp.Append(NewTransaction(time.Now(), Deposit, decimal.NewFromInt(1), nil))

	assert.True(t, original.Balance.Equal(decimal.RequireFromString("100.00")))
	require.Len(t, original.Transactions, 1)
	assert.True(t, original.Transactions[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, uint64(42), *original.Transactions[0].Counterparty)
}

func TestKeyFunctions(t *testing.T) {
	account := &Account{Number: 234523321, FullName: "Ada", Secret: 2004}

	assert.Equal(t, uint64(234523321), ByNumber(account))
	assert.Equal(t, Credential{FullName: "Ada", Password: 2004}, ByCredential(account))
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{Debit, ATM, PrepaidDebit, ContactlessDebit, InternationalDebit, Individual, Company} {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("Gold").Valid())
	assert.False(t, Category("").Valid())
}

func TestCategoryLedgerSide(t *testing.T) {
	for _, c := range []Category{Debit, ATM, PrepaidDebit, ContactlessDebit, InternationalDebit} {
		assert.True(t, c.Card(), c)
		assert.False(t, c.Customer(), c)
	}
	for _, c := range []Category{Individual, Company} {
		assert.True(t, c.Customer(), c)
		assert.False(t, c.Card(), c)
	}
	assert.False(t, Category("Gold").Card())
	assert.False(t, Category("Gold").Customer())
}
