package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-ledger/internal/domain"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func newSQLitePersister(t *testing.T, db *sql.DB, ledger string) *SQLPersister {
	t.Helper()

	p := NewSQLPersister(db, ledger)
	require.NoError(t, p.Setup(context.Background()))
	return p
}

func sampleLedger() []*domain.Account {
	at := time.Date(2024, 5, 1, 10, 30, 0, 123456789, time.UTC)
	source, destination := uint64(123), uint64(456)

	return []*domain.Account{
		{
			Number:   source,
			FullName: faker.Name(),
			Email:    faker.Email(),
			Secret:   2004,
			Category: domain.Debit,
			Balance:  decimal.RequireFromString("300.00"),
			Transactions: []domain.Transaction{
				domain.NewTransaction(at, domain.Withdraw, decimal.NewFromInt(200), nil),
				domain.NewTransaction(at.Add(time.Second), domain.Transfer, decimal.NewFromInt(500), &destination),
			},
			CreatedAt: at,
		},
		{
			Number:   destination,
			FullName: faker.Name(),
			Email:    faker.Email(),
			Secret:   1111,
			Category: domain.ATM,
			Balance:  decimal.RequireFromString("500"),
			Transactions: []domain.Transaction{
				domain.NewTransaction(at.Add(time.Second), domain.Received, decimal.NewFromInt(500), &source),
			},
			CreatedAt: at,
		},
		{
			FullName:  faker.Name(),
			Secret:    9,
			Category:  domain.Company,
			Balance:   decimal.RequireFromString("12.345"),
			CreatedAt: at,
		},
	}
}

func assertSameLedger(t *testing.T, want, got []*domain.Account) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.Equal(t, w.Number, g.Number)
		assert.Equal(t, w.FullName, g.FullName)
		assert.Equal(t, w.Email, g.Email)
		assert.Equal(t, w.Secret, g.Secret)
		assert.Equal(t, w.Category, g.Category)
		assert.True(t, w.Balance.Equal(g.Balance), "balance of %d: want %s got %s", w.Number, w.Balance, g.Balance)
		assert.True(t, w.CreatedAt.Equal(g.CreatedAt))

		require.Len(t, g.Transactions, len(w.Transactions))
		for j := range w.Transactions {
			wt, gt := w.Transactions[j], g.Transactions[j]
			assert.Equal(t, wt.ID, gt.ID)
			assert.Equal(t, wt.Kind, gt.Kind)
			assert.True(t, wt.Amount.Equal(gt.Amount))
			assert.True(t, wt.Date.Equal(gt.Date))
			assert.Equal(t, wt.Counterparty, gt.Counterparty)
		}
	}
}

func TestSQLPersister(t *testing.T) {
	tcs := []struct {
		name   string
		ledger []*domain.Account
	}{
		{
			name: "empty ledger",
		},
		{
			name:   "round trip",
			ledger: sampleLedger(),
		},
		{
			name:   "account without transactions",
			ledger: sampleLedger()[2:],
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := newSQLitePersister(t, openSQLite(t), "card")
			require.NoError(t, p.Save(context.Background(), tc.ledger))

			got, err := p.Load(context.Background())

			require.NoError(t, err)
			assertSameLedger(t, tc.ledger, got)
		})
	}
}

func TestSQLPersisterSaveReplacesLedger(t *testing.T) {
	p := newSQLitePersister(t, openSQLite(t), "card")
	ledger := sampleLedger()
	require.NoError(t, p.Save(context.Background(), ledger))

	ledger[0].Balance = decimal.NewFromInt(1)
	ledger[0].Transactions = ledger[0].Transactions[:1]
	ledger = ledger[:2]
	require.NoError(t, p.Save(context.Background(), ledger))

	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assertSameLedger(t, ledger, got)
}

func TestSQLPersisterScopesRowsByLedger(t *testing.T) {
	db := openSQLite(t)
	card := newSQLitePersister(t, db, "card")
	bank := newSQLitePersister(t, db, "bank")

	cardLedger := sampleLedger()[:2]
	bankLedger := sampleLedger()[2:]
	require.NoError(t, card.Save(context.Background(), cardLedger))
	require.NoError(t, bank.Save(context.Background(), bankLedger))

	gotCard, err := card.Load(context.Background())
	require.NoError(t, err)
	assertSameLedger(t, cardLedger, gotCard)

	gotBank, err := bank.Load(context.Background())
	require.NoError(t, err)
	assertSameLedger(t, bankLedger, gotBank)
}

func TestSQLPersisterSaveIsAtomic(t *testing.T) {
	p := newSQLitePersister(t, openSQLite(t), "card")
	ledger := sampleLedger()
	require.NoError(t, p.Save(context.Background(), ledger))

	// the repeated transaction id violates the primary key halfway through
	broken := sampleLedger()
	broken[1].Transactions = append(broken[1].Transactions, broken[0].Transactions[0])
	assert.Error(t, p.Save(context.Background(), broken))

	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assertSameLedger(t, ledger, got)
}

func TestSQLPersisterSetupIsIdempotent(t *testing.T) {
	db := openSQLite(t)
	p := newSQLitePersister(t, db, "card")

	assert.NoError(t, p.Setup(context.Background()))
}

func TestStoreWithSQLPersister(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	store, err := Open(ctx, domain.ByNumber, newSQLitePersister(t, db, "card"), nil)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, account(7, "50")))
	require.NoError(t, store.WithTransaction(ctx, func(tx *Tx[uint64]) error {
		a := tx.Find(7)
		a.Balance = a.Balance.Add(decimal.NewFromInt(25))
		a.Append(domain.NewTransaction(time.Now(), domain.Deposit, decimal.NewFromInt(25), nil))
		return nil
	}))

	reopened, err := Open(ctx, domain.ByNumber, NewSQLPersister(db, "card"), nil)
	require.NoError(t, err)
	got := reopened.Find(7)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(75)))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, domain.Deposit, got.Transactions[0].Kind)
}
