package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the card type of an ATM customer or the customer type of a bank customer.
type Category string

const (
	Debit              Category = "Debit"
	ATM                Category = "ATM"
	PrepaidDebit       Category = "PrepaidDebit"
	ContactlessDebit   Category = "ContactlessDebit"
	InternationalDebit Category = "InternationalDebit"

	Individual Category = "Individual"
	Company    Category = "Company"
)

var cardCategories = map[Category]struct{}{
	Debit:              {},
	ATM:                {},
	PrepaidDebit:       {},
	ContactlessDebit:   {},
	InternationalDebit: {},
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c.Card() || c.Customer()
}

// Card reports whether c is a card type of the card ledger.
func (c Category) Card() bool {
	_, ok := cardCategories[c]
	return ok
}

// Customer reports whether c is a customer type of the bank ledger.
func (c Category) Customer() bool {
	return c == Individual || c == Company
}

type Account struct {
	Number       uint64          `json:"account_number,omitempty"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Secret       int             `json:"secret"`
	Category     Category        `json:"category"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Credential identifies a bank customer by full name and password.
type Credential struct {
	FullName string
	Password int
}

// ByNumber keys accounts by account number.
func ByNumber(a *Account) uint64 {
	return a.Number
}

// ByCredential keys accounts by full name and password.
func ByCredential(a *Account) Credential {
	return Credential{FullName: a.FullName, Password: a.Secret}
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	if a.Transactions != nil {
		cp.Transactions = make([]Transaction, len(a.Transactions))
		for i, tx := range a.Transactions {
			cp.Transactions[i] = tx.clone()
		}
	}
	return &cp
}

// Append records tx at the end of the account's log.
func (a *Account) Append(tx Transaction) {
	a.Transactions = append(a.Transactions, tx)
}
