package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	Deposit         Kind = "Deposit"
	Withdraw        Kind = "Withdraw"
	Transfer        Kind = "Transfer"
	Received        Kind = "Received"
	Loan            Kind = "Loan"
	LoanPayment     Kind = "Loan Payment"
	Mortgage        Kind = "Mortgage"
	MortgagePayment Kind = "Mortgage Payment"
)

// Debit reports whether the kind takes money out of the account.
func (k Kind) Debit() bool {
	switch k {
	case Withdraw, Transfer, LoanPayment, MortgagePayment:
		return true
	}
	return false
}

type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Date         time.Time       `json:"date"`
	Kind         Kind            `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty *uint64         `json:"to_account,omitempty"`
}

// NewTransaction creates a log entry with a fresh id.
func NewTransaction(at time.Time, kind Kind, amount decimal.Decimal, counterparty *uint64) Transaction {
	return Transaction{
		ID:           uuid.New(),
		Date:         at,
		Kind:         kind,
		Amount:       amount,
		Counterparty: counterparty,
	}
}

// SignedAmount returns the amount negated for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind.Debit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) clone() Transaction {
	if t.Counterparty != nil {
		n := *t.Counterparty
		t.Counterparty = &n
	}
	return t
}
