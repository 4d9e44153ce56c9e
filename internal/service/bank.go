package service

import "bank-ledger/internal/repository"

// Bank groups the services operating on one ledger.
type Bank[K comparable] struct {
	Accounts     *AccountService[K]
	Transactions *TransactionService[K]
	Credit       *CreditService[K]
}

func NewBank[K comparable](store *repository.Store[K], opts ...Option) *Bank[K] {
	return &Bank[K]{
		Accounts:     NewAccountService(store, opts...),
		Transactions: NewTransactionService(store, opts...),
		Credit:       NewCreditService(store, opts...),
	}
}
