package repository

import (
	"context"
	"iter"
	"log/slog"
	"sync"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
)

// Store is the in-memory ledger keyed by an account identity K.
// Accounts are kept in insertion order and never leave the store by
// reference: every read returns a deep copy.
type Store[K comparable] struct {
	mu        sync.RWMutex
	keyOf     func(*domain.Account) K
	index     map[K]int
	accounts  []*domain.Account
	persister Persister
	logger    *slog.Logger
}

// NewStore creates an empty Store. A nil persister keeps the ledger in memory only.
func NewStore[K comparable](keyOf func(*domain.Account) K, persister Persister, logger *slog.Logger) *Store[K] {
	if persister == nil {
		persister = NopPersister{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store[K]{
		keyOf:     keyOf,
		index:     make(map[K]int),
		persister: persister,
		logger:    logger,
	}
}

// Open creates a Store and fills it from the persister.
func Open[K comparable](ctx context.Context, keyOf func(*domain.Account) K, persister Persister, logger *slog.Logger) (*Store[K], error) {
	s := NewStore(keyOf, persister, logger)

	loaded, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load ledger", "error", err)
		return nil, errors.Internal("failed to load ledger", err)
	}

	for _, account := range loaded {
		key := s.keyOf(account)
		if _, exists := s.index[key]; exists {
			s.logger.Warn("Duplicate account in stored ledger", "account_number", account.Number)
			return nil, errors.ErrDuplicateIdentity.WithDetails("stored ledger contains a duplicate account")
		}
		s.index[key] = len(s.accounts)
		s.accounts = append(s.accounts, account.Clone())
	}

	s.logger.Info("Ledger loaded", "accounts", len(s.accounts))
	return s, nil
}

// Add inserts a new account and persists the ledger.
func (s *Store[K]) Add(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.keyOf(account)
	if _, exists := s.index[key]; exists {
		s.logger.Warn("Duplicate account creation attempt", "account_number", account.Number)
		return errors.ErrDuplicateIdentity
	}

	stored := account.Clone()
	next := make([]*domain.Account, len(s.accounts), len(s.accounts)+1)
	copy(next, s.accounts)
	next = append(next, stored)

	if err := s.persister.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist new account", "account_number", account.Number, "error", err)
		return errors.Internal("failed to persist ledger", err)
	}

	s.index[key] = len(s.accounts)
	s.accounts = next
	s.logger.Info("Account added", "account_number", account.Number)
	return nil
}

// Find returns a copy of the account stored under key, or nil.
func (s *Store[K]) Find(key K) *domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[key]
	if !ok {
		return nil
	}
	return s.accounts[i].Clone()
}

// Get is Find reporting a missing account as ErrAccountNotFound.
func (s *Store[K]) Get(key K) (*domain.Account, error) {
	account := s.Find(key)
	if account == nil {
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

// All yields copies of the accounts present at call time, in insertion
// order. The sequence can be ranged over more than once.
func (s *Store[K]) All() iter.Seq[*domain.Account] {
	s.mu.RLock()
	snapshot := make([]*domain.Account, len(s.accounts))
	copy(snapshot, s.accounts)
	s.mu.RUnlock()

	return func(yield func(*domain.Account) bool) {
		for _, account := range snapshot {
			// committed accounts are replaced, never mutated, so reading
			// the captured pointer outside the lock is safe
			if !yield(account.Clone()) {
				return
			}
		}
	}
}

// Len returns the number of accounts.
func (s *Store[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Tx is the unit of work handed to WithTransaction callbacks.
type Tx[K comparable] struct {
	store  *Store[K]
	staged map[K]*domain.Account
}

// Find returns the working copy of the account under key, or nil.
// Changes made to the copy are committed when the callback succeeds.
func (tx *Tx[K]) Find(key K) *domain.Account {
	if account, ok := tx.staged[key]; ok {
		return account
	}
	i, ok := tx.store.index[key]
	if !ok {
		return nil
	}
	account := tx.store.accounts[i].Clone()
	tx.staged[key] = account
	return account
}

// Get is Find reporting a missing account as ErrAccountNotFound.
func (tx *Tx[K]) Get(key K) (*domain.Account, error) {
	account := tx.Find(key)
	if account == nil {
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

// WithTransaction runs fn under the store's exclusive lock. When fn
// succeeds the ledger, including the working copies, is persisted and then
// committed. If fn or the save fails nothing changes.
func (s *Store[K]) WithTransaction(ctx context.Context, fn func(*Tx[K]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx[K]{store: s, staged: make(map[K]*domain.Account)}

	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.staged) == 0 {
		return nil
	}

	next := make([]*domain.Account, len(s.accounts))
	copy(next, s.accounts)
	for key, account := range tx.staged {
		next[s.index[key]] = account.Clone()
	}

	if err := s.persister.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist ledger", "error", err)
		return errors.Internal("failed to persist ledger", err)
	}

	s.accounts = next
	return nil
}
