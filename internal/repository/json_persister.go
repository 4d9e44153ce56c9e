package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"bank-ledger/internal/domain"
)

// JSONPersister keeps the ledger in a single indented JSON document:
// an array of accounts, each with its nested transactions.
type JSONPersister struct {
	path   string
	logger *slog.Logger
}

func NewJSONPersister(path string, logger *slog.Logger) *JSONPersister {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &JSONPersister{
		path:   path,
		logger: logger,
	}
}

// Load reads the document. A missing file is an empty ledger.
func (p *JSONPersister) Load(_ context.Context) ([]*domain.Account, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			p.logger.Info("Ledger file not found, starting empty", "path", p.path)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read ledger file %s", p.path)
	}

	var accounts []*domain.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, errors.Wrapf(err, "failed to decode ledger file %s", p.path)
	}
	return accounts, nil
}

// Save replaces the document. The data is written to a temporary file
// first and renamed over the target.
func (p *JSONPersister) Save(_ context.Context, accounts []*domain.Account) error {
	if accounts == nil {
		accounts = []*domain.Account{}
	}

	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode ledger")
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write %s", tmp)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "failed to replace ledger file %s", p.path)
	}

	p.logger.Debug("Ledger saved", "path", p.path, "accounts", len(accounts))
	return nil
}
