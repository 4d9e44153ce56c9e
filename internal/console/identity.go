package console

import (
	stderrors "errors"

	"bank-ledger/internal/domain"
)

var (
	errInvalidNumber       = stderrors.New("please enter a valid number")
	errTransfersNotOffered = stderrors.New("transfers are only available to card customers")
)

// Identity reads account keys of type K from the console.
type Identity[K comparable] interface {
	// Login reads the key and secret of the customer signing in.
	Login(p *Prompter) (K, int, error)
	// Counterparty reads the key of a transfer destination.
	Counterparty(p *Prompter) (K, error)
}

// CardIdentity signs customers in with account number and PIN.
type CardIdentity struct{}

func (CardIdentity) Login(p *Prompter) (uint64, int, error) {
	number, err := p.Uint("Enter your account number: ")
	if err != nil {
		return 0, 0, err
	}
	pin, err := p.Int("Enter your PIN: ")
	if err != nil {
		return 0, 0, err
	}
	return number, pin, nil
}

func (CardIdentity) Counterparty(p *Prompter) (uint64, error) {
	return p.Uint("Enter the destination account number: ")
}

// BankIdentity signs customers in with full name and password.
type BankIdentity struct{}

func (BankIdentity) Login(p *Prompter) (domain.Credential, int, error) {
	name, err := p.Line("Enter your full name: ")
	if err != nil {
		return domain.Credential{}, 0, err
	}
	password, err := p.Int("Enter your password: ")
	if err != nil {
		return domain.Credential{}, 0, err
	}
	return domain.Credential{FullName: name, Password: password}, password, nil
}

// Counterparty is not offered: bank customers are keyed by their
// password, which a sender cannot know.
func (BankIdentity) Counterparty(*Prompter) (domain.Credential, error) {
	return domain.Credential{}, errTransfersNotOffered
}
