// Package console runs the interactive teller menu on top of the ledger services.
package console

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/mask"
	"bank-ledger/internal/service"
)

const (
	maxLoginAttempts = 3
	separator        = "\n____________________________________________\n"
)

type Teller[K comparable] struct {
	bank     *service.Bank[K]
	identity Identity[K]
	prompt   *Prompter
}

func NewTeller[K comparable](bank *service.Bank[K], identity Identity[K], in io.Reader, out io.Writer) *Teller[K] {
	return &Teller[K]{
		bank:     bank,
		identity: identity,
		prompt:   NewPrompter(in, out),
	}
}

// Run signs a customer in and serves the menu until Exit or end of input.
func (t *Teller[K]) Run(ctx context.Context) error {
	key, account, err := t.login()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	t.showCustomer(account)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := t.prompt.Line(menu)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var opErr error
		switch choice {
		case "1":
			opErr = t.withdraw(ctx, key)
		case "2":
			opErr = t.deposit(ctx, key)
		case "3":
			opErr = t.balance(key)
		case "4":
			opErr = t.transfer(ctx, key)
		case "5":
			opErr = t.credit(ctx, key, service.LoanProduct)
		case "6":
			opErr = t.credit(ctx, key, service.MortgageProduct)
		case "7":
			opErr = t.history(key)
		case "8":
			t.prompt.Printf("\nThank you for banking with us. Goodbye!\n")
			return nil
		default:
			t.prompt.Printf("\nInvalid option, please choose 1-8.\n")
			continue
		}

		if opErr != nil {
			if stderrors.Is(opErr, io.EOF) {
				return nil
			}
			t.report(opErr)
		}
	}
}

const menu = `
1. Withdraw
2. Deposit
3. Check Balance
4. Transfer
5. Loan
6. Mortgage
7. Transaction History
8. Exit
Choose an option: `

func (t *Teller[K]) login() (K, *domain.Account, error) {
	var zero K
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		key, secret, err := t.identity.Login(t.prompt)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return zero, nil, err
			}
			t.report(err)
			continue
		}

		account, err := t.bank.Accounts.Authenticate(key, secret)
		if err == nil {
			return key, account, nil
		}
		t.report(err)
	}

	t.prompt.Printf("\nToo many failed attempts.\n")
	return zero, nil, errors.ErrInvalidCredential
}

func (t *Teller[K]) showCustomer(account *domain.Account) {
	t.prompt.Printf("\nWelcome, %s!\n", account.FullName)
	t.prompt.Printf("Type: %s\n", account.Category)
	t.prompt.Printf("Email: %s\n", mask.Email(account.Email))
	if account.Number != 0 {
		t.prompt.Printf("Account number: %s\n", mask.AccountNumber(account.Number))
	}
}

func (t *Teller[K]) withdraw(ctx context.Context, key K) error {
	amount, err := t.prompt.Amount("Enter amount to withdraw: ")
	if err != nil {
		return err
	}

	_, err = t.bank.Transactions.Withdraw(ctx, key, amount, func(r service.Receipt) {
		t.prompt.Printf(separator)
		t.prompt.Printf("\nCash withdrawn successfully!\n")
		t.prompt.Printf("Date withdrawn: %s\n", r.Date.Format("2006-01-02 15:04:05"))
		t.prompt.Printf("New balance: %s\n", money(r.Balance))
		t.prompt.Printf(separator)
	})
	return err
}

func (t *Teller[K]) deposit(ctx context.Context, key K) error {
	amount, err := t.prompt.Amount("Enter amount to deposit: ")
	if err != nil {
		return err
	}

	balance, err := t.bank.Transactions.Deposit(ctx, key, amount)
	if err != nil {
		return err
	}
	t.prompt.Printf("%s\nDeposit successful!\nNew balance: %s\n%s", separator, money(balance), separator)
	return nil
}

func (t *Teller[K]) balance(key K) error {
	balance, err := t.bank.Accounts.Balance(key)
	if err != nil {
		return err
	}
	t.prompt.Printf("%s\nBalance: %s\n%s", separator, money(balance), separator)
	return nil
}

func (t *Teller[K]) transfer(ctx context.Context, key K) error {
	destination, err := t.identity.Counterparty(t.prompt)
	if err != nil {
		return err
	}
	amount, err := t.prompt.Amount("Enter amount to transfer: ")
	if err != nil {
		return err
	}

	if err := t.bank.Transactions.Transfer(ctx, key, destination, amount); err != nil {
		return err
	}
	t.prompt.Printf("%s\nTransfer successful! %s transferred.\n%s", separator, money(amount), separator)
	return nil
}

func (t *Teller[K]) credit(ctx context.Context, key K, product service.Product) error {
	choice, err := t.prompt.Line("\n1. Apply for " + product.Name + "\n2. Make " + product.Name + " payment\nChoose an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		amount, err := t.prompt.Amount("Enter " + product.Name + " amount: ")
		if err != nil {
			return err
		}
		balance, err := t.bank.Credit.Apply(ctx, product, key, amount)
		if err != nil {
			return err
		}
		t.prompt.Printf("%s\nApplication for %s successful!\nNew balance: %s\n%s", separator, product.Name, money(balance), separator)
	case "2":
		amount, err := t.prompt.Amount("Enter payment amount: ")
		if err != nil {
			return err
		}
		balance, err := t.bank.Credit.MakePayment(ctx, product, key, amount)
		if err != nil {
			return err
		}
		t.prompt.Printf("%s\nPayment for %s successful!\nNew balance: %s\n%s", separator, product.Name, money(balance), separator)
	default:
		t.prompt.Printf("\nInvalid option.\n")
	}
	return nil
}

func (t *Teller[K]) history(key K) error {
	transactions, err := t.bank.Accounts.History(key)
	if err != nil {
		return err
	}

	t.prompt.Printf("\nTransaction history\n\n")
	if len(transactions) == 0 {
		t.prompt.Printf("No transactions yet.\n")
		return nil
	}
	for _, trx := range transactions {
		line := trx.Date.Format("2006-01-02 15:04:05") + ": " + string(trx.Kind) + " of " + money(trx.Amount)
		if trx.Counterparty != nil {
			if trx.Kind == domain.Received {
				line += " from account " + mask.AccountNumber(*trx.Counterparty)
			} else {
				line += " to account " + mask.AccountNumber(*trx.Counterparty)
			}
		}
		t.prompt.Printf("%s\n", line)
	}
	return nil
}

func (t *Teller[K]) report(err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.Details != "" {
			t.prompt.Printf("\nError: %s (%s)\n", appErr.Message, appErr.Details)
			return
		}
		t.prompt.Printf("\nError: %s\n", appErr.Message)
		return
	}
	t.prompt.Printf("\nError: %s\n", err)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
