package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/mask"
	"bank-ledger/internal/service"
)

var newCustomer struct {
	number   uint64
	name     string
	email    string
	secret   int
	category string
	balance  string
}

var addCustomerCmd = &cobra.Command{
	Use:   "add-customer",
	Short: "Open an account for a new customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := decimal.NewFromString(newCustomer.balance)
		if err != nil {
			return fmt.Errorf("invalid balance %q: %w", newCustomer.balance, err)
		}

		category := domain.Category(newCustomer.category)
		if category == "" {
			category = domain.Debit
			if mode == modeBank {
				category = domain.Individual
			}
		}

		req := service.NewAccount{
			Number:         newCustomer.number,
			FullName:       newCustomer.name,
			Email:          newCustomer.email,
			Secret:         newCustomer.secret,
			Category:       category,
			InitialBalance: balance,
		}

		var account *domain.Account
		if mode == modeBank {
			err = injector(func(bank *service.Bank[domain.Credential]) error {
				account, err = bank.Accounts.CreateAccount(cmd.Context(), req)
				return err
			})
		} else {
			err = injector(func(bank *service.Bank[uint64]) error {
				account, err = bank.Accounts.CreateAccount(cmd.Context(), req)
				return err
			})
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Customer %s added with balance %s\n", account.FullName, account.Balance.StringFixed(2))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers with masked details",
	RunE: func(cmd *cobra.Command, args []string) error {
		var accounts []*domain.Account
		var err error
		if mode == modeBank {
			err = injector(func(bank *service.Bank[domain.Credential]) {
				accounts = bank.Accounts.ListAccounts()
			})
		} else {
			err = injector(func(bank *service.Bank[uint64]) {
				accounts = bank.Accounts.ListAccounts()
			})
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ACCOUNT\tNAME\tEMAIL\tTYPE\tBALANCE")
		for _, account := range accounts {
			number := "-"
			if account.Number != 0 {
				number = mask.AccountNumber(account.Number)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				number, account.FullName, mask.Email(account.Email), account.Category, account.Balance.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	flags := addCustomerCmd.Flags()
	flags.Uint64Var(&newCustomer.number, "number", 0, "account number (card customers)")
	flags.StringVar(&newCustomer.name, "name", "", "full name")
	flags.StringVar(&newCustomer.email, "email", "", "email address")
	flags.IntVar(&newCustomer.secret, "secret", 0, "PIN for card customers, password for bank customers")
	flags.StringVar(&newCustomer.category, "category", "", "card type (default Debit) or customer type Individual/Company (default Individual)")
	flags.StringVar(&newCustomer.balance, "balance", "0", "opening balance")
	_ = addCustomerCmd.MarkFlagRequired("name")
	_ = addCustomerCmd.MarkFlagRequired("secret")
}
