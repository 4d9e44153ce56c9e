package main

import (
	"os"

	"github.com/spf13/cobra"

	"bank-ledger/internal/console"
	"bank-ledger/internal/domain"
	"bank-ledger/internal/service"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Sign in and run the interactive teller menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if mode == modeBank {
			return injector(func(bank *service.Bank[domain.Credential]) error {
				return console.NewTeller(bank, console.BankIdentity{}, os.Stdin, os.Stdout).Run(ctx)
			})
		}
		return injector(func(bank *service.Bank[uint64]) error {
			return console.NewTeller(bank, console.CardIdentity{}, os.Stdin, os.Stdout).Run(ctx)
		})
	},
}
