package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bank-ledger/internal/app"
	"bank-ledger/internal/config"
)

const (
	modeCard = "card"
	modeBank = "bank"
)

var (
	mode     string
	injector app.Injector
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "atm",
	Short:         "Teller console for the card and bank ledgers",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if mode != modeCard && mode != modeBank {
			return fmt.Errorf("unknown mode %q, expected %s or %s", mode, modeCard, modeBank)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger = app.NewLogger(cfg)
		injector = app.BootstrapServices(cfg, logger)
		return nil
	},
}

// closeDatabase runs after every command, failed ones included.
func closeDatabase() {
	if injector == nil {
		return
	}
	if err := injector(func(db *app.Database) error {
		return db.Close()
	}); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}

func init() {
	cobra.OnFinalize(closeDatabase)
	rootCmd.PersistentFlags().StringVar(&mode, "mode", modeCard, "ledger to use: card (account number + PIN) or bank (full name + password)")
	rootCmd.AddCommand(consoleCmd, addCustomerCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
