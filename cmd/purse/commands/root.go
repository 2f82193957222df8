package commands

import (
	"github.com/spf13/cobra"

	"purse/internal/config"
)

var promptPassphrase bool

// Execute runs the purse CLI.
func Execute() error {
	root := &cobra.Command{
		Use:   "purse",
		Short: "Local custody client for the ledger wallet",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			if promptPassphrase {
				return config.PromptForPassphrase()
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&promptPassphrase, "prompt-passphrase", false,
		"prompt for the custody passphrase instead of using WALLET_PASSPHRASE")

	root.AddCommand(serveCmd(), resetCmd())
	return root.Execute()
}
