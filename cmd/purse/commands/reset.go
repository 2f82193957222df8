package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Purge the custodied secret slot",
		Long: "Removes the encrypted envelope from the secret slot. The wallet " +
			"itself is untouched on the ledger and can be restored by importing " +
			"the signing key again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ring, err := buildKeyring(logger)
			if err != nil {
				return err
			}
			if err := ring.Clear(); err != nil {
				return err
			}
			fmt.Println("secret slot cleared")
			return nil
		},
	}
}
