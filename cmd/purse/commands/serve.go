package commands

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"purse/internal/api"
	"purse/internal/client"
	"purse/internal/config"
	"purse/internal/keyring"
	"purse/wallet"
)

// logNotifier forwards user notices to the log; the browser UI consumes the
// same messages from the error codes the local API returns.
type logNotifier struct {
	log *zap.Logger
}

func (n *logNotifier) Notify(message string) {
	n.log.Info("notice", zap.String("message", message))
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local wallet API",
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

			notify := &logNotifier{log: logger.Named("notify")}
			nav := client.NopNavigator{}
			ledger := client.New(config.GetLedgerURL(), ring, notify, nav,
				config.GetRequestTimeout(), logger.Named("ledger"))
			session := wallet.NewSession(ledger, ring, notify, nav, logger.Named("session"))

			// Restore the session from a previously custodied secret. A dead
			// session converges on an empty slot; the server still starts.
			ctx, cancel := context.WithTimeout(cmd.Context(), config.GetRequestTimeout())
			defer cancel()
			if err := session.Rehydrate(ctx); err != nil {
				logger.Warn("session rehydration failed", zap.Error(err))
			}

			mux := api.SetupRouter(session, ledger)
			addr := ":" + config.GetPort()
			logger.Info("local API listening", zap.String("addr", addr))
			return http.ListenAndServe(addr, mux)
		},
	}
}

// buildKeyring assembles the keyring from configuration.
func buildKeyring(logger *zap.Logger) (*keyring.Keyring, error) {
	slotPath, err := config.GetSecretSlotPath()
	if err != nil {
		return nil, err
	}
	passphrase, err := config.GetPassphraseBytes()
	if err != nil {
		return nil, err
	}
	salt, err := config.GetSaltBytes()
	if err != nil {
		return nil, err
	}
	return keyring.New(slotPath, passphrase, salt, logger.Named("keyring")), nil
}
