package api

import (
	"net/http"

	"purse/internal/client"
	"purse/internal/handler"
	"purse/wallet"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up the local API router over the session and ledger client.
func SetupRouter(session *wallet.Session, ledger *client.Client) http.Handler {
	walletHandler := handler.NewWalletHandler(session)
	chainHandler := handler.NewChainHandler(ledger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet session endpoints
	mux.HandleFunc("/wallet", walletHandler.Info)
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/logout", walletHandler.Logout)
	mux.HandleFunc("/wallet/refresh", walletHandler.Refresh)
	mux.HandleFunc("/wallet/qr", walletHandler.QR)
	mux.HandleFunc("/wallet/send", walletHandler.Send)

	// Chain read endpoints
	mux.HandleFunc("/fee-rate", chainHandler.FeeRate)
	mux.HandleFunc("/chain/latest", chainHandler.Latest)
	mux.HandleFunc("/chain/height", chainHandler.Height)
	mux.HandleFunc("/chain/block", chainHandler.Block)
	mux.HandleFunc("/chain/transactions", chainHandler.Transactions)

	return mux
}
