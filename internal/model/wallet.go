package model

// WalletProjection is the ledger-derived, non-secret view of the custodied
// wallet cached client-side. It is computed remotely from the signing key
// and cannot be verified locally.
type WalletProjection struct {
	Address   string  `json:"address"`
	PublicKey string  `json:"publicKey"`
	Balance   float64 `json:"balance"`
}

// InitWalletRequest is the body of POST /wallet on the ledger. An empty
// PrivateKey asks the ledger to create a fresh wallet; a 64-character hex
// key imports an existing one.
type InitWalletRequest struct {
	PrivateKey string `json:"private_key,omitempty"`
}

// InitWalletResponse is the ledger's answer to POST /wallet. PrivateKey is
// returned exactly once, at creation or import.
type InitWalletResponse struct {
	Address    string  `json:"address"`
	Balance    float64 `json:"balance"`
	PublicKey  string  `json:"publicKey"`
	PrivateKey string  `json:"privateKey"`
}

// WalletInfoResponse is the ledger's answer to GET /wallet/info.
type WalletInfoResponse struct {
	Address       string  `json:"address"`
	Balance       float64 `json:"balance"`
	PublicKey     string  `json:"publicKey"`
	PendingSpends float64 `json:"pending_spends"`
}

// TransactRequest is the body of POST /wallet/transact.
type TransactRequest struct {
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Priority  string  `json:"priority,omitempty"` // low, medium, high
}

// BalanceInfo accompanies a transact response with the post-transaction view.
type BalanceInfo struct {
	ConfirmedBalance float64 `json:"confirmed_balance"`
	PendingSpend     float64 `json:"pending_spend"`
	AvailableBalance float64 `json:"available_balance"`
}

// TransactResponse is the ledger's answer to POST /wallet/transact.
type TransactResponse struct {
	Message     string           `json:"message"`
	Transaction ChainTransaction `json:"transaction"`
	Fee         float64          `json:"fee"`
	Size        int              `json:"size"`
	Timestamp   float64          `json:"timestamp"`
	BalanceInfo BalanceInfo      `json:"balance_info"`
}

// FeeRateResponse is the ledger's answer to GET /fee-rate.
type FeeRateResponse struct {
	FeeRate             float64            `json:"fee_rate"`
	PriorityMultipliers map[string]float64 `json:"priority_multipliers"`
	MempoolSize         int                `json:"mempool_size"`
	BlockFullness       float64            `json:"block_fullness"`
}
