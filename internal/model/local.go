package model

// ImportRequest is the local API body for POST /wallet/import.
type ImportRequest struct {
	PrivateKey string `json:"privateKey" binding:"required"`
}

// SendRequest is the local API body for POST /wallet/send. Amount is a
// decimal string so UI consumers never round it before we do.
type SendRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Priority  string `json:"priority,omitempty"`
}

// SessionResponse is the local API view of the wallet session.
type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Wallet        *WalletProjection `json:"wallet,omitempty"`
}

// CreateResponse is the local API answer to POST /wallet/create. PrivateKey
// is shown exactly once for backup; it is never returned again.
type CreateResponse struct {
	Address    string  `json:"address"`
	PublicKey  string  `json:"publicKey"`
	Balance    float64 `json:"balance"`
	PrivateKey string  `json:"privateKey"`
}

// QRResponse carries the base64 PNG QR code of the wallet address.
type QRResponse struct {
	Address string `json:"address"`
	QR      string `json:"qr"`
}
