package handler

import (
	"encoding/json"
	"net/http"

	"purse/internal/common"
	"purse/internal/model"
	"purse/wallet"
)

// WalletHandler exposes the wallet session to the thin local UI.
type WalletHandler struct {
	session *wallet.Session
}

// NewWalletHandler creates a WalletHandler over the given session.
func NewWalletHandler(session *wallet.Session) *WalletHandler {
	return &WalletHandler{session: session}
}

// Create handles POST /wallet/create
// @Summary      Create wallet
// @Description  Creates a fresh wallet on the ledger and custodies its secret. The private key is returned exactly once.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.CreateResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	secret, err := h.session.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	snap, _ := h.session.Snapshot()
	writeJSON(w, http.StatusOK, model.CreateResponse{
		Address:    snap.Address,
		PublicKey:  snap.PublicKey,
		Balance:    snap.Balance,
		PrivateKey: secret,
	})
}

// Import handles POST /wallet/import
// @Summary      Import wallet
// @Description  Imports an existing signing key and custodies it.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Signing key"
// @Success      200      {object}  model.SessionResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.session.Import(r.Context(), req.PrivateKey); err != nil {
		writeError(w, err)
		return
	}

	snap, ok := h.session.Snapshot()
	resp := model.SessionResponse{Authenticated: ok}
	if ok {
		resp.Wallet = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /wallet/logout
// @Summary      Logout
// @Description  Purges the custodied secret and clears the session.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/logout [post]
func (h *WalletHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.session.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SessionResponse{Authenticated: false})
}

// Refresh handles POST /wallet/refresh
// @Summary      Refresh wallet
// @Description  Re-fetches the wallet projection through an authenticated call.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/refresh [post]
func (h *WalletHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.session.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	snap, ok := h.session.Snapshot()
	resp := model.SessionResponse{Authenticated: ok}
	if ok {
		resp.Wallet = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}

// Info handles GET /wallet
// @Summary      Wallet session
// @Description  Returns the cached wallet projection, if any.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet [get]
func (h *WalletHandler) Info(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	snap, ok := h.session.Snapshot()
	resp := model.SessionResponse{Authenticated: ok}
	if ok {
		resp.Wallet = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}

// QR handles GET /wallet/qr
// @Summary      Receive QR code
// @Description  Returns the wallet address as a base64 PNG QR code.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.QRResponse
// @Router       /wallet/qr [get]
func (h *WalletHandler) QR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, qr, err := h.session.ReceiveQR()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.QRResponse{Address: address, QR: qr})
}

// Send handles POST /wallet/send
// @Summary      Send coins
// @Description  Submits a transaction from the custodied wallet.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Transaction data"
// @Success      200      {object}  model.TransactResponse
// @Router       /wallet/send [post]
func (h *WalletHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Recipient == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "recipient is required"})
		return
	}

	amount, err := common.ParseAmount(req.Amount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	priority, err := common.NormalizePriority(req.Priority)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.session.Send(r.Context(), req.Recipient, amount, priority)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
