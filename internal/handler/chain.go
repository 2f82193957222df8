package handler

import (
	"net/http"
	"strconv"

	"purse/internal/client"
	"purse/internal/model"
)

// ChainHandler exposes the ledger's read-only chain endpoints to the UI.
// These calls are never authenticated and never touch the keyring.
type ChainHandler struct {
	ledger *client.Client
}

// NewChainHandler creates a ChainHandler over the given ledger client.
func NewChainHandler(ledger *client.Client) *ChainHandler {
	return &ChainHandler{ledger: ledger}
}

// Latest handles GET /chain/latest
// @Summary      Latest blocks
// @Description  Returns the newest blocks, latest first.
// @Tags         chain
// @Produce      json
// @Param        limit  query  int  false  "Number of blocks (default 10)"
// @Success      200  {array}  model.Block
// @Router       /chain/latest [get]
func (h *ChainHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	blocks, err := h.ledger.LatestBlocks(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

// Height handles GET /chain/height
// @Summary      Chain height
// @Tags         chain
// @Produce      json
// @Success      200  {object}  model.BlockchainHeightResponse
// @Router       /chain/height [get]
func (h *ChainHandler) Height(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	height, err := h.ledger.BlockchainHeight(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.BlockchainHeightResponse{Height: height})
}

// Block handles GET /chain/block?hash=|height=|tx=
// @Summary      Look up a block
// @Description  Fetches a block by hash, height, or contained transaction id.
// @Tags         chain
// @Produce      json
// @Param        hash    query  string  false  "Block hash"
// @Param        height  query  int     false  "Block height"
// @Param        tx      query  string  false  "Transaction id"
// @Success      200  {object}  model.Block
// @Router       /chain/block [get]
func (h *ChainHandler) Block(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("hash") != "":
		block, err := h.ledger.BlockByHash(r.Context(), q.Get("hash"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, block)
	case q.Get("height") != "":
		n, err := strconv.Atoi(q.Get("height"))
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "height must be a non-negative integer"})
			return
		}
		block, err := h.ledger.BlockByHeight(r.Context(), n)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, block)
	case q.Get("tx") != "":
		block, err := h.ledger.BlockByTransaction(r.Context(), q.Get("tx"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, block)
	default:
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "one of hash, height or tx is required"})
	}
}

// Transactions handles GET /chain/transactions?address=
// @Summary      Transactions by address
// @Description  Returns pending and confirmed transactions touching an address, newest first.
// @Tags         chain
// @Produce      json
// @Param        address  query  string  true  "Wallet address"
// @Success      200  {array}  model.ChainTransaction
// @Router       /chain/transactions [get]
func (h *ChainHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "address is required"})
		return
	}

	txs, err := h.ledger.TransactionsByAddress(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// FeeRate handles GET /fee-rate
// @Summary      Fee rate
// @Description  Returns the ledger's current fee estimate and priority multipliers.
// @Tags         chain
// @Produce      json
// @Success      200  {object}  model.FeeRateResponse
// @Router       /fee-rate [get]
func (h *ChainHandler) FeeRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	rate, err := h.ledger.FeeRate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}
