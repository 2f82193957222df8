package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"purse/internal/keyring"
	"purse/internal/model"

	"go.uber.org/zap"
)

// Client talks to the remote ledger's HTTP API. Wallet-scoped calls are
// authenticated by the auth transport; every outcome goes through the
// classifier before it reaches the caller, so the mandated side effects
// (slot purge, notice, redirect) have already run by then.
type Client struct {
	baseURL string
	http    *http.Client
	ring    *keyring.Keyring
	notify  Notifier
	nav     Navigator
	log     *zap.Logger
}

// New creates a ledger client. timeout bounds the whole call including
// credential resolution.
func New(baseURL string, ring *keyring.Keyring, notify Notifier, nav Navigator, timeout time.Duration, log *zap.Logger) *Client {
	return NewWithTransport(baseURL, ring, notify, nav, timeout, log, http.DefaultTransport)
}

// NewWithTransport is New with an explicit inner transport, used by tests to
// observe requests on the wire.
func NewWithTransport(baseURL string, ring *keyring.Keyring, notify Notifier, nav Navigator, timeout time.Duration, log *zap.Logger, inner http.RoundTripper) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{inner: inner, ring: ring, log: log},
		},
		ring:   ring,
		notify: notify,
		nav:    nav,
		log:    log,
	}
}

// WalletInfo fetches the authenticated wallet projection.
func (c *Client) WalletInfo(ctx context.Context) (*model.WalletInfoResponse, error) {
	var out model.WalletInfoResponse
	if err := c.do(ctx, http.MethodGet, "/wallet/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitWallet creates a wallet on the ledger when privateKey is empty, or
// imports the given key otherwise. The response carries the secret exactly
// once; persisting it is the caller's job.
func (c *Client) InitWallet(ctx context.Context, privateKey string) (*model.InitWalletResponse, error) {
	var out model.InitWalletResponse
	in := model.InitWalletRequest{PrivateKey: privateKey}
	if err := c.do(ctx, http.MethodPost, "/wallet", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transact submits a transaction from the custodied wallet.
func (c *Client) Transact(ctx context.Context, req model.TransactRequest) (*model.TransactResponse, error) {
	var out model.TransactResponse
	if err := c.do(ctx, http.MethodPost, "/wallet/transact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FeeRate fetches the ledger's current fee estimate.
func (c *Client) FeeRate(ctx context.Context) (*model.FeeRateResponse, error) {
	var out model.FeeRateResponse
	if err := c.do(ctx, http.MethodGet, "/fee-rate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Blockchain fetches the full chain dump.
func (c *Client) Blockchain(ctx context.Context) (*model.BlockchainResponse, error) {
	var out model.BlockchainResponse
	if err := c.do(ctx, http.MethodGet, "/blockchain", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockchainRange fetches blocks in [start, end).
func (c *Client) BlockchainRange(ctx context.Context, start, end int) (*model.BlockchainRangeResponse, error) {
	var out model.BlockchainRangeResponse
	path := fmt.Sprintf("/blockchain/range?start=%d&end=%d", start, end)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockchainLength fetches the number of blocks in the chain.
func (c *Client) BlockchainLength(ctx context.Context) (int, error) {
	var out struct {
		Length int `json:"length"`
	}
	if err := c.do(ctx, http.MethodGet, "/blockchain/length", nil, &out); err != nil {
		return 0, err
	}
	return out.Length, nil
}

// BlockchainHeight fetches the current chain height.
func (c *Client) BlockchainHeight(ctx context.Context) (int, error) {
	var out model.BlockchainHeightResponse
	if err := c.do(ctx, http.MethodGet, "/blockchain/height", nil, &out); err != nil {
		return 0, err
	}
	return out.Height, nil
}

// BlockchainPaginated fetches one page of blocks, latest first.
func (c *Client) BlockchainPaginated(ctx context.Context, page, pageSize int) (*model.PaginatedBlocksResponse, error) {
	var out model.PaginatedBlocksResponse
	path := fmt.Sprintf("/blockchain/paginated?page=%d&page_size=%d", page, pageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestBlocks fetches the newest blocks, latest first.
func (c *Client) LatestBlocks(ctx context.Context, limit int) ([]model.Block, error) {
	var out []model.Block
	if err := c.do(ctx, http.MethodGet, "/blockchain/latest?limit="+strconv.Itoa(limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BlockByHash fetches the block with the given hash.
func (c *Client) BlockByHash(ctx context.Context, hash string) (*model.Block, error) {
	var out model.Block
	if err := c.do(ctx, http.MethodGet, "/blockchain/hash/"+hash, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockByHeight fetches the block at the given height.
func (c *Client) BlockByHeight(ctx context.Context, height int) (*model.Block, error) {
	var out model.Block
	if err := c.do(ctx, http.MethodGet, "/blockchain/height/"+strconv.Itoa(height), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockByTransaction fetches the block containing the given transaction.
func (c *Client) BlockByTransaction(ctx context.Context, txID string) (*model.Block, error) {
	var out model.Block
	if err := c.do(ctx, http.MethodGet, "/blockchain/tx/"+txID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransactionPool fetches the pending transactions by id.
func (c *Client) TransactionPool(ctx context.Context) (map[string]model.ChainTransaction, error) {
	out := map[string]model.ChainTransaction{}
	if err := c.do(ctx, http.MethodGet, "/transaction", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransactionsByAddress fetches pending and confirmed transactions touching
// the given address, newest first.
func (c *Client) TransactionsByAddress(ctx context.Context, address string) ([]model.ChainTransaction, error) {
	var out []model.ChainTransaction
	if err := c.do(ctx, http.MethodGet, "/transactions/"+address, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do runs one JSON call against the ledger and classifies its outcome.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return c.fail(&Error{Kind: KindRequest, Message: "failed to encode request", Err: err})
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return c.fail(&Error{Kind: KindRequest, Message: "failed to build request", Err: err})
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if cerr := c.classify(resp, err); cerr != nil {
		return cerr
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return c.fail(&Error{Kind: KindRequest, Message: "failed to decode response", Err: err})
		}
	}
	return nil
}

// classify maps an HTTP outcome to the failure taxonomy and hands it to
// fail for side effects. Returns nil for 2xx.
func (c *Client) classify(resp *http.Response, err error) error {
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			// Raised before dispatch by the auth transport; for
			// KindAuthExpired the slot is already purged, the user-facing
			// side effects still run in fail.
			return c.fail(ce)
		}
		return c.fail(&Error{Kind: KindNetwork, Message: "no response from ledger", Err: err})
	}

	if resp.StatusCode/100 == 2 {
		return nil
	}

	detail := readErrorDetail(resp)
	resp.Body.Close()

	e := &Error{
		Status:  resp.StatusCode,
		Message: detail,
		Err:     fmt.Errorf("ledger returned %s", resp.Status),
	}
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		e.Kind = KindInvalidRequest
	case resp.StatusCode == http.StatusUnauthorized:
		e.Kind = KindAuthExpired
	case resp.StatusCode == http.StatusNotFound:
		e.Kind = KindNotFound
	case resp.StatusCode == http.StatusUnsupportedMediaType:
		e.Kind = KindUnsupportedMedia
		e.Message = "the ledger rejected the request format"
		if resp.Request != nil {
			c.log.Warn("content-type mismatch",
				zap.String("sent_content_type", resp.Request.Header.Get("Content-Type")))
		}
	case resp.StatusCode >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindRequest
	}
	if e.Message == "" {
		e.Message = resp.Status
	}
	return c.fail(e)
}

// fail runs the side effects mandated for the error's kind, then re-raises
// it so calling code can still branch on the original failure.
func (c *Client) fail(e *Error) error {
	switch e.Kind {
	case KindAuthExpired:
		if err := c.ring.Clear(); err != nil {
			c.log.Error("failed to clear secret slot", zap.Error(err))
		}
		c.notify.Notify("Session expired. Import your wallet to continue.")
		if loc := c.nav.Location(); !IsEntryPoint(loc) {
			c.nav.Navigate(RouteImport)
		}
	case KindNetwork:
		c.notify.Notify("Network error. Check your connection and try again.")
	case KindServer:
		c.notify.Notify("The ledger service failed. Try again later.")
	default:
		c.notify.Notify(e.Message)
	}

	c.log.Warn("ledger call failed",
		zap.Stringer("kind", e.Kind),
		zap.Int("status", e.Status),
		zap.Error(e.Err))
	return e
}

// readErrorDetail extracts the server-provided message from an error body.
// FastAPI uses {"detail": ...}, the legacy flask ledger {"error": ...}.
func readErrorDetail(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(b) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return ""
}
