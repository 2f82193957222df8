package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"purse/internal/client"
	"purse/internal/keyring"
	"purse/internal/model"
	"purse/wallet"
)

// newHandler builds a WalletHandler over a session whose ledger is
// unreachable; good enough for method checks and local validation.
func newHandler(t *testing.T) *WalletHandler {
	t.Helper()
	ring := keyring.New(filepath.Join(t.TempDir(), "secret.slot"),
		[]byte("pass"), []byte("salt"), zap.NewNop())
	c := client.New("http://127.0.0.1:0", ring, client.NopNotifier{}, client.NopNavigator{},
		time.Second, zap.NewNop())
	return NewWalletHandler(wallet.NewSession(c, ring, client.NopNotifier{}, client.NopNavigator{}, zap.NewNop()))
}

func TestMethodChecks(t *testing.T) {
	h := newHandler(t)
	cases := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"create rejects GET", http.MethodGet, h.Create},
		{"import rejects GET", http.MethodGet, h.Import},
		{"logout rejects GET", http.MethodGet, h.Logout},
		{"refresh rejects GET", http.MethodGet, h.Refresh},
		{"info rejects POST", http.MethodPost, h.Info},
		{"qr rejects POST", http.MethodPost, h.QR},
		{"send rejects GET", http.MethodGet, h.Send},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.handler(rec, httptest.NewRequest(tc.method, "/", nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestInfoWithoutSessionReportsUnauthenticated(t *testing.T) {
	h := newHandler(t)
	rec := httptest.NewRecorder()
	h.Info(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
	assert.Nil(t, resp.Wallet)
}

func TestImportRejectsBadSecretWith400(t *testing.T) {
	h := newHandler(t)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"privateKey":"not-a-key"}`)
	h.Import(rec, httptest.NewRequest(http.MethodPost, "/wallet/import", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "64-character hex")
}

func TestSendValidation(t *testing.T) {
	h := newHandler(t)
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing recipient", `{"amount":"1"}`, "recipient is required"},
		{"zero amount", `{"recipient":"addr","amount":"0"}`, "amount must be positive"},
		{"garbage amount", `{"recipient":"addr","amount":"ten"}`, "invalid amount"},
		{"unknown priority", `{"recipient":"addr","amount":"1","priority":"urgent"}`, "priority must be"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Send(rec, httptest.NewRequest(http.MethodPost, "/wallet/send", strings.NewReader(tc.body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tc.want)
		})
	}
}

func TestQRWithoutWalletIs400(t *testing.T) {
	h := newHandler(t)
	rec := httptest.NewRecorder()
	h.QR(rec, httptest.NewRequest(http.MethodGet, "/wallet/qr", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		kind   client.Kind
		status int
		code   string
	}{
		{client.KindInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{client.KindAuthExpired, http.StatusUnauthorized, "AUTH_EXPIRED"},
		{client.KindNotFound, http.StatusNotFound, "NOT_FOUND"},
		{client.KindUnsupportedMedia, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{client.KindNetwork, http.StatusBadGateway, "NETWORK_ERROR"},
		{client.KindServer, http.StatusBadGateway, "SERVER_ERROR"},
		{client.KindRequest, http.StatusInternalServerError, "REQUEST_ERROR"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, &client.Error{Kind: tc.kind, Message: "boom"})
		assert.Equal(t, tc.status, rec.Code, tc.code)
		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Code)
	}
}
