package client

import (
	"net/http"
	"strings"

	"purse/internal/crypto"
	"purse/internal/keyring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// walletScoped reports whether a request needs the bearer credential.
// Only /wallet/info and /wallet/transact are credentialed; POST /wallet
// (create or import) and the read-only chain endpoints are not, and must
// never trigger key derivation.
func walletScoped(req *http.Request) bool {
	return strings.HasPrefix(req.URL.Path, "/wallet/")
}

// authTransport decorates outbound ledger calls with the bearer credential
// decrypted from the custody envelope.
//
// Credential resolution always settles before the request reaches the inner
// transport: no request is ever in flight with its credential undecided.
// An envelope that cannot be decrypted fails closed — the slot is purged and
// the request is not dispatched at all.
type authTransport struct {
	inner http.RoundTripper
	ring  *keyring.Keyring
	log   *zap.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-Id", uuid.NewString())

	if !walletScoped(req) {
		return t.inner.RoundTrip(req)
	}

	envelope, ok, err := t.ring.Get()
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: "failed to read secret slot", Err: err}
	}
	if !ok {
		// No custodied secret: dispatch unauthenticated, the ledger answers
		// 400/401 as it sees fit.
		return t.inner.RoundTrip(req)
	}

	key, err := t.ring.Key(req.Context())
	if err == nil {
		var secret []byte
		secret, err = crypto.OpenContext(req.Context(), key, envelope)
		clear(key)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+string(secret))
			clear(secret)
			return t.inner.RoundTrip(req)
		}
	}

	// Fail closed: an undecryptable envelope is a lost session, equivalent
	// to a 401. Purge the slot and refuse to dispatch.
	t.log.Warn("custody envelope undecryptable, purging slot",
		zap.String("path", req.URL.Path),
		zap.Error(err))
	if clearErr := t.ring.Clear(); clearErr != nil {
		t.log.Error("failed to clear secret slot", zap.Error(clearErr))
	}
	return nil, &Error{
		Kind:    KindAuthExpired,
		Message: "stored credential could not be decrypted",
		Err:     err,
	}
}
