// Package wallet orchestrates the custodied wallet session: create, import,
// refresh, logout, and the cached ledger-derived projection consumed by the
// local API.
package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"purse/internal/client"
	"purse/internal/crypto"
	"purse/internal/keyring"
	"purse/internal/model"

	"go.uber.org/zap"
)

// ErrInvalidSecret rejects import input before it ever leaves the client.
var ErrInvalidSecret = errors.New("secret must be a 64-character hex string")

// Session owns the wallet projection and is its only writer. Consumers read
// snapshots; every mutation happens behind the mutex.
type Session struct {
	ledger *client.Client
	ring   *keyring.Keyring
	notify client.Notifier
	nav    client.Navigator
	log    *zap.Logger

	mu         sync.Mutex
	projection *model.WalletProjection
}

// NewSession wires the session to its collaborators. The keyring reference
// is the same one the ledger client's transport uses: there is exactly one
// secret slot in the process.
func NewSession(ledger *client.Client, ring *keyring.Keyring, notify client.Notifier, nav client.Navigator, log *zap.Logger) *Session {
	return &Session{
		ledger: ledger,
		ring:   ring,
		notify: notify,
		nav:    nav,
		log:    log,
	}
}

// Create asks the ledger for a fresh wallet, seals the returned secret into
// the slot and returns the secret for one-time display. It is never
// returned again.
func (s *Session) Create(ctx context.Context) (string, error) {
	resp, err := s.ledger.InitWallet(ctx, "")
	if err != nil {
		return "", err
	}

	if err := s.custody(ctx, resp.PrivateKey); err != nil {
		return "", err
	}

	s.setProjection(resp.Address, resp.PublicKey, resp.Balance)
	s.log.Info("wallet created", zap.String("address", resp.Address))
	return resp.PrivateKey, nil
}

// Import validates and submits an existing secret to the ledger, then seals
// it into the slot.
func (s *Session) Import(ctx context.Context, secret string) error {
	secret = strings.TrimSpace(secret)
	if !validSecret(secret) {
		return ErrInvalidSecret
	}

	resp, err := s.ledger.InitWallet(ctx, secret)
	if err != nil {
		return err
	}

	if err := s.custody(ctx, secret); err != nil {
		return err
	}

	s.setProjection(resp.Address, resp.PublicKey, resp.Balance)
	s.log.Info("wallet imported", zap.String("address", resp.Address))
	return nil
}

// Refresh re-fetches the wallet projection through an authenticated call.
// A refused or uninitialized session converges on an empty slot, an empty
// projection, and the import flow — never a stale projection.
func (s *Session) Refresh(ctx context.Context) error {
	info, err := s.ledger.WalletInfo(ctx)
	if err != nil {
		if client.IsKind(err, client.KindAuthExpired) || isNotInitialized(err) {
			// The client purges and redirects on AuthExpired; the
			// uninitialized-wallet 400 takes the same path here.
			if !client.IsKind(err, client.KindAuthExpired) {
				if cerr := s.ring.Clear(); cerr != nil {
					s.log.Error("failed to clear secret slot", zap.Error(cerr))
				}
				if loc := s.nav.Location(); !client.IsEntryPoint(loc) {
					s.nav.Navigate(client.RouteImport)
				}
			}
			s.clearProjection()
		}
		return err
	}

	s.setProjection(info.Address, info.PublicKey, info.Balance)
	return nil
}

// Logout purges the slot, clears the projection and returns the consumer to
// the entry point.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.ring.Clear(); err != nil {
		return fmt.Errorf("failed to clear secret slot: %w", err)
	}
	s.clearProjection()
	s.nav.Navigate(client.RouteHome)
	s.log.Info("logged out")
	return nil
}

// Rehydrate restores the session on startup. An empty slot leaves the
// projection empty; a populated slot is validated against the ledger via
// Refresh, which either yields a live projection or purges and redirects.
func (s *Session) Rehydrate(ctx context.Context) error {
	_, ok, err := s.ring.Get()
	if err != nil {
		return fmt.Errorf("failed to read secret slot: %w", err)
	}
	if !ok {
		return nil
	}
	return s.Refresh(ctx)
}

// Send submits a transaction from the custodied wallet.
func (s *Session) Send(ctx context.Context, recipient string, amount float64, priority string) (*model.TransactResponse, error) {
	resp, err := s.ledger.Transact(ctx, model.TransactRequest{
		Recipient: recipient,
		Amount:    amount,
		Priority:  priority,
	})
	if err != nil {
		return nil, err
	}

	// The transact response carries the post-transaction available balance.
	s.mu.Lock()
	if s.projection != nil {
		s.projection.Balance = resp.BalanceInfo.AvailableBalance
	}
	s.mu.Unlock()
	return resp, nil
}

// Snapshot returns a copy of the wallet projection and whether one is set.
func (s *Session) Snapshot() (model.WalletProjection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.projection == nil {
		return model.WalletProjection{}, false
	}
	return *s.projection, true
}

// custody seals the secret under the derived key and stores the envelope as
// the slot's sole content.
func (s *Session) custody(ctx context.Context, secret string) error {
	key, err := s.ring.Key(ctx)
	if err != nil {
		return fmt.Errorf("failed to derive custody key: %w", err)
	}
	defer clear(key)

	envelope, err := crypto.Seal(key, []byte(secret))
	if err != nil {
		return fmt.Errorf("failed to seal secret: %w", err)
	}
	return s.ring.Put(envelope)
}

func (s *Session) setProjection(address, publicKey string, balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projection = &model.WalletProjection{
		Address:   address,
		PublicKey: publicKey,
		Balance:   balance,
	}
}

func (s *Session) clearProjection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projection = nil
}

// validSecret checks the ledger's signing key format: 64 hex characters.
func validSecret(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// isNotInitialized matches the ledger's 400 for a missing or unusable wallet
// ("Wallet not initialized", "Invalid private key or no wallet initialized").
func isNotInitialized(err error) bool {
	var ce *client.Error
	if !errors.As(err, &ce) || ce.Kind != client.KindInvalidRequest {
		return false
	}
	return strings.Contains(strings.ToLower(ce.Message), "initialized")
}
