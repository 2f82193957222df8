package keyring

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"purse/internal/crypto"

	"github.com/awnumar/memguard"
	"go.uber.org/zap"
)

// Keyring owns the single persisted envelope slot and the session cache of
// the derived custody key. The slot survives restarts; the cached key lives
// only in guarded memory and is dropped on Clear.
//
// The keyring is the one shared mutable resource of the client. Put and
// Clear are total: either the whole slot content changes or nothing does.
type Keyring struct {
	path       string
	passphrase []byte
	salt       []byte
	log        *zap.Logger

	mu     sync.Mutex
	cached *memguard.Enclave // derived custody key, nil until first use
}

// New returns a keyring persisting its envelope at path. The passphrase and
// salt feed key derivation; the keyring takes ownership of both slices.
func New(path string, passphrase, salt []byte, log *zap.Logger) *Keyring {
	return &Keyring{
		path:       path,
		passphrase: passphrase,
		salt:       salt,
		log:        log,
	}
}

// Put stores envelope as the slot's sole content, overwriting any previous
// envelope. The write goes through a temp file and rename so no partial
// state is ever observable.
func (k *Keyring) Put(envelope string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := writeFileAtomic(k.path, []byte(envelope), 0600); err != nil {
		return fmt.Errorf("failed to write secret slot: %w", err)
	}
	return nil
}

// Get returns the stored envelope. A missing or empty slot is ("", false, nil).
func (k *Keyring) Get() (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	b, err := os.ReadFile(k.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read secret slot: %w", err)
	}
	if len(b) == 0 {
		return "", false, nil
	}
	return string(b), true, nil
}

// Clear removes the slot and drops the cached derived key. Idempotent:
// clearing an empty keyring is not an error.
func (k *Keyring) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.cached = nil
	if err := os.Remove(k.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear secret slot: %w", err)
	}
	k.log.Info("secret slot cleared")
	return nil
}

// Key returns the derived custody key, computing it on first use and caching
// it in a guarded enclave for the rest of the session. ctx bounds the
// derivation; callers treat a deadline hit as a failed credential.
// Caller must zero the returned slice after use.
func (k *Keyring) Key(ctx context.Context) ([]byte, error) {
	k.mu.Lock()
	enclave := k.cached
	k.mu.Unlock()

	if enclave == nil {
		derived, err := k.deriveBounded(ctx)
		if err != nil {
			return nil, err
		}
		// NewEnclave wipes its input slice once sealed
		enclave = memguard.NewEnclave(derived)

		k.mu.Lock()
		k.cached = enclave
		k.mu.Unlock()
	}

	buf, err := enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open key enclave: %w", err)
	}
	defer buf.Destroy()

	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	return out, nil
}

// deriveBounded runs the KDF off the calling goroutine so ctx can cut the
// wait short. The computation itself always finishes; only the wait is bounded.
func (k *Keyring) deriveBounded(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("key derivation aborted: %w", err)
	}

	done := make(chan []byte, 1)
	go func() {
		done <- crypto.DeriveKey(k.passphrase, k.salt)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("key derivation aborted: %w", ctx.Err())
	case key := <-done:
		return key, nil
	}
}
