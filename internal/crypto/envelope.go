package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	nonceLen = 12
	tagLen   = 16

	// Smallest valid envelope: nonce and tag around an empty plaintext
	minEnvelopeLen = nonceLen + tagLen
)

// ErrDecrypt covers every failure to open an envelope: wrong key, flipped
// bit, truncation, bad encoding. Callers must treat it as "no credential"
// and never see partial plaintext.
var ErrDecrypt = errors.New("envelope decrypt failed")

// Seal encrypts plaintext under key with AES-256-GCM and a fresh random
// 12-byte nonce, returning base64(nonce || ciphertext || tag). Sealing the
// same plaintext twice yields different envelopes.
func Seal(key, plaintext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext+tag to the nonce, giving the wire layout directly
	sealed := aesGCM.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decodes and decrypts an envelope produced by Seal. The tag is
// verified before any plaintext is released; any corruption yields
// ErrDecrypt.
func Open(key []byte, envelope string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, ErrDecrypt
	}
	if len(raw) < minEnvelopeLen {
		return nil, ErrDecrypt
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, raw[:nonceLen], raw[nonceLen:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// OpenContext runs Open but gives up when ctx is done. A deadline hit is a
// decrypt failure: the caller must fail closed rather than dispatch a
// request whose credential was never decided.
func OpenContext(ctx context.Context, key []byte, envelope string) ([]byte, error) {
	if ctx.Err() != nil {
		return nil, ErrDecrypt
	}

	type result struct {
		plaintext []byte
		err       error
	}

	ch := make(chan result, 1)
	go func() {
		pt, err := Open(key, envelope)
		ch <- result{plaintext: pt, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ErrDecrypt
	case res := <-ch:
		return res.plaintext, res.err
	}
}
