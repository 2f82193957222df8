package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters for the custody key
	//
	// 120k iterations of HMAC-SHA256 keeps derivation around ~100ms on
	// commodity hardware while making offline brute force of the stored
	// envelope expensive. The derived key is cached for the session
	// (see internal/keyring), so the cost is paid once, not per request.
	kdfIterations = 120_000
	kdfKeyLen     = 32
)

// DeriveKey derives the 256-bit custody key from passphrase and salt.
// Deterministic: the same inputs always yield the same key, which is what
// lets a stored envelope be opened again after a restart.
func DeriveKey(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, kdfIterations, kdfKeyLen, sha256.New)
}
