package crypto

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	k1 := DeriveKey([]byte("passphrase"), []byte("salt"))
	k2 := DeriveKey([]byte("passphrase"), []byte("salt"))

	require.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestDeriveKeyDistinctInputs(t *testing.T) {
	base := DeriveKey([]byte("passphrase"), []byte("salt"))

	assert.NotEqual(t, base, DeriveKey([]byte("other"), []byte("salt")))
	assert.NotEqual(t, base, DeriveKey([]byte("passphrase"), []byte("other")))
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))
	plaintext := []byte("a2b4c6d8e0f2a4b6c8d0e2f4a6b8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4")

	envelope, err := Seal(key, plaintext)
	require.NoError(t, err)

	got, err := Open(key, envelope)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSealFreshNoncePerCall(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))
	plaintext := []byte("same plaintext")

	first, err := Seal(key, plaintext)
	require.NoError(t, err)
	second, err := Seal(key, plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOpenEnvelopeLayout(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))
	plaintext := []byte("secret")

	envelope, err := Seal(key, plaintext)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)
	// 12-byte nonce, ciphertext, 16-byte tag
	assert.Len(t, raw, nonceLen+len(plaintext)+tagLen)
}

func TestOpenRejectsEveryFlippedByte(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))

	envelope, err := Seal(key, []byte("tamper target"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)

	for i := range raw {
		corrupted := make([]byte, len(raw))
		copy(corrupted, raw)
		corrupted[i] ^= 0x01

		_, err := Open(key, base64.StdEncoding.EncodeToString(corrupted))
		assert.ErrorIs(t, err, ErrDecrypt, "flipped byte %d must not decrypt", i)
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))
	envelope, err := Seal(key, []byte("secret"))
	require.NoError(t, err)

	otherPass := DeriveKey([]byte("another passphrase"), []byte("salt"))
	_, err = Open(otherPass, envelope)
	assert.ErrorIs(t, err, ErrDecrypt)

	otherSalt := DeriveKey([]byte("passphrase"), []byte("another salt"))
	_, err = Open(otherSalt, envelope)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpenRejectsMalformedEnvelopes(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))

	cases := map[string]string{
		"not base64":        "%%%not-base64%%%",
		"empty":             "",
		"below minimum":     base64.StdEncoding.EncodeToString(make([]byte, nonceLen+tagLen-1)),
		"nonce only":        base64.StdEncoding.EncodeToString(make([]byte, nonceLen)),
		"random right size": base64.StdEncoding.EncodeToString(make([]byte, 64)),
	}
	for name, envelope := range cases {
		_, err := Open(key, envelope)
		assert.ErrorIs(t, err, ErrDecrypt, name)
	}
}

func TestOpenRejectsTruncatedEnvelope(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))
	envelope, err := Seal(key, []byte("will be truncated"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)

	_, err = Open(key, base64.StdEncoding.EncodeToString(raw[:len(raw)-1]))
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpenContextExpiredDeadlineFailsClosed(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))
	envelope, err := Seal(key, []byte("secret"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = OpenContext(ctx, key, envelope)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpenContextLiveContext(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt"))
	envelope, err := Seal(key, []byte("secret"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	got, err := OpenContext(ctx, key, envelope)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)
}
