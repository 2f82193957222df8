package keyring

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"purse/internal/crypto"
)

func newTestRing(t *testing.T) *Keyring {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret.slot")
	return New(path, []byte("test-passphrase"), []byte("test-salt"), zap.NewNop())
}

func TestGetEmptySlot(t *testing.T) {
	ring := newTestRing(t)

	envelope, ok, err := ring.Get()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, envelope)
}

func TestPutGetRoundTrip(t *testing.T) {
	ring := newTestRing(t)

	require.NoError(t, ring.Put("envelope-1"))

	envelope, ok, err := ring.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "envelope-1", envelope)
}

func TestPutOverwrites(t *testing.T) {
	ring := newTestRing(t)

	require.NoError(t, ring.Put("envelope-1"))
	require.NoError(t, ring.Put("envelope-2"))

	envelope, ok, err := ring.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "envelope-2", envelope)
}

func TestSlotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.slot")
	first := New(path, []byte("pass"), []byte("salt"), zap.NewNop())
	require.NoError(t, first.Put("persisted"))

	second := New(path, []byte("pass"), []byte("salt"), zap.NewNop())
	envelope, ok, err := second.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", envelope)
}

func TestClearIsIdempotent(t *testing.T) {
	ring := newTestRing(t)
	require.NoError(t, ring.Put("envelope"))

	require.NoError(t, ring.Clear())
	_, ok, err := ring.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already empty slot is not an error.
	require.NoError(t, ring.Clear())
}

func TestKeyIsStableAcrossCallsAndClear(t *testing.T) {
	ring := newTestRing(t)
	ctx := context.Background()

	k1, err := ring.Key(ctx)
	require.NoError(t, err)
	require.Len(t, k1, 32)

	k2, err := ring.Key(ctx)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	// Clear drops the cache; the recomputed key is identical because the
	// passphrase and salt did not change.
	require.NoError(t, ring.Clear())
	k3, err := ring.Key(ctx)
	require.NoError(t, err)
	assert.Equal(t, k1, k3)
}

func TestKeyWorksWithEnvelopeCipher(t *testing.T) {
	ring := newTestRing(t)
	ctx := context.Background()

	key, err := ring.Key(ctx)
	require.NoError(t, err)

	envelope, err := crypto.Seal(key, []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, ring.Put(envelope))

	stored, ok, err := ring.Get()
	require.NoError(t, err)
	require.True(t, ok)

	got, err := crypto.Open(key, stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)
}

func TestKeyAbortsOnDeadContext(t *testing.T) {
	ring := newTestRing(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ring.Key(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
