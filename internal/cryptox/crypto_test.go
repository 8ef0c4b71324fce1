package cryptox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("device-secret")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected key of %d bytes, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	secret := []byte("device-secret")

	key1 := DeriveKey(secret, []byte("salt-1"))
	key2 := DeriveKey(secret, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	sealed, err := Seal([]byte("hello"), key, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "hello")

	plain, err := Open(sealed, key, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plain))
}

func TestSeal_FreshNonceEachCall(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	a, err := Seal([]byte("same"), key, nil)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), key, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	k1, err := NewKey()
	require.NoError(t, err)
	k2, err := NewKey()
	require.NoError(t, err)

	sealed, err := Seal([]byte("payload"), k1, nil)
	require.NoError(t, err)

	_, err = Open(sealed, k2, nil)
	require.Error(t, err)
}

func TestOpen_AADMismatchFails(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	sealed, err := Seal([]byte("payload"), key, []byte("app\x00theme"))
	require.NoError(t, err)

	_, err = Open(sealed, key, []byte("app\x00auth-storage"))
	require.Error(t, err)

	plain, err := Open(sealed, key, []byte("app\x00theme"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plain))
}

func TestOpen_TooShort(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	_, err = Open([]byte{1, 2, 3}, key, nil)
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestHexKey_RoundTrip(t *testing.T) {
	s, err := NewHexKey()
	require.NoError(t, err)
	assert.Len(t, s, KeySize*2)

	key, err := ParseHexKey(s)
	require.NoError(t, err)
	assert.Len(t, key, KeySize)
}

func TestParseHexKey_Rejects(t *testing.T) {
	_, err := ParseHexKey("zz")
	require.Error(t, err)

	_, err = ParseHexKey(strings.Repeat("ab", 8))
	require.ErrorIs(t, err, common.ErrInvalidKeyLength)
}
