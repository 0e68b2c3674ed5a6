package crypto_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/crypto"
)

func TestX25519FromEd25519_KeysAgree(t *testing.T) {
	priv, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	xpriv := crypto.X25519FromEd25519Private(priv)
	fromPriv, err := crypto.X25519Public(xpriv)
	require.NoError(t, err)

	fromPub, err := crypto.X25519FromEd25519Public(pub)
	require.NoError(t, err)
	require.Equal(t, fromPriv, fromPub)
}

func TestEd25519FromSeed_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)

	priv1, pub1, err := crypto.Ed25519FromSeed(seed)
	require.NoError(t, err)
	priv2, pub2, err := crypto.Ed25519FromSeed(seed)
	require.NoError(t, err)

	require.Equal(t, priv1, priv2)
	require.Equal(t, pub1, pub2)
	require.Equal(t, seed, priv1[:32])

	_, _, err = crypto.Ed25519FromSeed(seed[:31])
	require.Error(t, err)
}

func TestDeriveKey_Symmetric(t *testing.T) {
	aPriv, aPub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	bPriv, bPub, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	aX := crypto.X25519FromEd25519Private(aPriv)
	bX := crypto.X25519FromEd25519Private(bPriv)
	aXPub, err := crypto.X25519FromEd25519Public(aPub)
	require.NoError(t, err)
	bXPub, err := crypto.X25519FromEd25519Public(bPub)
	require.NoError(t, err)

	info := []byte("a|b")
	k1, err := crypto.DeriveKey(aX, bXPub, info)
	require.NoError(t, err)
	k2, err := crypto.DeriveKey(bX, aXPub, info)
	require.NoError(t, err)
	require.Equal(t, k1, k2)

	k3, err := crypto.DeriveKey(bX, aXPub, []byte("b|a"))
	require.NoError(t, err)
	require.NotEqual(t, k1, k3)
}

func TestXChaCha_SealOpen(t *testing.T) {
	key := bytes.Repeat([]byte{1}, 32)
	ad := []byte("header")

	nonce, ct, err := crypto.SealXChaCha(key, []byte("hello"), ad)
	require.NoError(t, err)
	require.Len(t, nonce, crypto.NonceSize)

	pt, err := crypto.OpenXChaCha(key, nonce, ct, ad)
	require.NoError(t, err)
	require.Equal(t, "hello", string(pt))

	t.Run("tampered ciphertext", func(t *testing.T) {
		bad := append([]byte(nil), ct...)
		bad[0] ^= 0x01
		_, err := crypto.OpenXChaCha(key, nonce, bad, ad)
		require.ErrorIs(t, err, crypto.ErrOpen)
	})

	t.Run("tampered associated data", func(t *testing.T) {
		_, err := crypto.OpenXChaCha(key, nonce, ct, []byte("other"))
		require.ErrorIs(t, err, crypto.ErrOpen)
	})

	t.Run("short nonce", func(t *testing.T) {
		_, err := crypto.OpenXChaCha(key, nonce[:12], ct, ad)
		require.ErrorIs(t, err, crypto.ErrOpen)
	})
}

func TestCanonicalJSON_SortsKeys(t *testing.T) {
	type inner struct {
		Z int `json:"z"`
		A int `json:"a"`
	}
	v := struct {
		B     string `json:"b"`
		A     inner  `json:"a"`
		Float any    `json:"f"`
	}{B: "x", A: inner{Z: 1, A: 2}, Float: 1.50}

	out, err := crypto.CanonicalJSON(v)
	require.NoError(t, err)
	require.Equal(t, `{"a":{"a":2,"z":1},"b":"x","f":1.5}`, string(out))
}

func TestFingerprint_Length(t *testing.T) {
	require.Len(t, crypto.Fingerprint([]byte("key")), 20)
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	crypto.Wipe(b)
	require.Equal(t, []byte{0, 0, 0, 0}, b)

	crypto.Wipe(nil)
}
