package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"didwallet/internal/domain"
)

// NonceSize is the XChaCha20-Poly1305 nonce length.
const NonceSize = chacha20poly1305.NonceSizeX

// Overhead is the authentication tag length added to every ciphertext.
const Overhead = chacha20poly1305.Overhead

// ErrOpen is returned when a ciphertext fails authentication.
var ErrOpen = errors.New("message authentication failed")

// DeriveKey runs X25519 between priv and pub and expands the result with
// HKDF-SHA256 under info. The raw DH output is wiped before returning.
func DeriveKey(priv domain.X25519Private, pub domain.X25519Public, info []byte) ([]byte, error) {
	dh, err := DH(priv, pub)
	if err != nil {
		return nil, err
	}
	defer Wipe(dh[:])

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, dh[:], nil, info), key); err != nil {
		return nil, err
	}
	return key, nil
}

// SealXChaCha encrypts plaintext under key with a random 24-byte nonce.
func SealXChaCha(key, plaintext, ad []byte) (nonce, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return nonce, aead.Seal(nil, nonce, plaintext, ad), nil
}

// OpenXChaCha decrypts ciphertext sealed by SealXChaCha.
func OpenXChaCha(key, nonce, ciphertext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, ErrOpen
	}
	pt, err := aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, ErrOpen
	}
	return pt, nil
}
