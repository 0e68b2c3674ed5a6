package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"didwallet/internal/crypto"
)

// sealedKeyVersion is the current format of a passphrase-protected key file.
const sealedKeyVersion = 1

// errWrongPassphrase is returned when the passphrase is incorrect or the
// sealed key has been modified.
var errWrongPassphrase = errors.New("wrong passphrase or corrupted key")

// sealedKey is the on-disk JSON structure holding the encrypted JWK and the
// KDF parameters needed to open it.
type sealedKey struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// isSealed reports whether a key file holds a sealedKey rather than a bare JWK.
func isSealed(b []byte) bool {
	return gjson.GetBytes(b, "cipher").Exists() && gjson.GetBytes(b, "salt").Exists()
}

// sealKey derives a key from passphrase and encrypts the JWK bytes.
func sealKey(passphrase string, jwk []byte) ([]byte, error) {
	N, r, p := scryptParamsDefault()

	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; every seal uses a fresh salt and so a fresh key

	return json.Marshal(sealedKey{
		V:      sealedKeyVersion,
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: aead.Seal(nil, nonce[:], jwk, salt[:]),
	})
}

// openKey reverses sealKey.
func openKey(passphrase string, b []byte) ([]byte, error) {
	var sk sealedKey
	if err := json.Unmarshal(b, &sk); err != nil {
		return nil, err
	}
	if sk.V > sealedKeyVersion {
		return nil, fmt.Errorf("unsupported key file version %d", sk.V)
	}

	key, err := scrypt.Key([]byte(passphrase), sk.Salt, sk.N, sk.R, sk.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], sk.Cipher, sk.Salt)
	if err != nil {
		return nil, errWrongPassphrase
	}
	return pt, nil
}
