package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"didwallet/internal/domain"
)

// GenerateEd25519 returns a new Ed25519 signing key pair.
func GenerateEd25519() (priv domain.Ed25519Private, pub domain.Ed25519Public, err error) {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return priv, pub, err
	}
	copy(priv[:], sk)
	copy(pub[:], pk)
	return priv, pub, nil
}

// Ed25519FromSeed expands a 32-byte seed into its key pair.
func Ed25519FromSeed(seed []byte) (priv domain.Ed25519Private, pub domain.Ed25519Public, err error) {
	if len(seed) != ed25519.SeedSize {
		return priv, pub, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	sk := ed25519.NewKeyFromSeed(seed)
	copy(priv[:], sk)
	copy(pub[:], sk.Public().(ed25519.PublicKey))
	return priv, pub, nil
}
