package crypto

import (
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"

	"didwallet/internal/domain"
)

// X25519FromEd25519Private derives the agreement private key from a signing
// key: the clamped low half of SHA-512(seed), as Ed25519 itself uses it.
func X25519FromEd25519Private(priv domain.Ed25519Private) domain.X25519Private {
	h := sha512.Sum512(priv[:32])
	defer Wipe(h[:])

	var out domain.X25519Private
	copy(out[:], h[:32])
	clamp(&out)
	return out
}

// X25519FromEd25519Public maps an Edwards public key to its Montgomery u
// coordinate. The map is not inverted anywhere.
func X25519FromEd25519Public(pub domain.Ed25519Public) (domain.X25519Public, error) {
	var out domain.X25519Public
	p, err := new(edwards25519.Point).SetBytes(pub.Slice())
	if err != nil {
		return out, fmt.Errorf("invalid ed25519 public key: %w", err)
	}
	copy(out[:], p.BytesMontgomery())
	return out, nil
}

// X25519Public returns the public key for priv.
func X25519Public(priv domain.X25519Private) (domain.X25519Public, error) {
	var out domain.X25519Public
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return out, err
	}
	copy(out[:], pb)
	return out, nil
}

// DH computes X25519 Diffie–Hellman.
func DH(priv domain.X25519Private, pub domain.X25519Public) (out [32]byte, err error) {
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return out, err
	}
	copy(out[:], secret)
	Wipe(secret)
	return out, nil
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
