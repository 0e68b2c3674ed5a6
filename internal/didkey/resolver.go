package didkey

import (
	"didwallet/internal/crypto"
	"didwallet/internal/domain"
)

// Resolver resolves did:key DIDs locally.
type Resolver struct{}

// NewResolver returns a did:key resolver.
func NewResolver() *Resolver { return &Resolver{} }

// Resolve returns the signing and agreement public keys of did.
func (Resolver) Resolve(did domain.DID) (domain.PublicIdentity, error) {
	pub, err := PublicKey(did)
	if err != nil {
		return domain.PublicIdentity{}, err
	}
	xpub, err := crypto.X25519FromEd25519Public(pub)
	if err != nil {
		return domain.PublicIdentity{}, err
	}
	return domain.PublicIdentity{DID: did.Base(), EdPub: pub, XPub: xpub}, nil
}

// ResolveDocument returns the DID document of did.
func (Resolver) ResolveDocument(did domain.DID) (domain.Document, error) {
	pub, err := PublicKey(did)
	if err != nil {
		return domain.Document{}, err
	}
	return Document(pub)
}

// IdentityFromSeed expands a 32-byte seed into a complete wallet identity.
func IdentityFromSeed(seed []byte) (domain.Identity, error) {
	priv, pub, err := crypto.Ed25519FromSeed(seed)
	if err != nil {
		return domain.Identity{}, err
	}
	return IdentityFromKeys(priv, pub)
}

// IdentityFromKeys completes an identity from its Ed25519 key pair.
func IdentityFromKeys(priv domain.Ed25519Private, pub domain.Ed25519Public) (domain.Identity, error) {
	xpub, err := crypto.X25519FromEd25519Public(pub)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{
		DID:    FromPublicKey(pub),
		EdPub:  pub,
		EdPriv: priv,
		XPub:   xpub,
		XPriv:  crypto.X25519FromEd25519Private(priv),
	}, nil
}

// Compile-time assertion that Resolver implements domain.Resolver.
var _ domain.Resolver = (*Resolver)(nil)
