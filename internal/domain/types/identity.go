package types

// Identity holds the wallet's long-term Ed25519 keys and the X25519 keys derived
// from them, together with the did:key DID they map to.
type Identity struct {
	DID    DID
	EdPub  Ed25519Public
	EdPriv Ed25519Private
	XPub   X25519Public
	XPriv  X25519Private
}

// Public strips the private halves.
func (id Identity) Public() PublicIdentity {
	return PublicIdentity{DID: id.DID, EdPub: id.EdPub, XPub: id.XPub}
}

// Seed returns the 32-byte Ed25519 seed.
func (id Identity) Seed() []byte {
	seed := make([]byte, 32)
	copy(seed, id.EdPriv[:32])
	return seed
}

// PublicIdentity is what can be learned about a peer from its DID alone.
type PublicIdentity struct {
	DID   DID
	EdPub Ed25519Public
	XPub  X25519Public
}
