// Package didkey implements the did:key method for Ed25519 keys.
//
// A did:key is the multibase (base58btc, "z" prefix) encoding of the
// multicodec-prefixed public key. The DID document lists the Ed25519 key as
// authentication and assertion method and the derived X25519 key for key
// agreement. Resolution needs no network: the key is in the identifier.
package didkey
