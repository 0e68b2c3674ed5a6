// Package identity manages creation, recovery and loading of the wallet identity.
//
// A wallet has exactly one Ed25519 identity, created on first use and never
// rotated. Creating it also records the "self" connection. The seed can be
// exported and restored as a BIP39 mnemonic. An identity saved with a
// passphrase must pass the passphrase strength policy.
package identity
