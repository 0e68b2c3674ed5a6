// Package envelope seals and opens DIDComm-style encrypted messages.
//
// An envelope carries a plaintext header (id, sender DID, recipient DIDs,
// creation and advisory expiry time) and an XChaCha20-Poly1305 ciphertext.
// The content key is derived per operation: X25519 between the sender's and
// the recipient's agreement keys (both mapped from their Ed25519 keys),
// expanded with HKDF under the sender and recipient DIDs. The header is the
// associated data, so any change to it fails authentication.
//
// The recipient learns the sender from the header, resolves the sender's
// agreement key from that DID, and only then decrypts.
package envelope
