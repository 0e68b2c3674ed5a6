// Package crypto exposes the primitives the wallet builds on.
//
// Contents
//
//   - Ed25519 key generation and seed expansion (GenerateEd25519, Ed25519FromSeed)
//   - The one-way Ed25519 to X25519 key map (X25519FromEd25519Private,
//     X25519FromEd25519Public) and Diffie–Hellman (DH)
//   - Pairwise key derivation and XChaCha20-Poly1305 sealing (DeriveKey,
//     SealXChaCha, OpenXChaCha)
//   - Canonical JSON for signing inputs (CanonicalJSON)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Key material is returned as fixed-size array types defined in internal/domain.
// Callers should treat returned secrets as sensitive and wipe them with
// Wipe when practical.
package crypto
