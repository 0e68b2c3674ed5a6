// Package proof produces and checks Ed25519Signature2018 linked-data proofs.
//
// The signing input is SHA-256 of the canonical proof options followed by
// SHA-256 of the canonical document with its proof removed. The signature is
// an EdDSA JWS with a detached payload, carried in the proof's jws member.
// Verification resolves the proof's verification method through the signer's
// DID document and requires it to be listed for the proof purpose.
package proof
