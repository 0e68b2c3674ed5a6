// Package verifier checks presentations received from holders.
//
// Verification runs as a short-circuiting state machine: resolve the expected
// parties, open the envelope, check the holder proof, check every issuer
// proof, check the issuer and subject bindings, then persist. The first failed
// check decides the outcome. Failed checks are reported as a
// VerificationResult; only infrastructure failures are returned as errors.
package verifier
