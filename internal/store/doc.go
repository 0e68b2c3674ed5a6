// Package store provides on-disk persistence for the wallet.
//
// It contains concrete implementations of the domain storage interfaces. All
// file writes go through a temp file and an atomic rename so a crash never
// leaves a half-written record. There is no cross-process locking: a wallet
// directory has a single writer.
//
// The package includes stores for:
//   - The identity key (IdentityFileStore), an OKP JWK optionally sealed with
//     a scrypt-derived key
//   - Connections (ConnectionFileStore), as alias and DID index directories
//   - Envelopes keyed by message id (RecordFileStore, or RecordSQLiteStore)
package store
