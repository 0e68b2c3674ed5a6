package interfaces

import domaintypes "didwallet/internal/domain/types"

// IdentityStore persists the wallet's long-term signing key.
type IdentityStore interface {
	HasIdentity() (bool, error)
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
}

// ConnectionStore keeps the alias and DID indexes of known peers.
type ConnectionStore interface {
	SaveConnection(conn domaintypes.Connection) (domaintypes.ConnectResult, error)
	LookupDID(alias domaintypes.Alias) (domaintypes.DID, bool, error)
	LookupAlias(did domaintypes.DID) (domaintypes.Alias, bool, error)
	ListConnections() ([]domaintypes.Connection, error)
}

// RecordStore persists envelopes keyed by their message id.
type RecordStore interface {
	// PutRecord stores raw under id. Storing identical bytes again is a no-op;
	// storing different bytes under an existing id fails.
	PutRecord(kind domaintypes.RecordKind, id domaintypes.MessageID, raw []byte) (string, error)
	GetRecord(kind domaintypes.RecordKind, id domaintypes.MessageID) ([]byte, error)
	// ListRecords returns the ids of a kind in ascending order.
	ListRecords(kind domaintypes.RecordKind) ([]domaintypes.MessageID, error)
}
