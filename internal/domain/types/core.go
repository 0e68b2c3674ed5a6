package types

import "strings"

// DID is a decentralized identifier, e.g. did:key:z6Mk...
type DID string

// String returns the string form of the DID.
func (d DID) String() string { return string(d) }

// Base returns the DID with any #fragment removed.
func (d DID) Base() DID {
	s, _, _ := strings.Cut(string(d), "#")
	return DID(s)
}

// Alias is a human-chosen name for a connection.
type Alias string

// String returns the string form of the alias.
func (a Alias) String() string { return string(a) }

// SelfAlias names the wallet's own connection.
const SelfAlias Alias = "self"

// MessageID is the protocol-assigned identifier of an envelope.
type MessageID string

// String returns the string form of the message identifier.
func (id MessageID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
