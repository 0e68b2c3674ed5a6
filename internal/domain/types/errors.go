package types

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when no record exists for a message id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrIdentityNotFound is returned when the wallet has no key file yet.
	ErrIdentityNotFound = errors.New("no identity in wallet; run init")
	// ErrIdentityExists is returned when saving over an existing identity; keys are never rotated.
	ErrIdentityExists = errors.New("identity already exists")
	// ErrPassphraseRequired is returned when the key file is encrypted and no passphrase was given.
	ErrPassphraseRequired = errors.New("key file is encrypted; passphrase required (-p)")
	// ErrInvalidAlias is returned for aliases that cannot name an index entry.
	ErrInvalidAlias = errors.New("invalid alias")
	// ErrUnsupportedDID is returned for DIDs this wallet cannot resolve.
	ErrUnsupportedDID = errors.New("unsupported DID")
	// ErrUnknownCredentialType is returned for claim types outside the known set.
	ErrUnknownCredentialType = errors.New("unknown credential type")
	// ErrInvalidCredential is returned when a credential fails structural checks.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInvalidPresentation is returned when a presentation fails structural checks.
	ErrInvalidPresentation = errors.New("invalid presentation")
)

// StorageError reports an I/O failure against the wallet store.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// CorruptKeyError reports key material on disk that does not parse.
type CorruptKeyError struct {
	Path string
	Err  error
}

func (e *CorruptKeyError) Error() string {
	return fmt.Sprintf("corrupt key file %s: %v", e.Path, e.Err)
}

func (e *CorruptKeyError) Unwrap() error { return e.Err }

// MalformedEnvelopeError reports an envelope whose header cannot be parsed.
type MalformedEnvelopeError struct {
	Reason string
	Err    error
}

func (e *MalformedEnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed envelope: %s: %v", e.Reason, e.Err)
	}
	return "malformed envelope: " + e.Reason
}

func (e *MalformedEnvelopeError) Unwrap() error { return e.Err }

// DecryptionError reports an envelope that failed authentication.
type DecryptionError struct {
	MessageID MessageID
	From      DID
	Reason    string
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed for message %s from %s: %s", e.MessageID, e.From, e.Reason)
}

// UnknownConnectionError reports an alias with no recorded connection.
type UnknownConnectionError struct {
	Alias Alias
}

func (e *UnknownConnectionError) Error() string {
	return fmt.Sprintf("unknown connection %q; add it with connect", string(e.Alias))
}

// NoAssertionMethodError reports a DID document without an assertion method.
type NoAssertionMethodError struct {
	DID DID
}

func (e *NoAssertionMethodError) Error() string {
	return fmt.Sprintf("DID document %s has no assertion method", e.DID)
}

// RecordConflictError reports a different record already stored under the same id.
type RecordConflictError struct {
	Kind RecordKind
	ID   MessageID
}

func (e *RecordConflictError) Error() string {
	return fmt.Sprintf("%s/%s already holds a different record", e.Kind, e.ID)
}
