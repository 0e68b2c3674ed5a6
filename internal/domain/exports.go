package domain

import (
	interfaces "didwallet/internal/domain/interfaces"
	types "didwallet/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	DID                    = types.DID
	Alias                  = types.Alias
	MessageID              = types.MessageID
	Fingerprint            = types.Fingerprint
	Identity               = types.Identity
	PublicIdentity         = types.PublicIdentity
	Document               = types.Document
	VerificationMethod     = types.VerificationMethod
	X25519Public           = types.X25519Public
	X25519Private          = types.X25519Private
	Ed25519Public          = types.Ed25519Public
	Ed25519Private         = types.Ed25519Private
	EnvelopeHeader         = types.EnvelopeHeader
	Envelope               = types.Envelope
	OpenedMessage          = types.OpenedMessage
	MessageSummary         = types.MessageSummary
	Connection             = types.Connection
	ConnectStatus          = types.ConnectStatus
	ConnectResult          = types.ConnectResult
	RecordKind             = types.RecordKind
	CredentialType         = types.CredentialType
	Proof                  = types.Proof
	ProofOptions           = types.ProofOptions
	CredentialSubject      = types.CredentialSubject
	Credential             = types.Credential
	Presentation           = types.Presentation
	CredentialSummary      = types.CredentialSummary
	PresentationSummary    = types.PresentationSummary
	VerificationStatus     = types.VerificationStatus
	VerificationResult     = types.VerificationResult
	StorageError           = types.StorageError
	CorruptKeyError        = types.CorruptKeyError
	MalformedEnvelopeError = types.MalformedEnvelopeError
	DecryptionError        = types.DecryptionError
	UnknownConnectionError = types.UnknownConnectionError
	NoAssertionMethodError = types.NoAssertionMethodError
	RecordConflictError    = types.RecordConflictError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityStore       = interfaces.IdentityStore
	ConnectionStore     = interfaces.ConnectionStore
	RecordStore         = interfaces.RecordStore
	Resolver            = interfaces.Resolver
	ProofSuite          = interfaces.ProofSuite
	EnvelopeCodec       = interfaces.EnvelopeCodec
	IdentityService     = interfaces.IdentityService
	ConnectionService   = interfaces.ConnectionService
	MessageService      = interfaces.MessageService
	CredentialService   = interfaces.CredentialService
	PresentationService = interfaces.PresentationService
	VerifierService     = interfaces.VerifierService
)

// Constants re-exported from the types subpackage.
const (
	SelfAlias = types.SelfAlias

	EnvelopeType = types.EnvelopeType
	EnvelopeEnc  = types.EnvelopeEnc

	CredentialsContextV1       = types.CredentialsContextV1
	VerifiableCredentialType   = types.VerifiableCredentialType
	VerifiablePresentationType = types.VerifiablePresentationType
	Ed25519Signature2018       = types.Ed25519Signature2018
	ProofPurposeAssertion      = types.ProofPurposeAssertion

	KindMessage      = types.KindMessage
	KindCredential   = types.KindCredential
	KindPresentation = types.KindPresentation

	Created   = types.Created
	Replaced  = types.Replaced
	Unchanged = types.Unchanged

	Passport         = types.Passport
	DriversLicense   = types.DriversLicense
	TrafficAuthority = types.TrafficAuthority
	LawEnforcer      = types.LawEnforcer

	Verified                 = types.Verified
	PresentationProofInvalid = types.PresentationProofInvalid
	CredentialProofInvalid   = types.CredentialProofInvalid
	IdentityBindingMismatch  = types.IdentityBindingMismatch
)

// Sentinel errors re-exported from the types subpackage.
var (
	ErrRecordNotFound        = types.ErrRecordNotFound
	ErrIdentityNotFound      = types.ErrIdentityNotFound
	ErrIdentityExists        = types.ErrIdentityExists
	ErrPassphraseRequired    = types.ErrPassphraseRequired
	ErrInvalidAlias          = types.ErrInvalidAlias
	ErrUnsupportedDID        = types.ErrUnsupportedDID
	ErrUnknownCredentialType = types.ErrUnknownCredentialType
	ErrInvalidCredential     = types.ErrInvalidCredential
	ErrInvalidPresentation   = types.ErrInvalidPresentation
)

// ParseCredentialType returns the known credential type named s.
func ParseCredentialType(s string) (CredentialType, error) { return types.ParseCredentialType(s) }

// ParseCredential decodes and validates a credential.
func ParseCredential(b []byte) (Credential, error) { return types.ParseCredential(b) }

// ParsePresentation decodes and validates a presentation.
func ParsePresentation(b []byte) (Presentation, error) { return types.ParsePresentation(b) }
