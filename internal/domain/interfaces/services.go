package interfaces

import (
	"context"
	"time"

	domaintypes "didwallet/internal/domain/types"
)

// Resolver maps a DID to its public key material.
type Resolver interface {
	Resolve(did domaintypes.DID) (domaintypes.PublicIdentity, error)
	ResolveDocument(did domaintypes.DID) (domaintypes.Document, error)
}

// ProofSuite produces and checks detached proofs over JSON documents.
type ProofSuite interface {
	Sign(
		ctx context.Context,
		doc any,
		signer domaintypes.Identity,
		opts domaintypes.ProofOptions,
	) (domaintypes.Proof, error)
	Verify(ctx context.Context, doc any, proof domaintypes.Proof) error
}

// EnvelopeCodec seals and opens envelopes between two identities.
type EnvelopeCodec interface {
	Seal(
		from domaintypes.Identity,
		to domaintypes.PublicIdentity,
		plaintext []byte,
		ttl time.Duration,
	) (domaintypes.Envelope, error)
	Open(raw []byte, to domaintypes.Identity) (domaintypes.OpenedMessage, error)
}

// IdentityService creates, recovers and inspects the wallet identity.
type IdentityService interface {
	EnsureIdentity(passphrase string) (domaintypes.Identity, bool, error)
	RecoverIdentity(passphrase, mnemonic string) (domaintypes.Identity, bool, error)
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
	SelfDocument(passphrase string) (domaintypes.Document, error)
	Mnemonic(passphrase string) (string, error)
	FingerprintIdentity(passphrase string) (domaintypes.Fingerprint, error)
}

// ConnectionService maps aliases to peer DIDs.
type ConnectionService interface {
	Connect(alias domaintypes.Alias, did domaintypes.DID) (domaintypes.ConnectResult, error)
	ResolveDID(alias domaintypes.Alias) (domaintypes.DID, error)
	ResolveAlias(did domaintypes.DID) string
	Resolve(alias domaintypes.Alias) (domaintypes.PublicIdentity, error)
	ListConnections() ([]domaintypes.Connection, error)
}

// MessageService writes, reads and keeps plain messages.
type MessageService interface {
	Write(self domaintypes.Identity, to domaintypes.Alias, plaintext []byte) (domaintypes.Envelope, error)
	Read(self domaintypes.Identity, raw []byte) (domaintypes.OpenedMessage, error)
	Hold(self domaintypes.Identity, raw []byte) (domaintypes.RecordKind, domaintypes.MessageID, error)
	ListMessages() ([]domaintypes.MessageSummary, error)
	GetMessage(id domaintypes.MessageID) ([]byte, error)
}

// CredentialService issues credentials and reads held ones.
type CredentialService interface {
	Issue(
		ctx context.Context,
		self domaintypes.Identity,
		typ domaintypes.CredentialType,
		subject domaintypes.Alias,
	) (domaintypes.Envelope, domaintypes.Credential, error)
	ListCredentials(self domaintypes.Identity) ([]domaintypes.CredentialSummary, error)
	GetCredential(self domaintypes.Identity, id domaintypes.MessageID) (domaintypes.Credential, error)
}

// PresentationService presents held credentials to verifiers.
type PresentationService interface {
	Present(
		ctx context.Context,
		self domaintypes.Identity,
		cred domaintypes.Credential,
		verifier domaintypes.Alias,
	) (domaintypes.Envelope, error)
	ListPresentations(self domaintypes.Identity) ([]domaintypes.PresentationSummary, error)
	GetPresentation(self domaintypes.Identity, id domaintypes.MessageID) (domaintypes.Presentation, error)
}

// VerifierService checks received presentations against expected parties.
type VerifierService interface {
	Verify(
		ctx context.Context,
		self domaintypes.Identity,
		issuer domaintypes.Alias,
		subject domaintypes.Alias,
		raw []byte,
	) (domaintypes.VerificationResult, error)
}
