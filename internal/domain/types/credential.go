package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// JSON-LD contexts and type names used by credentials and presentations.
const (
	CredentialsContextV1       = "https://www.w3.org/2018/credentials/v1"
	VerifiableCredentialType   = "VerifiableCredential"
	VerifiablePresentationType = "VerifiablePresentation"

	Ed25519Signature2018  = "Ed25519Signature2018"
	ProofPurposeAssertion = "assertionMethod"
)

// CredentialType is the claim category a credential asserts.
type CredentialType string

// Known credential types.
const (
	Passport         CredentialType = "Passport"
	DriversLicense   CredentialType = "DriversLicense"
	TrafficAuthority CredentialType = "TrafficAuthority"
	LawEnforcer      CredentialType = "LawEnforcer"
)

// CredentialTypes lists the known credential types.
var CredentialTypes = []CredentialType{Passport, DriversLicense, TrafficAuthority, LawEnforcer}

// String returns the string form of the credential type.
func (t CredentialType) String() string { return string(t) }

// ParseCredentialType returns the known credential type named s.
func ParseCredentialType(s string) (CredentialType, error) {
	t := CredentialType(s)
	if !lo.Contains(CredentialTypes, t) {
		return "", fmt.Errorf("%w: %q (want one of %v)", ErrUnknownCredentialType, s, CredentialTypes)
	}
	return t, nil
}

// Proof is a detached linked-data signature.
type Proof struct {
	Type               string    `json:"type"`
	Created            time.Time `json:"created"`
	VerificationMethod string    `json:"verificationMethod"`
	ProofPurpose       string    `json:"proofPurpose"`
	Domain             string    `json:"domain,omitempty"`
	JWS                string    `json:"jws,omitempty"`
}

// Signer returns the DID that controls the proof's verification method.
func (p Proof) Signer() DID { return DID(p.VerificationMethod).Base() }

// CredentialSubject identifies who a credential is about.
type CredentialSubject struct {
	ID DID `json:"id"`
}

// Credential is a W3C verifiable credential carrying a single typed claim.
type Credential struct {
	Context      []string          `json:"@context"`
	ID           string            `json:"id"`
	Type         []string          `json:"type"`
	Issuer       DID               `json:"issuer"`
	IssuanceDate time.Time         `json:"issuanceDate"`
	Subject      CredentialSubject `json:"credentialSubject"`
	Proof        *Proof            `json:"proof,omitempty"`
}

// ClaimType returns the credential's domain type.
func (c Credential) ClaimType() CredentialType {
	return CredentialType(claimType(c.Type, VerifiableCredentialType))
}

// Validate checks the structure of c.
func (c Credential) Validate() error {
	switch {
	case !lo.Contains(c.Context, CredentialsContextV1):
		return fmt.Errorf("%w: missing context %s", ErrInvalidCredential, CredentialsContextV1)
	case !lo.Contains(c.Type, VerifiableCredentialType):
		return fmt.Errorf("%w: type %v lacks %s", ErrInvalidCredential, c.Type, VerifiableCredentialType)
	case c.ClaimType() == "":
		return fmt.Errorf("%w: no claim type", ErrInvalidCredential)
	case c.Issuer == "":
		return fmt.Errorf("%w: no issuer", ErrInvalidCredential)
	case c.Subject.ID == "":
		return fmt.Errorf("%w: no credentialSubject.id", ErrInvalidCredential)
	}
	if _, err := ParseCredentialType(string(c.ClaimType())); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	return nil
}

// ParseCredential decodes and validates a credential.
func ParseCredential(b []byte) (Credential, error) {
	var c Credential
	if err := json.Unmarshal(b, &c); err != nil {
		return Credential{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	if err := c.Validate(); err != nil {
		return Credential{}, err
	}
	return c, nil
}

// Presentation is a W3C verifiable presentation signed by its holder.
type Presentation struct {
	Context     []string     `json:"@context"`
	ID          string       `json:"id"`
	Type        []string     `json:"type"`
	Holder      DID          `json:"holder"`
	Credentials []Credential `json:"verifiableCredential"`
	Proof       *Proof       `json:"proof,omitempty"`
}

// ClaimType returns the type of the presented claim.
func (p Presentation) ClaimType() CredentialType {
	return CredentialType(claimType(p.Type, VerifiablePresentationType))
}

// Validate checks the structure of p and of every embedded credential.
func (p Presentation) Validate() error {
	switch {
	case !lo.Contains(p.Type, VerifiablePresentationType):
		return fmt.Errorf("%w: type %v lacks %s", ErrInvalidPresentation, p.Type, VerifiablePresentationType)
	case p.Holder == "":
		return fmt.Errorf("%w: no holder", ErrInvalidPresentation)
	case len(p.Credentials) == 0:
		return fmt.Errorf("%w: no verifiableCredential", ErrInvalidPresentation)
	}
	for _, c := range p.Credentials {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: credential %s: %w", ErrInvalidPresentation, c.ID, err)
		}
	}
	return nil
}

// ParsePresentation decodes and validates a presentation.
func ParsePresentation(b []byte) (Presentation, error) {
	var p Presentation
	if err := json.Unmarshal(b, &p); err != nil {
		return Presentation{}, fmt.Errorf("%w: %w", ErrInvalidPresentation, err)
	}
	if err := p.Validate(); err != nil {
		return Presentation{}, err
	}
	return p, nil
}

// claimType returns the last entry of types that is not base.
func claimType(types []string, base string) string {
	for i := len(types) - 1; i >= 0; i-- {
		if types[i] != base {
			return types[i]
		}
	}
	return ""
}

// CredentialSummary describes a stored credential.
type CredentialSummary struct {
	ID           MessageID      `json:"id"`
	CredentialID string         `json:"credential_id"`
	Type         CredentialType `json:"type"`
	Issuer       DID            `json:"issuer"`
	IssuerAlias  string         `json:"issuer_alias"`
	Subject      DID            `json:"subject"`
	SubjectAlias string         `json:"subject_alias"`
	Issued       time.Time      `json:"issued"`
}

// PresentationSummary describes a stored presentation.
type PresentationSummary struct {
	ID          MessageID      `json:"id"`
	Type        CredentialType `json:"type"`
	Holder      DID            `json:"holder"`
	HolderAlias string         `json:"holder_alias"`
	Credentials int            `json:"credentials"`
	Created     time.Time      `json:"created"`
}

// ProofOptions selects the key and purpose a proof is produced for.
type ProofOptions struct {
	VerificationMethod string
	Purpose            string
	Created            time.Time
	// Domain restricts the proof to a single relying party, if set.
	Domain string
}
