package types

import "fmt"

// VerificationStatus is the terminal state of a presentation verification.
type VerificationStatus string

// Verification states.
const (
	Verified                 VerificationStatus = "Verified"
	PresentationProofInvalid VerificationStatus = "PresentationProofInvalid"
	CredentialProofInvalid   VerificationStatus = "CredentialProofInvalid"
	IdentityBindingMismatch  VerificationStatus = "IdentityBindingMismatch"
)

// VerificationResult is returned by the verifier for every completed run. Failed
// verifications are results, not errors.
type VerificationResult struct {
	Status VerificationStatus `json:"status"`
	// MessageID is the id of the envelope that carried the presentation.
	MessageID MessageID `json:"message_id"`
	// PresentationID is the presentation's own id.
	PresentationID string `json:"presentation_id,omitempty"`
	// CredentialID names the credential that failed, if any.
	CredentialID string `json:"credential_id,omitempty"`
	// Field is "issuer" or "subject" for binding mismatches.
	Field    string `json:"field,omitempty"`
	Alias    Alias  `json:"alias,omitempty"`
	Expected DID    `json:"expected,omitempty"`
	Actual   DID    `json:"actual,omitempty"`
	Reason   string `json:"reason,omitempty"`
	// Path is where the verified presentation was stored.
	Path string `json:"path,omitempty"`
}

// OK reports whether the presentation verified.
func (r VerificationResult) OK() bool { return r.Status == Verified }

func (r VerificationResult) String() string {
	switch r.Status {
	case Verified:
		return fmt.Sprintf("verified presentation %s", r.MessageID)
	case IdentityBindingMismatch:
		return fmt.Sprintf("%s: message %s: credential %s: %s did not match %q: expected %s, got %s",
			r.Status, r.MessageID, r.CredentialID, r.Field, string(r.Alias), r.Expected, r.Actual)
	case CredentialProofInvalid:
		return fmt.Sprintf("%s: message %s: credential %s: %s", r.Status, r.MessageID, r.CredentialID, r.Reason)
	default:
		return fmt.Sprintf("%s: message %s: %s", r.Status, r.MessageID, r.Reason)
	}
}
