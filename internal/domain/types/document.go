package types

// Verification method types used in did:key documents.
const (
	Ed25519VerificationKey2018    = "Ed25519VerificationKey2018"
	X25519KeyAgreementKey2019     = "X25519KeyAgreementKey2019"
	DIDContextV1                  = "https://www.w3.org/ns/did/v1"
	Ed25519Signature2018Context   = "https://w3id.org/security/suites/ed25519-2018/v1"
	X25519KeyAgreement2019Context = "https://w3id.org/security/suites/x25519-2019/v1"
)

// VerificationMethod is a public key entry in a DID document.
type VerificationMethod struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Controller      DID    `json:"controller"`
	PublicKeyBase58 string `json:"publicKeyBase58"`
}

// Document is a DID document.
type Document struct {
	Context              []string             `json:"@context"`
	ID                   DID                  `json:"id"`
	VerificationMethod   []VerificationMethod `json:"verificationMethod"`
	Authentication       []string             `json:"authentication"`
	AssertionMethod      []string             `json:"assertionMethod"`
	CapabilityDelegation []string             `json:"capabilityDelegation"`
	CapabilityInvocation []string             `json:"capabilityInvocation"`
	KeyAgreement         []string             `json:"keyAgreement"`
}

// Method returns the verification method with the given id.
func (d Document) Method(id string) (VerificationMethod, bool) {
	for _, vm := range d.VerificationMethod {
		if vm.ID == id {
			return vm, true
		}
	}
	return VerificationMethod{}, false
}
