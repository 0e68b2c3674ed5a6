package proof

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/mr-tron/base58"
	"github.com/samber/lo"

	"didwallet/internal/crypto"
	"didwallet/internal/domain"
)

// ErrInvalidProof is wrapped by every verification failure.
var ErrInvalidProof = errors.New("invalid proof")

// Suite signs and verifies detached JWS proofs for did:key signers.
type Suite struct {
	resolver domain.Resolver
}

// New returns a Suite that looks up verification methods with resolver.
func New(resolver domain.Resolver) *Suite {
	return &Suite{resolver: resolver}
}

// Sign returns a proof by signer over doc.
func (s *Suite) Sign(
	ctx context.Context,
	doc any,
	signer domain.Identity,
	opts domain.ProofOptions,
) (domain.Proof, error) {
	if err := ctx.Err(); err != nil {
		return domain.Proof{}, err
	}
	if opts.Purpose == "" {
		opts.Purpose = domain.ProofPurposeAssertion
	}
	if opts.Created.IsZero() {
		opts.Created = time.Now()
	}

	p := domain.Proof{
		Type:               domain.Ed25519Signature2018,
		Created:            opts.Created.UTC().Truncate(time.Second),
		VerificationMethod: opts.VerificationMethod,
		ProofPurpose:       opts.Purpose,
		Domain:             opts.Domain,
	}
	input, err := signingInput(doc, p)
	if err != nil {
		return domain.Proof{}, err
	}

	key := jose.JSONWebKey{
		Key:       ed25519.PrivateKey(signer.EdPriv.Slice()),
		KeyID:     opts.VerificationMethod,
		Algorithm: string(jose.EdDSA),
	}
	sig, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.EdDSA, Key: key}, nil)
	if err != nil {
		return domain.Proof{}, err
	}
	obj, err := sig.Sign(input)
	if err != nil {
		return domain.Proof{}, err
	}
	if p.JWS, err = obj.DetachedCompactSerialize(); err != nil {
		return domain.Proof{}, err
	}
	return p, nil
}

// Verify checks that p is a valid proof over doc by the controller of its
// verification method. Pass received documents as json.RawMessage so every
// member they carry is covered.
func (s *Suite) Verify(ctx context.Context, doc any, p domain.Proof) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Type != domain.Ed25519Signature2018 {
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidProof, p.Type)
	}
	if p.JWS == "" {
		return fmt.Errorf("%w: missing jws", ErrInvalidProof)
	}

	pub, err := s.methodKey(p)
	if err != nil {
		return err
	}

	jws := p.JWS
	p.JWS = ""
	input, err := signingInput(doc, p)
	if err != nil {
		return err
	}

	obj, err := jose.ParseDetached(jws, input)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	if len(obj.Signatures) != 1 {
		return fmt.Errorf("%w: want one signature, got %d", ErrInvalidProof, len(obj.Signatures))
	}
	hdr := obj.Signatures[0].Header
	if hdr.Algorithm != string(jose.EdDSA) {
		return fmt.Errorf("%w: unexpected alg %q", ErrInvalidProof, hdr.Algorithm)
	}
	if hdr.KeyID != "" && hdr.KeyID != p.VerificationMethod {
		return fmt.Errorf("%w: kid %q does not match verification method", ErrInvalidProof, hdr.KeyID)
	}
	if _, err := obj.Verify(pub); err != nil {
		return fmt.Errorf("%w: signature: %w", ErrInvalidProof, err)
	}
	return nil
}

// methodKey resolves the proof's verification method to an Ed25519 key and
// checks it is authorised for the proof purpose.
func (s *Suite) methodKey(p domain.Proof) (ed25519.PublicKey, error) {
	doc, err := s.resolver.ResolveDocument(p.Signer())
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", ErrInvalidProof, p.Signer(), err)
	}
	vm, ok := doc.Method(p.VerificationMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %s not in document of %s", ErrInvalidProof, p.VerificationMethod, doc.ID)
	}

	var allowed []string
	switch p.ProofPurpose {
	case domain.ProofPurposeAssertion:
		allowed = doc.AssertionMethod
	case "authentication":
		allowed = doc.Authentication
	}
	if !lo.Contains(allowed, vm.ID) {
		return nil, fmt.Errorf("%w: %s is not authorised for %q", ErrInvalidProof, vm.ID, p.ProofPurpose)
	}

	key, err := base58.Decode(vm.PublicKeyBase58)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: bad key in %s", ErrInvalidProof, vm.ID)
	}
	return ed25519.PublicKey(key), nil
}

// signingInput hashes the proof options and the document (without proof)
// separately and concatenates the digests.
func signingInput(doc any, p domain.Proof) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	delete(body, "proof")

	docC, err := crypto.CanonicalJSON(body)
	if err != nil {
		return nil, err
	}
	p.JWS = ""
	optsC, err := crypto.CanonicalJSON(p)
	if err != nil {
		return nil, err
	}

	optsSum := sha256.Sum256(optsC)
	docSum := sha256.Sum256(docC)
	return append(optsSum[:], docSum[:]...), nil
}

// Compile-time assertion that Suite implements domain.ProofSuite.
var _ domain.ProofSuite = (*Suite)(nil)
