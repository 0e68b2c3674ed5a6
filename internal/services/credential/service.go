package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"didwallet/internal/domain"
	"didwallet/internal/log"
	"didwallet/internal/services/outbox"
)

var logger = log.New("credential")

// Service issues credentials to connections.
type Service struct {
	codec    domain.EnvelopeCodec
	resolver domain.Resolver
	suite    domain.ProofSuite
	conns    domain.ConnectionService
	records  domain.RecordStore
	outbox   *outbox.Outbox
	now      func() time.Time
}

// New constructs a credential Service.
func New(
	codec domain.EnvelopeCodec,
	resolver domain.Resolver,
	suite domain.ProofSuite,
	conns domain.ConnectionService,
	records domain.RecordStore,
	out *outbox.Outbox,
) *Service {
	return &Service{
		codec:    codec,
		resolver: resolver,
		suite:    suite,
		conns:    conns,
		records:  records,
		outbox:   out,
		now:      time.Now,
	}
}

// Issue signs a credential of type typ about the connection named subject
// and seals it to the subject. The issuer keeps a self-sealed copy under
// credentials/.
func (s *Service) Issue(
	ctx context.Context,
	self domain.Identity,
	typ domain.CredentialType,
	subject domain.Alias,
) (domain.Envelope, domain.Credential, error) {
	if _, err := domain.ParseCredentialType(typ.String()); err != nil {
		return domain.Envelope{}, domain.Credential{}, err
	}
	peer, err := s.conns.Resolve(subject)
	if err != nil {
		return domain.Envelope{}, domain.Credential{}, err
	}
	method, err := AssertionMethod(s.resolver, self.DID)
	if err != nil {
		return domain.Envelope{}, domain.Credential{}, err
	}

	issued := s.now().UTC().Truncate(time.Second)
	cred := domain.Credential{
		Context:      []string{domain.CredentialsContextV1},
		ID:           uuid.New().URN(),
		Type:         []string{domain.VerifiableCredentialType, typ.String()},
		Issuer:       self.DID,
		IssuanceDate: issued,
		Subject:      domain.CredentialSubject{ID: peer.DID},
	}
	proof, err := s.suite.Sign(ctx, cred, self, domain.ProofOptions{
		VerificationMethod: method,
		Created:            issued,
	})
	if err != nil {
		return domain.Envelope{}, domain.Credential{}, fmt.Errorf("sign credential: %w", err)
	}
	cred.Proof = &proof

	body, err := json.Marshal(cred)
	if err != nil {
		return domain.Envelope{}, domain.Credential{}, err
	}
	env, err := s.outbox.Send(domain.KindCredential, self, peer, body)
	if err != nil {
		return domain.Envelope{}, domain.Credential{}, err
	}

	logger.Info("issued credential",
		log.WithMessageID(env.ID.String()), log.WithDID(peer.DID.String()))
	return env, cred, nil
}

// ListCredentials summarises the credentials stored in the wallet, both held
// and issued. Records self cannot open are skipped.
func (s *Service) ListCredentials(self domain.Identity) ([]domain.CredentialSummary, error) {
	ids, err := s.records.ListRecords(domain.KindCredential)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CredentialSummary, 0, len(ids))
	for _, id := range ids {
		cred, err := s.GetCredential(self, id)
		if err != nil {
			logger.Warn("skipping unreadable credential", log.WithMessageID(id.String()), log.WithError(err))
			continue
		}
		out = append(out, domain.CredentialSummary{
			ID:           id,
			CredentialID: cred.ID,
			Type:         cred.ClaimType(),
			Issuer:       cred.Issuer,
			IssuerAlias:  s.conns.ResolveAlias(cred.Issuer),
			Subject:      cred.Subject.ID,
			SubjectAlias: s.conns.ResolveAlias(cred.Subject.ID),
			Issued:       cred.IssuanceDate,
		})
	}
	return out, nil
}

// GetCredential opens and decodes the credential stored under id.
func (s *Service) GetCredential(self domain.Identity, id domain.MessageID) (domain.Credential, error) {
	raw, err := s.records.GetRecord(domain.KindCredential, id)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("credential %s: %w", id, err)
	}
	opened, err := s.codec.Open(raw, self)
	if err != nil {
		return domain.Credential{}, err
	}
	return domain.ParseCredential(opened.Plaintext)
}

// AssertionMethod returns the first assertion method of did's document.
func AssertionMethod(resolver domain.Resolver, did domain.DID) (string, error) {
	doc, err := resolver.ResolveDocument(did)
	if err != nil {
		return "", err
	}
	if len(doc.AssertionMethod) == 0 {
		return "", &domain.NoAssertionMethodError{DID: did}
	}
	return doc.AssertionMethod[0], nil
}

// Compile-time assertion that Service implements domain.CredentialService.
var _ domain.CredentialService = (*Service)(nil)
