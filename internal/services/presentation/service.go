package presentation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"didwallet/internal/domain"
	"didwallet/internal/log"
	"didwallet/internal/services/credential"
	"didwallet/internal/services/outbox"
)

var logger = log.New("presentation")

// Service builds and sends presentations.
type Service struct {
	codec    domain.EnvelopeCodec
	resolver domain.Resolver
	suite    domain.ProofSuite
	conns    domain.ConnectionService
	records  domain.RecordStore
	outbox   *outbox.Outbox
	now      func() time.Time
}

// New constructs a presentation Service.
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

// Present signs a presentation of cred as self and seals it to the
// connection named verifier. A self-sealed copy is stored under
// presentations/ before the envelope is returned.
func (s *Service) Present(
	ctx context.Context,
	self domain.Identity,
	cred domain.Credential,
	verifier domain.Alias,
) (domain.Envelope, error) {
	if err := cred.Validate(); err != nil {
		return domain.Envelope{}, err
	}
	peer, err := s.conns.Resolve(verifier)
	if err != nil {
		return domain.Envelope{}, err
	}
	method, err := credential.AssertionMethod(s.resolver, self.DID)
	if err != nil {
		return domain.Envelope{}, err
	}

	vp := domain.Presentation{
		Context:     []string{domain.CredentialsContextV1},
		ID:          uuid.New().URN(),
		Type:        []string{domain.VerifiablePresentationType, cred.ClaimType().String()},
		Holder:      self.DID,
		Credentials: []domain.Credential{cred},
	}
	proof, err := s.suite.Sign(ctx, vp, self, domain.ProofOptions{
		VerificationMethod: method,
		Created:            s.now(),
		Domain:             peer.DID.String(),
	})
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("sign presentation: %w", err)
	}
	vp.Proof = &proof

	body, err := json.Marshal(vp)
	if err != nil {
		return domain.Envelope{}, err
	}
	env, err := s.outbox.Send(domain.KindPresentation, self, peer, body)
	if err != nil {
		return domain.Envelope{}, err
	}

	logger.Info("presented credential",
		log.WithMessageID(env.ID.String()), log.WithDID(peer.DID.String()))
	return env, nil
}

// ListPresentations summarises stored presentations: those sent by self and
// those verified from others. Records self cannot open are skipped.
func (s *Service) ListPresentations(self domain.Identity) ([]domain.PresentationSummary, error) {
	ids, err := s.records.ListRecords(domain.KindPresentation)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PresentationSummary, 0, len(ids))
	for _, id := range ids {
		raw, err := s.records.GetRecord(domain.KindPresentation, id)
		if err != nil {
			return nil, err
		}
		opened, err := s.codec.Open(raw, self)
		if err != nil {
			logger.Warn("skipping unreadable presentation", log.WithMessageID(id.String()), log.WithError(err))
			continue
		}
		vp, err := domain.ParsePresentation(opened.Plaintext)
		if err != nil {
			logger.Warn("skipping invalid presentation", log.WithMessageID(id.String()), log.WithError(err))
			continue
		}
		out = append(out, domain.PresentationSummary{
			ID:          id,
			Type:        vp.ClaimType(),
			Holder:      vp.Holder,
			HolderAlias: s.conns.ResolveAlias(vp.Holder),
			Credentials: len(vp.Credentials),
			Created:     opened.Header.Created(),
		})
	}
	return out, nil
}

// GetPresentation opens and decodes the presentation stored under id.
func (s *Service) GetPresentation(self domain.Identity, id domain.MessageID) (domain.Presentation, error) {
	raw, err := s.records.GetRecord(domain.KindPresentation, id)
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("presentation %s: %w", id, err)
	}
	opened, err := s.codec.Open(raw, self)
	if err != nil {
		return domain.Presentation{}, err
	}
	return domain.ParsePresentation(opened.Plaintext)
}

// Compile-time assertion that Service implements domain.PresentationService.
var _ domain.PresentationService = (*Service)(nil)
