package verifier

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"didwallet/internal/domain"
	"didwallet/internal/log"
)

var (
	logger      = log.New("verifier")
	securityLog = log.New("verifier", log.WithFields(log.WithSecurityEvent()))
)

// Service verifies presentations addressed to the wallet.
type Service struct {
	codec   domain.EnvelopeCodec
	suite   domain.ProofSuite
	conns   domain.ConnectionService
	records domain.RecordStore
}

// New constructs a verifier Service.
func New(
	codec domain.EnvelopeCodec,
	suite domain.ProofSuite,
	conns domain.ConnectionService,
	records domain.RecordStore,
) *Service {
	return &Service{codec: codec, suite: suite, conns: conns, records: records}
}

// Verify checks the presentation in raw against the connections named issuer
// and subject. A verified presentation is stored under presentations/.
func (s *Service) Verify(
	ctx context.Context,
	self domain.Identity,
	issuer domain.Alias,
	subject domain.Alias,
	raw []byte,
) (domain.VerificationResult, error) {
	// 1) Expected parties.
	wantIssuer, err := s.conns.ResolveDID(issuer)
	if err != nil {
		return domain.VerificationResult{}, err
	}
	wantSubject, err := s.conns.ResolveDID(subject)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	// 2) Open.
	opened, err := s.codec.Open(raw, self)
	if err != nil {
		return domain.VerificationResult{}, err
	}
	res := domain.VerificationResult{MessageID: opened.Header.ID}

	// 3) Holder proof, over the body as received.
	vp, creds, err := parse(opened.Plaintext)
	if err != nil {
		return s.fail(res, domain.PresentationProofInvalid, err.Error()), nil
	}
	res.PresentationID = vp.ID
	reason, err := s.checkPresentation(ctx, self, vp, opened.Plaintext)
	if err != nil {
		return domain.VerificationResult{}, err
	}
	if reason != "" {
		return s.fail(res, domain.PresentationProofInvalid, reason), nil
	}

	// 4) Issuer proofs, each over its credential as received.
	for _, c := range creds {
		reason, err = s.checkCredential(ctx, c.Credential, c.raw)
		if err != nil {
			return domain.VerificationResult{}, err
		}
		if reason != "" {
			res.CredentialID = c.ID
			return s.fail(res, domain.CredentialProofInvalid, reason), nil
		}
	}

	// 5) Bindings.
	for _, c := range creds {
		switch {
		case c.Issuer != wantIssuer:
			return s.mismatch(res, c.Credential, "issuer", issuer, wantIssuer, c.Issuer), nil
		case c.Subject.ID != wantSubject:
			return s.mismatch(res, c.Credential, "subject", subject, wantSubject, c.Subject.ID), nil
		}
	}

	// 6) Persist.
	path, err := s.records.PutRecord(domain.KindPresentation, opened.Header.ID, raw)
	if err != nil {
		return domain.VerificationResult{}, err
	}
	res.Status = domain.Verified
	res.Path = path
	logger.Info("presentation verified",
		log.WithMessageID(res.MessageID.String()),
		log.WithDID(vp.Holder.String()),
		log.WithPath(path),
	)
	return res, nil
}

// receivedCredential is a credential together with the bytes it arrived as.
type receivedCredential struct {
	domain.Credential
	raw json.RawMessage
}

// parse decodes a presentation and keeps each embedded credential's own bytes,
// so proofs cover members the typed form does not carry.
func parse(body []byte) (domain.Presentation, []receivedCredential, error) {
	vp, err := domain.ParsePresentation(body)
	if err != nil {
		return domain.Presentation{}, nil, err
	}
	var entries struct {
		Credentials []json.RawMessage `json:"verifiableCredential"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return domain.Presentation{}, nil, err
	}

	creds := make([]receivedCredential, 0, len(entries.Credentials))
	for _, raw := range entries.Credentials {
		c, err := domain.ParseCredential(raw)
		if err != nil {
			return domain.Presentation{}, nil, err
		}
		creds = append(creds, receivedCredential{Credential: c, raw: raw})
	}
	return vp, creds, nil
}

// checkPresentation returns a non-empty reason when the holder proof is
// missing, not made by the holder, bound to another verifier or invalid.
func (s *Service) checkPresentation(
	ctx context.Context,
	self domain.Identity,
	vp domain.Presentation,
	body []byte,
) (string, error) {
	p := vp.Proof
	switch {
	case p == nil:
		return "missing proof", nil
	case p.Signer() != vp.Holder:
		return "proof signed by " + p.Signer().String() + ", not the holder", nil
	case p.Domain != "" && p.Domain != self.DID.String():
		return "proof is bound to " + p.Domain, nil
	}
	return s.verifyProof(ctx, json.RawMessage(body), *p)
}

// checkCredential returns a non-empty reason when the issuer proof is
// missing, not made by the issuer or invalid.
func (s *Service) checkCredential(ctx context.Context, c domain.Credential, raw json.RawMessage) (string, error) {
	p := c.Proof
	switch {
	case p == nil:
		return "missing proof", nil
	case p.Signer() != c.Issuer:
		return "proof signed by " + p.Signer().String() + ", not the issuer", nil
	}
	return s.verifyProof(ctx, raw, *p)
}

func (s *Service) verifyProof(ctx context.Context, doc any, p domain.Proof) (string, error) {
	if err := s.suite.Verify(ctx, doc, p); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return err.Error(), nil
	}
	return "", nil
}

func (s *Service) mismatch(
	res domain.VerificationResult,
	c domain.Credential,
	field string,
	alias domain.Alias,
	want, got domain.DID,
) domain.VerificationResult {
	res.CredentialID = c.ID
	res.Field = field
	res.Alias = alias
	res.Expected = want
	res.Actual = got
	return s.fail(res, domain.IdentityBindingMismatch, field+" mismatch")
}

func (s *Service) fail(
	res domain.VerificationResult,
	status domain.VerificationStatus,
	reason string,
) domain.VerificationResult {
	res.Status = status
	res.Reason = reason
	fields := []zap.Field{log.WithMessageID(res.MessageID.String()), log.WithStatus(string(status))}
	// Reasons may quote attacker-chosen values.
	if securityLog.IsEnabled(log.DEBUG) {
		fields = append(fields, log.WithReason(reason))
	}
	securityLog.Warn("presentation rejected", fields...)
	return res
}

// Compile-time assertion that Service implements domain.VerifierService.
var _ domain.VerifierService = (*Service)(nil)
