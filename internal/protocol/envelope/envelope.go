package envelope

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"didwallet/internal/crypto"
	"didwallet/internal/domain"
	"didwallet/internal/log"
)

// DefaultTTL is the advisory lifetime written into new envelopes.
const DefaultTTL = time.Hour

const kdfLabel = "didwallet/envelope/v1"

var (
	logger      = log.New("envelope")
	securityLog = log.New("envelope", log.WithFields(log.WithSecurityEvent()))
)

// Codec seals and opens envelopes. It holds no key material.
type Codec struct {
	resolver domain.Resolver
	now      func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for created/expires stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// New returns a Codec that resolves sender keys with resolver.
func New(resolver domain.Resolver, opts ...Option) *Codec {
	c := &Codec{resolver: resolver, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Seal encrypts plaintext from one identity to another. A non-positive ttl
// uses DefaultTTL. Every call assigns a fresh message id.
func (c *Codec) Seal(
	from domain.Identity,
	to domain.PublicIdentity,
	plaintext []byte,
	ttl time.Duration,
) (domain.Envelope, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Envelope{}, err
	}
	now := c.now().UTC()

	hdr := domain.EnvelopeHeader{
		ID:          domain.MessageID(id.String()),
		Type:        domain.EnvelopeType,
		Enc:         domain.EnvelopeEnc,
		From:        from.DID,
		To:          []domain.DID{to.DID},
		CreatedTime: now.Unix(),
		ExpiresTime: now.Add(ttl).Unix(),
	}
	ad, err := crypto.CanonicalJSON(hdr)
	if err != nil {
		return domain.Envelope{}, err
	}

	key, err := crypto.DeriveKey(from.XPriv, to.XPub, kdfInfo(from.DID, to.DID))
	if err != nil {
		return domain.Envelope{}, err
	}
	defer crypto.Wipe(key)

	nonce, ct, err := crypto.SealXChaCha(key, plaintext, ad)
	if err != nil {
		return domain.Envelope{}, err
	}

	logger.Debug("sealed envelope",
		log.WithMessageID(hdr.ID.String()), log.WithDID(to.DID.String()))

	return domain.Envelope{EnvelopeHeader: hdr, Nonce: nonce, Ciphertext: ct}, nil
}

// Open authenticates and decrypts raw for the identity to.
func (c *Codec) Open(raw []byte, to domain.Identity) (domain.OpenedMessage, error) {
	env, err := Parse(raw)
	if err != nil {
		return domain.OpenedMessage{}, err
	}
	hdr := env.EnvelopeHeader

	if !lo.Contains(hdr.To, to.DID) {
		return domain.OpenedMessage{}, c.decryptionFailed(hdr, "not addressed to "+to.DID.String())
	}

	sender, err := c.resolver.Resolve(hdr.From)
	if err != nil {
		return domain.OpenedMessage{}, &domain.MalformedEnvelopeError{Reason: "unresolvable sender " + hdr.From.String(), Err: err}
	}

	ad, err := crypto.CanonicalJSON(hdr)
	if err != nil {
		return domain.OpenedMessage{}, &domain.MalformedEnvelopeError{Reason: "header", Err: err}
	}
	key, err := crypto.DeriveKey(to.XPriv, sender.XPub, kdfInfo(hdr.From, to.DID))
	if err != nil {
		return domain.OpenedMessage{}, c.decryptionFailed(hdr, err.Error())
	}
	defer crypto.Wipe(key)

	pt, err := crypto.OpenXChaCha(key, env.Nonce, env.Ciphertext, ad)
	if err != nil {
		return domain.OpenedMessage{}, c.decryptionFailed(hdr, err.Error())
	}
	return domain.OpenedMessage{Header: hdr, Plaintext: pt}, nil
}

func (c *Codec) decryptionFailed(hdr domain.EnvelopeHeader, reason string) error {
	securityLog.Warn("envelope failed authentication",
		log.WithMessageID(hdr.ID.String()),
		log.WithDID(hdr.From.String()),
	)
	return &domain.DecryptionError{MessageID: hdr.ID, From: hdr.From, Reason: reason}
}

// Parse decodes raw and checks the header without decrypting.
func Parse(raw []byte) (domain.Envelope, error) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.Envelope{}, &domain.MalformedEnvelopeError{Reason: "not an envelope", Err: err}
	}

	var reason string
	switch {
	case env.ID == "":
		reason = "missing id"
	case env.Type != domain.EnvelopeType:
		reason = "unexpected typ " + env.Type
	case env.Enc != domain.EnvelopeEnc:
		reason = "unsupported enc " + env.Enc
	case env.From == "":
		reason = "missing from"
	case len(env.To) == 0:
		reason = "missing to"
	case len(env.Nonce) != crypto.NonceSize:
		reason = "bad iv length"
	case len(env.Ciphertext) == 0:
		reason = "missing ciphertext"
	}
	if reason != "" {
		return domain.Envelope{}, &domain.MalformedEnvelopeError{Reason: reason}
	}
	return env, nil
}

// Marshal encodes env as a single-line JSON token.
func Marshal(env domain.Envelope) ([]byte, error) {
	return json.Marshal(env)
}

func kdfInfo(from, to domain.DID) []byte {
	return []byte(kdfLabel + "|" + from.String() + "|" + to.String())
}

// Compile-time assertion that Codec implements domain.EnvelopeCodec.
var _ domain.EnvelopeCodec = (*Codec)(nil)
