package message

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"didwallet/internal/crypto"
	"didwallet/internal/domain"
	"didwallet/internal/log"
	"didwallet/internal/protocol/envelope"
	"didwallet/internal/services/outbox"
)

var logger = log.New("message")

// Service seals messages to connections and files received envelopes.
//
// High-level flow:
//   - Write: resolve the peer alias, keep a self-sealed copy, then seal to the peer.
//   - Read: open an envelope addressed to us. Nothing is stored.
//   - Hold: open to authenticate, classify the body, then store the envelope
//     unchanged under its message id. Received presentations are filed as
//     messages; only verify stores them as presentations.
type Service struct {
	codec   domain.EnvelopeCodec
	conns   domain.ConnectionService
	records domain.RecordStore
	outbox  *outbox.Outbox
}

// New constructs a message Service.
func New(
	codec domain.EnvelopeCodec,
	conns domain.ConnectionService,
	records domain.RecordStore,
	out *outbox.Outbox,
) *Service {
	return &Service{codec: codec, conns: conns, records: records, outbox: out}
}

// Write seals plaintext from self to the connection named to.
func (s *Service) Write(self domain.Identity, to domain.Alias, plaintext []byte) (domain.Envelope, error) {
	peer, err := s.conns.Resolve(to)
	if err != nil {
		return domain.Envelope{}, err
	}
	return s.outbox.Send(domain.KindMessage, self, peer, plaintext)
}

// Read opens raw for self.
func (s *Service) Read(self domain.Identity, raw []byte) (domain.OpenedMessage, error) {
	return s.codec.Open(raw, self)
}

// Hold opens raw to check it is addressed to self and authentic, then stores
// it under the kind its body declares. Presentations are stored as messages
// until they pass verification.
func (s *Service) Hold(self domain.Identity, raw []byte) (domain.RecordKind, domain.MessageID, error) {
	opened, err := s.codec.Open(raw, self)
	if err != nil {
		return "", "", err
	}

	kind := Classify(opened.Plaintext)
	switch kind {
	case domain.KindCredential:
		if _, err := domain.ParseCredential(opened.Plaintext); err != nil {
			return "", "", err
		}
	case domain.KindPresentation:
		if _, err := domain.ParsePresentation(opened.Plaintext); err != nil {
			return "", "", err
		}
		kind = domain.KindMessage
	}

	id := opened.Header.ID
	path, err := s.records.PutRecord(kind, id, raw)
	if err != nil {
		return "", "", err
	}
	logger.Info("held envelope",
		log.WithKind(kind.String()), log.WithMessageID(id.String()), log.WithPath(path))
	return kind, id, nil
}

// ListMessages summarises stored messages, oldest first. Records that no
// longer parse are skipped.
func (s *Service) ListMessages() ([]domain.MessageSummary, error) {
	ids, err := s.records.ListRecords(domain.KindMessage)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MessageSummary, 0, len(ids))
	for _, id := range ids {
		raw, err := s.records.GetRecord(domain.KindMessage, id)
		if err != nil {
			return nil, err
		}
		env, err := envelope.Parse(raw)
		if err != nil {
			logger.Warn("skipping unreadable record", log.WithMessageID(id.String()), log.WithError(err))
			continue
		}
		var to domain.DID
		if len(env.To) > 0 {
			to = env.To[0]
		}
		out = append(out, domain.MessageSummary{
			ID:        env.ID,
			From:      env.From,
			FromAlias: s.conns.ResolveAlias(env.From),
			To:        to,
			ToAlias:   s.conns.ResolveAlias(to),
			Created:   env.Created(),
			Length:    max(len(env.Ciphertext)-crypto.Overhead, 0),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetMessage returns the stored envelope with the given id.
func (s *Service) GetMessage(id domain.MessageID) ([]byte, error) {
	raw, err := s.records.GetRecord(domain.KindMessage, id)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", id, err)
	}
	return raw, nil
}

// Classify returns the record kind for a decrypted body: credentials and
// presentations by their JSON type, anything else as a message.
func Classify(body []byte) domain.RecordKind {
	if !gjson.ValidBytes(body) {
		return domain.KindMessage
	}
	types := gjson.GetBytes(body, "type")
	has := func(name string) bool {
		if types.IsArray() {
			return lo.ContainsBy(types.Array(), func(r gjson.Result) bool { return r.String() == name })
		}
		return types.String() == name
	}
	switch {
	case has(domain.VerifiablePresentationType):
		return domain.KindPresentation
	case has(domain.VerifiableCredentialType):
		return domain.KindCredential
	default:
		return domain.KindMessage
	}
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
