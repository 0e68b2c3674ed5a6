// Package outbox seals outgoing bodies and keeps the sender's own copy.
//
// Every envelope a wallet sends is paired with a copy sealed to itself and
// stored under the record kind of the body, so the sender can list and re-read
// what it wrote, issued or presented.
package outbox

import (
	"time"

	"didwallet/internal/domain"
	"didwallet/internal/log"
	"didwallet/internal/protocol/envelope"
)

var logger = log.New("outbox")

// Outbox seals and stores outgoing envelopes.
type Outbox struct {
	codec   domain.EnvelopeCodec
	records domain.RecordStore
	ttl     time.Duration
}

// New returns an Outbox. A non-positive ttl uses the codec default.
func New(codec domain.EnvelopeCodec, records domain.RecordStore, ttl time.Duration) *Outbox {
	return &Outbox{codec: codec, records: records, ttl: ttl}
}

// Send seals body from self to peer and stores a self-sealed copy under kind.
// When peer is self the returned envelope is the stored copy.
func (o *Outbox) Send(
	kind domain.RecordKind,
	self domain.Identity,
	peer domain.PublicIdentity,
	body []byte,
) (domain.Envelope, error) {
	own, err := o.keep(kind, self, body)
	if err != nil {
		return domain.Envelope{}, err
	}
	if peer.DID == self.DID {
		return own, nil
	}
	return o.codec.Seal(self, peer, body, o.ttl)
}

func (o *Outbox) keep(kind domain.RecordKind, self domain.Identity, body []byte) (domain.Envelope, error) {
	env, err := o.codec.Seal(self, self.Public(), body, o.ttl)
	if err != nil {
		return domain.Envelope{}, err
	}
	raw, err := envelope.Marshal(env)
	if err != nil {
		return domain.Envelope{}, err
	}
	path, err := o.records.PutRecord(kind, env.ID, raw)
	if err != nil {
		return domain.Envelope{}, err
	}
	logger.Debug("kept own copy",
		log.WithKind(kind.String()), log.WithMessageID(env.ID.String()), log.WithPath(path))
	return env, nil
}
