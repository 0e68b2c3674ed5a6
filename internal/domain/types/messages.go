package types

import "time"

// Envelope header constants.
const (
	EnvelopeType = "application/didcomm-encrypted+json"
	EnvelopeEnc  = "XC20P"
)

// EnvelopeHeader is the unencrypted part of an envelope. It is bound to the
// ciphertext as associated data.
type EnvelopeHeader struct {
	ID          MessageID `json:"id"`
	Type        string    `json:"typ"`
	Enc         string    `json:"enc"`
	From        DID       `json:"from"`
	To          []DID     `json:"to"`
	CreatedTime int64     `json:"created_time"`
	ExpiresTime int64     `json:"expires_time"`
}

// Created returns the creation time.
func (h EnvelopeHeader) Created() time.Time { return time.Unix(h.CreatedTime, 0).UTC() }

// Expires returns the advisory expiry time.
func (h EnvelopeHeader) Expires() time.Time { return time.Unix(h.ExpiresTime, 0).UTC() }

// Envelope is the sealed message token handed to and from callers (a "dcem").
type Envelope struct {
	EnvelopeHeader
	Nonce      []byte `json:"iv"`
	Ciphertext []byte `json:"ciphertext"`
}

// OpenedMessage is the result of opening an envelope.
type OpenedMessage struct {
	Header    EnvelopeHeader
	Plaintext []byte
}

// MessageSummary describes a stored envelope without decrypting it.
type MessageSummary struct {
	ID        MessageID `json:"id"`
	From      DID       `json:"from"`
	FromAlias string    `json:"from_alias"`
	To        DID       `json:"to"`
	ToAlias   string    `json:"to_alias"`
	Created   time.Time `json:"created"`
	Length    int       `json:"length"`
}
