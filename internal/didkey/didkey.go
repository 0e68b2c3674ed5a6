package didkey

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"

	"didwallet/internal/crypto"
	"didwallet/internal/domain"
)

const (
	// Prefix starts every did:key identifier.
	Prefix = "did:key:"

	multibaseBase58BTC = 'z'
)

// FromPublicKey returns the did:key DID of an Ed25519 public key.
func FromPublicKey(pub domain.Ed25519Public) domain.DID {
	return domain.DID(Prefix + fingerprint(multicodec.Ed25519Pub, pub.Slice()))
}

// PublicKey extracts the Ed25519 public key from a did:key DID. A trailing
// #fragment is ignored.
func PublicKey(did domain.DID) (domain.Ed25519Public, error) {
	var pub domain.Ed25519Public

	id := string(did.Base())
	if !strings.HasPrefix(id, Prefix) {
		return pub, fmt.Errorf("%w: %q is not did:key", domain.ErrUnsupportedDID, did)
	}
	code, key, err := decodeFingerprint(strings.TrimPrefix(id, Prefix))
	if err != nil {
		return pub, fmt.Errorf("%w: %q: %w", domain.ErrUnsupportedDID, did, err)
	}
	if code != multicodec.Ed25519Pub {
		return pub, fmt.Errorf("%w: %q: key type %s", domain.ErrUnsupportedDID, did, code)
	}
	if len(key) != len(pub) {
		return pub, fmt.Errorf("%w: %q: key length %d", domain.ErrUnsupportedDID, did, len(key))
	}
	copy(pub[:], key)
	return pub, nil
}

// Document builds the DID document for an Ed25519 public key.
func Document(pub domain.Ed25519Public) (domain.Document, error) {
	xpub, err := crypto.X25519FromEd25519Public(pub)
	if err != nil {
		return domain.Document{}, err
	}

	did := FromPublicKey(pub)
	edID := string(did) + "#" + fingerprint(multicodec.Ed25519Pub, pub.Slice())
	xID := string(did) + "#" + fingerprint(multicodec.X25519Pub, xpub.Slice())

	return domain.Document{
		Context: []string{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/suites/ed25519-2018/v1",
			"https://w3id.org/security/suites/x25519-2019/v1",
		},
		ID: did,
		VerificationMethod: []domain.VerificationMethod{
			{
				ID:              edID,
				Type:            "Ed25519VerificationKey2018",
				Controller:      did,
				PublicKeyBase58: base58.Encode(pub.Slice()),
			},
			{
				ID:              xID,
				Type:            "X25519KeyAgreementKey2019",
				Controller:      did,
				PublicKeyBase58: base58.Encode(xpub.Slice()),
			},
		},
		Authentication:       []string{edID},
		AssertionMethod:      []string{edID},
		CapabilityDelegation: []string{edID},
		CapabilityInvocation: []string{edID},
		KeyAgreement:         []string{xID},
	}, nil
}

// fingerprint is the multibase-encoded, multicodec-prefixed key.
func fingerprint(code multicodec.Code, key []byte) string {
	var buf bytes.Buffer
	buf.Write(varint.ToUvarint(uint64(code)))
	buf.Write(key)
	return string(multibaseBase58BTC) + base58.Encode(buf.Bytes())
}

func decodeFingerprint(s string) (multicodec.Code, []byte, error) {
	if s == "" || s[0] != multibaseBase58BTC {
		return 0, nil, fmt.Errorf("expected base58btc multibase")
	}
	raw, err := base58.Decode(s[1:])
	if err != nil {
		return 0, nil, err
	}
	code, n, err := varint.FromUvarint(raw)
	if err != nil {
		return 0, nil, err
	}
	return multicodec.Code(code), raw[n:], nil
}
