package store

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-jose/go-jose/v3"

	"didwallet/internal/crypto"
	"didwallet/internal/didkey"
	"didwallet/internal/domain"
)

const keyFilename = "key.jwk"

// IdentityFileStore persists the wallet's signing key as an OKP JWK, sealed
// with a passphrase when one is given.
type IdentityFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir}
}

// Path returns the key file location.
func (s *IdentityFileStore) Path() string { return filepath.Join(s.dir, keyFilename) }

// HasIdentity reports whether a key file exists.
func (s *IdentityFileStore) HasIdentity() (bool, error) {
	_, err := os.Stat(s.Path())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, storageErr("stat", s.Path(), err)
	}
}

// SaveIdentity writes the key file. An existing key is never replaced.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.HasIdentity()
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", domain.ErrIdentityExists, s.Path())
	}

	jwk := jose.JSONWebKey{
		Key:       ed25519.PrivateKey(id.EdPriv.Slice()),
		KeyID:     string(id.DID),
		Algorithm: string(jose.EdDSA),
		Use:       "sig",
	}
	raw, err := jwk.MarshalJSON()
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)

	out := raw
	if passphrase != "" {
		if out, err = sealKey(passphrase, raw); err != nil {
			return err
		}
	}
	return writeFile(s.Path(), out, fileMode)
}

// LoadIdentity reads the key file and rebuilds the identity from it.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path()
	b, err := readFile(path)
	if err != nil {
		return domain.Identity{}, err
	}
	if b == nil {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}

	if isSealed(b) {
		if passphrase == "" {
			return domain.Identity{}, domain.ErrPassphraseRequired
		}
		if b, err = openKey(passphrase, b); err != nil {
			return domain.Identity{}, &domain.CorruptKeyError{Path: path, Err: err}
		}
	}
	defer crypto.Wipe(b)

	id, err := identityFromJWK(b)
	if err != nil {
		return domain.Identity{}, &domain.CorruptKeyError{Path: path, Err: err}
	}
	return id, nil
}

func identityFromJWK(b []byte) (domain.Identity, error) {
	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(b); err != nil {
		return domain.Identity{}, err
	}
	sk, ok := jwk.Key.(ed25519.PrivateKey)
	if !ok || len(sk) != ed25519.PrivateKeySize {
		return domain.Identity{}, fmt.Errorf("key is %T, want an Ed25519 private key", jwk.Key)
	}

	priv, pub, err := crypto.Ed25519FromSeed(sk.Seed())
	if err != nil {
		return domain.Identity{}, err
	}
	if !bytes.Equal(pub.Slice(), sk[32:]) {
		return domain.Identity{}, errors.New("public key does not match private key")
	}

	id, err := didkey.IdentityFromKeys(priv, pub)
	if err != nil {
		return domain.Identity{}, err
	}
	if jwk.KeyID != "" && jwk.KeyID != string(id.DID) {
		return domain.Identity{}, fmt.Errorf("kid %q does not match key %s", jwk.KeyID, id.DID)
	}
	return id, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
