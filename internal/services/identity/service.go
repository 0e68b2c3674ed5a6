package identity

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/tyler-smith/go-bip39"

	"didwallet/internal/crypto"
	"didwallet/internal/didkey"
	"didwallet/internal/domain"
	"didwallet/internal/log"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	seedSize = 32
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	// ErrInvalidMnemonic is returned for mnemonics that do not encode a 32-byte seed.
	ErrInvalidMnemonic = errors.New("invalid mnemonic; want 24 BIP39 words")
)

var logger = log.New("identity")

// Service manages the wallet identity using a backing key store.
//
// The identity contains:
//   - Ed25519 key pair for signing credential and presentation proofs.
//   - X25519 key pair derived from it for envelope key agreement.
type Service struct {
	store domain.IdentityStore
	conns domain.ConnectionStore
}

// New returns an identity service backed by the given stores.
func New(s domain.IdentityStore, conns domain.ConnectionStore) *Service {
	return &Service{store: s, conns: conns}
}

// EnsureIdentity returns the wallet identity, generating and saving a new
// one if none exists. created reports whether a key was written.
func (s *Service) EnsureIdentity(passphrase string) (domain.Identity, bool, error) {
	has, err := s.store.HasIdentity()
	if err != nil {
		return domain.Identity{}, false, err
	}
	if has {
		id, err := s.store.LoadIdentity(passphrase)
		if err != nil {
			return domain.Identity{}, false, err
		}
		if err := s.ensureSelf(id); err != nil {
			return domain.Identity{}, false, err
		}
		return id, false, nil
	}

	priv, _, err := crypto.GenerateEd25519()
	if err != nil {
		return domain.Identity{}, false, err
	}
	defer crypto.Wipe(priv[:])

	id, err := s.create(passphrase, priv[:seedSize])
	if err != nil {
		return domain.Identity{}, false, err
	}
	return id, true, nil
}

// RecoverIdentity restores the identity encoded by mnemonic. Recovering into a
// wallet that already holds the same identity is a no-op; a different one is
// never overwritten. created reports whether a key was written.
func (s *Service) RecoverIdentity(passphrase, mnemonic string) (domain.Identity, bool, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return domain.Identity{}, false, ErrInvalidMnemonic
	}
	seed, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	defer crypto.Wipe(seed)
	if len(seed) != seedSize {
		return domain.Identity{}, false, ErrInvalidMnemonic
	}

	has, err := s.store.HasIdentity()
	if err != nil {
		return domain.Identity{}, false, err
	}
	if !has {
		id, err := s.create(passphrase, seed)
		if err != nil {
			return domain.Identity{}, false, err
		}
		return id, true, nil
	}

	existing, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return domain.Identity{}, false, err
	}
	recovered, err := didkey.IdentityFromSeed(seed)
	if err != nil {
		return domain.Identity{}, false, err
	}
	if recovered.DID != existing.DID {
		return domain.Identity{}, false, fmt.Errorf("%w: wallet holds %s", domain.ErrIdentityExists, existing.DID)
	}
	if err := s.ensureSelf(existing); err != nil {
		return domain.Identity{}, false, err
	}
	return existing, false, nil
}

// create derives the identity from seed, saves it and records the self connection.
func (s *Service) create(passphrase string, seed []byte) (domain.Identity, error) {
	if passphrase != "" && !isSecurePassphrase(passphrase) {
		return domain.Identity{}, ErrWeakPassphrase
	}

	id, err := didkey.IdentityFromSeed(seed)
	if err != nil {
		return domain.Identity{}, err
	}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return domain.Identity{}, err
	}
	if _, err := s.conns.SaveConnection(domain.Connection{Alias: domain.SelfAlias, DID: id.DID}); err != nil {
		return domain.Identity{}, err
	}

	logger.Info("created identity", log.WithDID(id.DID.String()))
	return id, nil
}

// ensureSelf records the self connection for id if it is missing.
func (s *Service) ensureSelf(id domain.Identity) error {
	did, ok, err := s.conns.LookupDID(domain.SelfAlias)
	switch {
	case err != nil:
		return err
	case ok && did != id.DID:
		logger.Warn("self connection names another DID", log.WithDID(did.String()))
		return nil
	case ok:
		return nil
	}
	res, err := s.conns.SaveConnection(domain.Connection{Alias: domain.SelfAlias, DID: id.DID})
	if err != nil {
		return err
	}
	logger.Info("restored self connection", log.WithDID(id.DID.String()), log.WithStatus(res.Status.String()))
	return nil
}

// LoadIdentity returns the stored identity.
func (s *Service) LoadIdentity(passphrase string) (domain.Identity, error) {
	return s.store.LoadIdentity(passphrase)
}

// SelfDocument returns the DID document of the stored identity.
func (s *Service) SelfDocument(passphrase string) (domain.Document, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return domain.Document{}, err
	}
	return didkey.Document(id.EdPub)
}

// Mnemonic returns the BIP39 encoding of the identity seed.
func (s *Service) Mnemonic(passphrase string) (string, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	seed := id.Seed()
	defer crypto.Wipe(seed)
	return bip39.NewMnemonic(seed)
}

// FingerprintIdentity returns a short fingerprint of the Ed25519 public key.
func (s *Service) FingerprintIdentity(passphrase string) (domain.Fingerprint, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	return domain.Fingerprint(crypto.Fingerprint(id.EdPub.Slice())), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
