package app

import (
	"errors"
	"io"
	"path/filepath"

	"didwallet/internal/didkey"
	"didwallet/internal/domain"
	"didwallet/internal/protocol/envelope"
	"didwallet/internal/protocol/proof"
	connectionsvc "didwallet/internal/services/connection"
	credentialsvc "didwallet/internal/services/credential"
	identitysvc "didwallet/internal/services/identity"
	messagesvc "didwallet/internal/services/message"
	"didwallet/internal/services/outbox"
	presentationsvc "didwallet/internal/services/presentation"
	verifiersvc "didwallet/internal/services/verifier"
	"didwallet/internal/store"
)

// Wire bundles all stores and services for the CLI.
type Wire struct {
	Identity      domain.IdentityService
	Connections   domain.ConnectionService
	Messages      domain.MessageService
	Credentials   domain.CredentialService
	Presentations domain.PresentationService
	Verifier      domain.VerifierService

	Codec   domain.EnvelopeCodec
	Records domain.RecordStore

	closers []io.Closer
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Wire{}

	// Stores
	identityStore := store.NewIdentityFileStore(cfg.Home)
	connectionStore := store.NewConnectionFileStore(cfg.Home)
	switch cfg.Store {
	case StoreSQLite:
		db, err := store.NewRecordSQLiteStore(filepath.Join(cfg.Home, store.SQLiteFilename))
		if err != nil {
			return nil, err
		}
		w.Records = db
		w.closers = append(w.closers, db)
	default:
		w.Records = store.NewRecordFileStore(cfg.Home)
	}

	// Protocol
	resolver := didkey.NewResolver()
	w.Codec = envelope.New(resolver)
	suite := proof.New(resolver)
	out := outbox.New(w.Codec, w.Records, cfg.TTL)

	// High-level services
	conns := connectionsvc.New(connectionStore, resolver)
	w.Identity = identitysvc.New(identityStore, connectionStore)
	w.Connections = conns
	w.Messages = messagesvc.New(w.Codec, conns, w.Records, out)
	w.Credentials = credentialsvc.New(w.Codec, resolver, suite, conns, w.Records, out)
	w.Presentations = presentationsvc.New(w.Codec, resolver, suite, conns, w.Records, out)
	w.Verifier = verifiersvc.New(w.Codec, suite, conns, w.Records)

	return w, nil
}

// Close releases the stores that hold open handles.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c.Close())
	}
	w.closers = nil
	return errors.Join(errs...)
}
