package connection

import (
	"didwallet/internal/domain"
	"didwallet/internal/log"
)

var logger = log.New("connection")

// Service records and resolves connections. Every call reads the index from
// the store; nothing is cached.
type Service struct {
	store    domain.ConnectionStore
	resolver domain.Resolver
}

// New returns a connection service over store, using resolver to check DIDs.
func New(store domain.ConnectionStore, resolver domain.Resolver) *Service {
	return &Service{store: store, resolver: resolver}
}

// Connect maps alias to did in both directions. Existing mappings for either
// side are replaced.
func (s *Service) Connect(alias domain.Alias, did domain.DID) (domain.ConnectResult, error) {
	pub, err := s.resolver.Resolve(did)
	if err != nil {
		return domain.ConnectResult{}, err
	}
	res, err := s.store.SaveConnection(domain.Connection{Alias: alias, DID: pub.DID})
	if err != nil {
		return domain.ConnectResult{}, err
	}

	if res.Status == domain.Replaced {
		logger.Info("connection replaced",
			log.WithAlias(alias.String()),
			log.WithDID(pub.DID.String()),
			log.WithStatus(res.Status.String()),
		)
	}
	return res, nil
}

// ResolveDID returns the DID recorded for alias.
func (s *Service) ResolveDID(alias domain.Alias) (domain.DID, error) {
	did, ok, err := s.store.LookupDID(alias)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &domain.UnknownConnectionError{Alias: alias}
	}
	return did, nil
}

// ResolveAlias returns the alias recorded for did, or did itself.
func (s *Service) ResolveAlias(did domain.DID) string {
	alias, ok, err := s.store.LookupAlias(did)
	if err != nil || !ok {
		return did.String()
	}
	return alias.String()
}

// Resolve returns the public keys of the peer named alias.
func (s *Service) Resolve(alias domain.Alias) (domain.PublicIdentity, error) {
	did, err := s.ResolveDID(alias)
	if err != nil {
		return domain.PublicIdentity{}, err
	}
	return s.resolver.Resolve(did)
}

// ListConnections returns all connections sorted by alias.
func (s *Service) ListConnections() ([]domain.Connection, error) {
	return s.store.ListConnections()
}

// Compile-time assertion that Service implements domain.ConnectionService.
var _ domain.ConnectionService = (*Service)(nil)
