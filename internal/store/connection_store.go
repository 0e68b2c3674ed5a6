package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"didwallet/internal/domain"
)

const (
	connectionsDir = "connections"
	aliasesDir     = "aliases"
	didsDir        = "dids"
)

// ConnectionFileStore keeps two inverse indexes of connections on disk: one
// file per alias holding its DID and one file per DID holding its alias.
type ConnectionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewConnectionFileStore returns a ConnectionFileStore rooted at dir.
func NewConnectionFileStore(dir string) *ConnectionFileStore {
	return &ConnectionFileStore{dir: filepath.Join(dir, connectionsDir)}
}

func (s *ConnectionFileStore) aliasPath(alias domain.Alias) string {
	return filepath.Join(s.dir, aliasesDir, string(alias))
}

func (s *ConnectionFileStore) didPath(did domain.DID) string {
	return filepath.Join(s.dir, didsDir, string(did))
}

// SaveConnection writes both directions of conn. Prior mappings for either
// side are overwritten and their stale inverse entries removed.
func (s *ConnectionFileStore) SaveConnection(conn domain.Connection) (domain.ConnectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validName(string(conn.Alias)) {
		return domain.ConnectResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidAlias, conn.Alias)
	}
	if !validName(string(conn.DID)) || !strings.HasPrefix(string(conn.DID), "did:") {
		return domain.ConnectResult{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedDID, conn.DID)
	}

	oldDID, hadAlias, err := s.lookupDID(conn.Alias)
	if err != nil {
		return domain.ConnectResult{}, err
	}
	oldAlias, hadDID, err := s.lookupAlias(conn.DID)
	if err != nil {
		return domain.ConnectResult{}, err
	}

	// self stays bound to the wallet's own DID.
	switch {
	case hadAlias && conn.Alias == domain.SelfAlias && oldDID != conn.DID:
		return domain.ConnectResult{}, fmt.Errorf("%w: %q is reserved for %s", domain.ErrInvalidAlias, conn.Alias, oldDID)
	case hadDID && oldAlias == domain.SelfAlias && conn.Alias != domain.SelfAlias:
		return domain.ConnectResult{}, fmt.Errorf("%w: %s is the wallet's own DID, known as %q", domain.ErrInvalidAlias, conn.DID, oldAlias)
	}

	res := domain.ConnectResult{
		Connection: conn,
		Paths:      []string{s.aliasPath(conn.Alias), s.didPath(conn.DID)},
	}
	switch {
	case hadAlias && oldDID == conn.DID && hadDID && oldAlias == conn.Alias:
		res.Status = domain.Unchanged
		return res, nil
	case !hadAlias && !hadDID:
		res.Status = domain.Created
	default:
		res.Status = domain.Replaced
		if hadAlias && oldDID != conn.DID {
			res.PreviousDID = oldDID
			if err := removeFile(s.didPath(oldDID)); err != nil {
				return domain.ConnectResult{}, err
			}
		}
		if hadDID && oldAlias != conn.Alias {
			res.PreviousAlias = oldAlias
			if err := removeFile(s.aliasPath(oldAlias)); err != nil {
				return domain.ConnectResult{}, err
			}
		}
	}

	if err := writeFile(s.aliasPath(conn.Alias), []byte(conn.DID), fileMode); err != nil {
		return domain.ConnectResult{}, err
	}
	if err := writeFile(s.didPath(conn.DID), []byte(conn.Alias), fileMode); err != nil {
		return domain.ConnectResult{}, err
	}
	return res, nil
}

// LookupDID returns the DID recorded for alias.
func (s *ConnectionFileStore) LookupDID(alias domain.Alias) (domain.DID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupDID(alias)
}

// LookupAlias returns the alias recorded for did.
func (s *ConnectionFileStore) LookupAlias(did domain.DID) (domain.Alias, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupAlias(did)
}

// ListConnections returns every alias entry sorted by alias.
func (s *ConnectionFileStore) ListConnections() ([]domain.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := listDir(filepath.Join(s.dir, aliasesDir))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	conns := make([]domain.Connection, 0, len(names))
	for _, name := range names {
		did, ok, err := s.lookupDID(domain.Alias(name))
		if err != nil {
			return nil, err
		}
		if ok {
			conns = append(conns, domain.Connection{Alias: domain.Alias(name), DID: did})
		}
	}
	return conns, nil
}

func (s *ConnectionFileStore) lookupDID(alias domain.Alias) (domain.DID, bool, error) {
	if !validName(string(alias)) {
		return "", false, nil
	}
	b, err := readFile(s.aliasPath(alias))
	if err != nil || b == nil {
		return "", false, err
	}
	return domain.DID(strings.TrimSpace(string(b))), true, nil
}

func (s *ConnectionFileStore) lookupAlias(did domain.DID) (domain.Alias, bool, error) {
	if !validName(string(did)) {
		return "", false, nil
	}
	b, err := readFile(s.didPath(did))
	if err != nil || b == nil {
		return "", false, err
	}
	return domain.Alias(strings.TrimSpace(string(b))), true, nil
}

// Compile-time assertion that ConnectionFileStore implements domain.ConnectionStore.
var _ domain.ConnectionStore = (*ConnectionFileStore)(nil)
