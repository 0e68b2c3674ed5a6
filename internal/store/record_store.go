package store

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"didwallet/internal/domain"
)

const recordExt = ".dcem"

// RecordFileStore keeps envelopes as <dir>/<kind>/<message id>.dcem.
type RecordFileStore struct {
	dir string
}

// NewRecordFileStore returns a RecordFileStore rooted at dir.
func NewRecordFileStore(dir string) *RecordFileStore {
	return &RecordFileStore{dir: dir}
}

func (s *RecordFileStore) path(kind domain.RecordKind, id domain.MessageID) string {
	return filepath.Join(s.dir, string(kind), string(id)+recordExt)
}

// PutRecord stores raw under id and returns the file path.
func (s *RecordFileStore) PutRecord(kind domain.RecordKind, id domain.MessageID, raw []byte) (string, error) {
	if !validName(string(id)) {
		return "", fmt.Errorf("invalid message id %q", id)
	}
	path := s.path(kind, id)

	existing, err := readFile(path)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if bytes.Equal(existing, raw) {
			return path, nil
		}
		return "", &domain.RecordConflictError{Kind: kind, ID: id}
	}
	if err := writeFile(path, raw, fileMode); err != nil {
		return "", err
	}
	return path, nil
}

// GetRecord returns the bytes stored under id.
func (s *RecordFileStore) GetRecord(kind domain.RecordKind, id domain.MessageID) ([]byte, error) {
	if !validName(string(id)) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, kind, id)
	}
	b, err := readFile(s.path(kind, id))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, kind, id)
	}
	return b, nil
}

// ListRecords returns the ids stored under kind in ascending order.
func (s *RecordFileStore) ListRecords(kind domain.RecordKind) ([]domain.MessageID, error) {
	names, err := listDir(filepath.Join(s.dir, string(kind)))
	if err != nil {
		return nil, err
	}
	ids := make([]domain.MessageID, 0, len(names))
	for _, name := range names {
		if id, ok := strings.CutSuffix(name, recordExt); ok {
			ids = append(ids, domain.MessageID(id))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Compile-time assertion that RecordFileStore implements domain.RecordStore.
var _ domain.RecordStore = (*RecordFileStore)(nil)
