package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"didwallet/internal/domain"
)

const (
	// SQLiteFilename is the database file created under the wallet home.
	SQLiteFilename   = "wallet.db"
	maxBusyTimeoutMs = 5000
)

// RecordSQLiteStore keeps envelopes in a single SQLite table keyed by kind and
// message id.
type RecordSQLiteStore struct {
	db   *sql.DB
	file string
}

// NewRecordSQLiteStore opens (creating if needed) the database at path.
func NewRecordSQLiteStore(path string) (*RecordSQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, storageErr("mkdir", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", "file:"+filepath.Clean(path))
	if err != nil {
		return nil, storageErr("open", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, storageErr("ping", path, err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", maxBusyTimeoutMs)); err != nil {
		_ = db.Close()
		return nil, storageErr("set busy timeout", path, err)
	}

	s := &RecordSQLiteStore{db: db, file: path}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *RecordSQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS records (
	kind TEXT NOT NULL,
	id   TEXT NOT NULL,
	body BLOB NOT NULL,
	PRIMARY KEY (kind, id)
)`
	if _, err := s.db.Exec(schema); err != nil {
		return storageErr("create schema", s.file, err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *RecordSQLiteStore) Close() error {
	return s.db.Close()
}

func (s *RecordSQLiteStore) location(kind domain.RecordKind, id domain.MessageID) string {
	return fmt.Sprintf("%s#%s/%s", s.file, kind, id)
}

// PutRecord stores raw under id and returns a locator for it.
func (s *RecordSQLiteStore) PutRecord(kind domain.RecordKind, id domain.MessageID, raw []byte) (string, error) {
	loc := s.location(kind, id)

	existing, err := s.get(kind, id)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if bytes.Equal(existing, raw) {
			return loc, nil
		}
		return "", &domain.RecordConflictError{Kind: kind, ID: id}
	}

	if _, err := s.db.Exec(
		`INSERT INTO records (kind, id, body) VALUES (?, ?, ?)`,
		string(kind), string(id), raw,
	); err != nil {
		return "", storageErr("insert", loc, err)
	}
	return loc, nil
}

// GetRecord returns the bytes stored under id.
func (s *RecordSQLiteStore) GetRecord(kind domain.RecordKind, id domain.MessageID) ([]byte, error) {
	b, err := s.get(kind, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, kind, id)
	}
	return b, nil
}

func (s *RecordSQLiteStore) get(kind domain.RecordKind, id domain.MessageID) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(
		`SELECT body FROM records WHERE kind = ? AND id = ?`,
		string(kind), string(id),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("select", s.location(kind, id), err)
	}
	return body, nil
}

// ListRecords returns the ids stored under kind in ascending order.
func (s *RecordSQLiteStore) ListRecords(kind domain.RecordKind) ([]domain.MessageID, error) {
	rows, err := s.db.Query(`SELECT id FROM records WHERE kind = ? ORDER BY id`, string(kind))
	if err != nil {
		return nil, storageErr("list", s.file, err)
	}
	defer rows.Close()

	var ids []domain.MessageID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scan", s.file, err)
		}
		ids = append(ids, domain.MessageID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", s.file, err)
	}
	return ids, nil
}

// Compile-time assertion that RecordSQLiteStore implements domain.RecordStore.
var _ domain.RecordStore = (*RecordSQLiteStore)(nil)
