package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/domain"
	"didwallet/internal/store"
)

func recordStores(t *testing.T) map[string]domain.RecordStore {
	t.Helper()

	db, err := store.NewRecordSQLiteStore(filepath.Join(t.TempDir(), store.SQLiteFilename))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]domain.RecordStore{
		"file":   store.NewRecordFileStore(t.TempDir()),
		"sqlite": db,
	}
}

func TestRecordStore_PutGetList(t *testing.T) {
	for name, rs := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := rs.PutRecord(domain.KindMessage, "0002", []byte("two"))
			require.NoError(t, err)
			_, err = rs.PutRecord(domain.KindMessage, "0001", []byte("one"))
			require.NoError(t, err)
			_, err = rs.PutRecord(domain.KindCredential, "0003", []byte("three"))
			require.NoError(t, err)

			got, err := rs.GetRecord(domain.KindMessage, "0001")
			require.NoError(t, err)
			require.Equal(t, "one", string(got))

			ids, err := rs.ListRecords(domain.KindMessage)
			require.NoError(t, err)
			require.Equal(t, []domain.MessageID{"0001", "0002"}, ids)

			ids, err = rs.ListRecords(domain.KindPresentation)
			require.NoError(t, err)
			require.Empty(t, ids)

			_, err = rs.GetRecord(domain.KindCredential, "0001")
			require.ErrorIs(t, err, domain.ErrRecordNotFound)
		})
	}
}

func TestRecordStore_NeverOverwritesDistinct(t *testing.T) {
	for name, rs := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			p1, err := rs.PutRecord(domain.KindMessage, "id", []byte("a"))
			require.NoError(t, err)

			p2, err := rs.PutRecord(domain.KindMessage, "id", []byte("a"))
			require.NoError(t, err)
			require.Equal(t, p1, p2)

			_, err = rs.PutRecord(domain.KindMessage, "id", []byte("b"))
			var conflict *domain.RecordConflictError
			require.ErrorAs(t, err, &conflict)

			got, err := rs.GetRecord(domain.KindMessage, "id")
			require.NoError(t, err)
			require.Equal(t, "a", string(got))
		})
	}
}

func TestRecordFileStore_Layout(t *testing.T) {
	home := t.TempDir()
	rs := store.NewRecordFileStore(home)

	path, err := rs.PutRecord(domain.KindPresentation, "abc", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "presentations", "abc.dcem"), path)

	_, err = rs.PutRecord(domain.KindMessage, "../escape", []byte("x"))
	require.Error(t, err)
}
