package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/domain"
	"didwallet/internal/store"
)

const (
	didA domain.DID = "did:key:z6MkA"
	didB domain.DID = "did:key:z6MkB"
)

func TestConnection_SaveLookup_Symmetric(t *testing.T) {
	var cs domain.ConnectionStore = store.NewConnectionFileStore(t.TempDir())

	res, err := cs.SaveConnection(domain.Connection{Alias: "alice", DID: didA})
	require.NoError(t, err)
	require.Equal(t, domain.Created, res.Status)
	require.Len(t, res.Paths, 2)

	did, ok, err := cs.LookupDID("alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, didA, did)

	alias, ok, err := cs.LookupAlias(didA)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.Alias("alice"), alias)

	res, err = cs.SaveConnection(domain.Connection{Alias: "alice", DID: didA})
	require.NoError(t, err)
	require.Equal(t, domain.Unchanged, res.Status)
}

func TestConnection_LastWriteWins(t *testing.T) {
	cs := store.NewConnectionFileStore(t.TempDir())

	_, err := cs.SaveConnection(domain.Connection{Alias: "alice", DID: didA})
	require.NoError(t, err)

	t.Run("alias re-pointed", func(t *testing.T) {
		res, err := cs.SaveConnection(domain.Connection{Alias: "alice", DID: didB})
		require.NoError(t, err)
		require.Equal(t, domain.Replaced, res.Status)
		require.Equal(t, didA, res.PreviousDID)

		_, ok, err := cs.LookupAlias(didA)
		require.NoError(t, err)
		require.False(t, ok, "stale inverse entry must be removed")
	})

	t.Run("DID renamed", func(t *testing.T) {
		res, err := cs.SaveConnection(domain.Connection{Alias: "al", DID: didB})
		require.NoError(t, err)
		require.Equal(t, domain.Replaced, res.Status)
		require.Equal(t, domain.Alias("alice"), res.PreviousAlias)

		_, ok, err := cs.LookupDID("alice")
		require.NoError(t, err)
		require.False(t, ok)

		conns, err := cs.ListConnections()
		require.NoError(t, err)
		require.Equal(t, []domain.Connection{{Alias: "al", DID: didB}}, conns)
	})
}

func TestConnection_RejectsBadNames(t *testing.T) {
	cs := store.NewConnectionFileStore(t.TempDir())

	for _, alias := range []domain.Alias{"", ".", "..", "a/b", ".hidden"} {
		_, err := cs.SaveConnection(domain.Connection{Alias: alias, DID: didA})
		require.ErrorIs(t, err, domain.ErrInvalidAlias, "alias %q", alias)
	}

	_, err := cs.SaveConnection(domain.Connection{Alias: "x", DID: "not-a-did"})
	require.ErrorIs(t, err, domain.ErrUnsupportedDID)
}

func TestConnection_ListSorted(t *testing.T) {
	cs := store.NewConnectionFileStore(t.TempDir())
	_, err := cs.SaveConnection(domain.Connection{Alias: "zed", DID: didA})
	require.NoError(t, err)
	_, err = cs.SaveConnection(domain.Connection{Alias: "amy", DID: didB})
	require.NoError(t, err)

	conns, err := cs.ListConnections()
	require.NoError(t, err)
	require.Equal(t, []domain.Connection{{Alias: "amy", DID: didB}, {Alias: "zed", DID: didA}}, conns)
}

func TestConnection_SelfStaysBound(t *testing.T) {
	cs := store.NewConnectionFileStore(t.TempDir())
	_, err := cs.SaveConnection(domain.Connection{Alias: domain.SelfAlias, DID: didA})
	require.NoError(t, err)

	_, err = cs.SaveConnection(domain.Connection{Alias: "me", DID: didA})
	require.ErrorIs(t, err, domain.ErrInvalidAlias)
	_, err = cs.SaveConnection(domain.Connection{Alias: domain.SelfAlias, DID: didB})
	require.ErrorIs(t, err, domain.ErrInvalidAlias)

	did, ok, err := cs.LookupDID(domain.SelfAlias)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, didA, did)
	_, ok, err = cs.LookupDID("me")
	require.NoError(t, err)
	require.False(t, ok)

	res, err := cs.SaveConnection(domain.Connection{Alias: domain.SelfAlias, DID: didA})
	require.NoError(t, err)
	require.Equal(t, domain.Unchanged, res.Status)
}
