package connection_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/crypto"
	"didwallet/internal/didkey"
	"didwallet/internal/domain"
	"didwallet/internal/services/connection"
	"didwallet/internal/store"
)

func newDID(t *testing.T) domain.DID {
	t.Helper()
	_, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	return didkey.FromPublicKey(pub)
}

func newService(t *testing.T) *connection.Service {
	t.Helper()
	return connection.New(store.NewConnectionFileStore(t.TempDir()), didkey.NewResolver())
}

func TestConnect_Symmetry(t *testing.T) {
	svc := newService(t)
	bob := newDID(t)

	res, err := svc.Connect("bob", bob)
	require.NoError(t, err)
	require.Equal(t, domain.Created, res.Status)
	require.Len(t, res.Paths, 2)

	did, err := svc.ResolveDID("bob")
	require.NoError(t, err)
	require.Equal(t, bob, did)
	require.Equal(t, "bob", svc.ResolveAlias(bob))

	pub, err := svc.Resolve("bob")
	require.NoError(t, err)
	require.Equal(t, bob, pub.DID)

	res, err = svc.Connect("bob", bob)
	require.NoError(t, err)
	require.Equal(t, domain.Unchanged, res.Status)
}

func TestConnect_LastWriteWins(t *testing.T) {
	svc := newService(t)
	bob, bob2 := newDID(t), newDID(t)

	_, err := svc.Connect("bob", bob)
	require.NoError(t, err)

	res, err := svc.Connect("bob", bob2)
	require.NoError(t, err)
	require.Equal(t, domain.Replaced, res.Status)
	require.Equal(t, bob, res.PreviousDID)

	// The old DID no longer maps back to bob.
	require.Equal(t, bob.String(), svc.ResolveAlias(bob))
	require.Equal(t, "bob", svc.ResolveAlias(bob2))

	res, err = svc.Connect("robert", bob2)
	require.NoError(t, err)
	require.Equal(t, domain.Replaced, res.Status)
	require.Equal(t, domain.Alias("bob"), res.PreviousAlias)

	_, err = svc.ResolveDID("bob")
	var unknown *domain.UnknownConnectionError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, domain.Alias("bob"), unknown.Alias)

	conns, err := svc.ListConnections()
	require.NoError(t, err)
	require.Equal(t, []domain.Connection{{Alias: "robert", DID: bob2}}, conns)
}

func TestConnect_Rejects(t *testing.T) {
	svc := newService(t)

	_, err := svc.Connect("web", "did:web:example.com")
	require.ErrorIs(t, err, domain.ErrUnsupportedDID)

	_, err = svc.Connect("../escape", newDID(t))
	require.ErrorIs(t, err, domain.ErrInvalidAlias)
}
