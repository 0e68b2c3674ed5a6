package identity_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/domain"
	"didwallet/internal/services/identity"
	"didwallet/internal/store"
)

func newService(t *testing.T, home string) (*identity.Service, *store.ConnectionFileStore) {
	t.Helper()
	conns := store.NewConnectionFileStore(home)
	return identity.New(store.NewIdentityFileStore(home), conns), conns
}

func TestEnsureIdentity_Idempotent(t *testing.T) {
	home := t.TempDir()
	svc, conns := newService(t, home)

	first, created, err := svc.EnsureIdentity("")
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, strings.HasPrefix(first.DID.String(), "did:key:z6Mk"))

	second, created, err := svc.EnsureIdentity("")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first, second)

	did, ok, err := conns.LookupDID(domain.SelfAlias)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first.DID, did)
}

func TestEnsureIdentity_RestoresSelf(t *testing.T) {
	svc, conns := newService(t, t.TempDir())

	id, _, err := svc.EnsureIdentity("")
	require.NoError(t, err)

	res, err := conns.SaveConnection(domain.Connection{Alias: domain.SelfAlias, DID: id.DID})
	require.NoError(t, err)
	for _, path := range res.Paths {
		require.NoError(t, os.Remove(path))
	}
	_, ok, err := conns.LookupDID(domain.SelfAlias)
	require.NoError(t, err)
	require.False(t, ok)

	_, created, err := svc.EnsureIdentity("")
	require.NoError(t, err)
	require.False(t, created)

	did, ok, err := conns.LookupDID(domain.SelfAlias)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, id.DID, did)
	alias, ok, err := conns.LookupAlias(id.DID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.SelfAlias, alias)
}

func TestEnsureIdentity_Passphrase(t *testing.T) {
	svc, _ := newService(t, t.TempDir())

	_, _, err := svc.EnsureIdentity("short")
	require.ErrorIs(t, err, identity.ErrWeakPassphrase)

	const pass = "Tr0ub4dor&3-horse"
	id, created, err := svc.EnsureIdentity(pass)
	require.NoError(t, err)
	require.True(t, created)

	_, err = svc.LoadIdentity("")
	require.ErrorIs(t, err, domain.ErrPassphraseRequired)

	got, err := svc.LoadIdentity(pass)
	require.NoError(t, err)
	require.Equal(t, id.DID, got.DID)
}

func TestMnemonic_Recover(t *testing.T) {
	svc, _ := newService(t, t.TempDir())
	id, _, err := svc.EnsureIdentity("")
	require.NoError(t, err)

	words, err := svc.Mnemonic("")
	require.NoError(t, err)
	require.Len(t, strings.Fields(words), 24)

	// Same mnemonic into the same wallet is a no-op.
	again, created, err := svc.RecoverIdentity("", words)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, id.DID, again.DID)

	// Into a fresh wallet it restores the same DID.
	fresh, conns := newService(t, t.TempDir())
	restored, created, err := fresh.RecoverIdentity("", words)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, id, restored)
	did, ok, err := conns.LookupDID(domain.SelfAlias)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, id.DID, did)
}

func TestRecover_Rejects(t *testing.T) {
	svc, _ := newService(t, t.TempDir())

	_, _, err := svc.RecoverIdentity("", "not a mnemonic")
	require.ErrorIs(t, err, identity.ErrInvalidMnemonic)

	other, _ := newService(t, t.TempDir())
	_, _, err = other.EnsureIdentity("")
	require.NoError(t, err)
	words, err := other.Mnemonic("")
	require.NoError(t, err)

	_, _, err = svc.EnsureIdentity("")
	require.NoError(t, err)
	_, _, err = svc.RecoverIdentity("", words)
	require.ErrorIs(t, err, domain.ErrIdentityExists)
}

func TestSelfDocument(t *testing.T) {
	svc, _ := newService(t, t.TempDir())

	_, err := svc.SelfDocument("")
	require.ErrorIs(t, err, domain.ErrIdentityNotFound)

	id, _, err := svc.EnsureIdentity("")
	require.NoError(t, err)

	doc, err := svc.SelfDocument("")
	require.NoError(t, err)
	require.Equal(t, id.DID, doc.ID)
	require.Len(t, doc.AssertionMethod, 1)
	require.Len(t, doc.KeyAgreement, 1)

	fp, err := svc.FingerprintIdentity("")
	require.NoError(t, err)
	require.Len(t, fp.String(), 20)
}
