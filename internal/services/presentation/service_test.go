package presentation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/domain"
	"didwallet/internal/testutil"
)

func issueTo(t *testing.T, issuer, holder *testutil.Wallet) domain.Credential {
	t.Helper()
	issuer.Connect(t, "holder", holder)
	_, cred, err := issuer.Credentials.Issue(context.Background(), issuer.Self, domain.DriversLicense, "holder")
	require.NoError(t, err)
	return cred
}

func TestPresent(t *testing.T) {
	ctx := context.Background()
	alice, bob, carol := testutil.NewWallet(t), testutil.NewWallet(t), testutil.NewWallet(t)
	cred := issueTo(t, alice, bob)
	bob.Connect(t, "carol", carol)

	env, err := bob.Presentations.Present(ctx, bob.Self, cred, "carol")
	require.NoError(t, err)
	require.Equal(t, []domain.DID{carol.Self.DID}, env.To)

	// Bob's copy is stored before the envelope is returned.
	own, err := bob.Presentations.ListPresentations(bob.Self)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, domain.DriversLicense, own[0].Type)
	require.Equal(t, "self", own[0].HolderAlias)
	require.Equal(t, 1, own[0].Credentials)

	kind, id, err := carol.Messages.Hold(carol.Self, testutil.Marshal(t, env))
	require.NoError(t, err)
	require.Equal(t, domain.KindPresentation, kind)

	vp, err := carol.Presentations.GetPresentation(carol.Self, id)
	require.NoError(t, err)
	require.Equal(t, bob.Self.DID, vp.Holder)
	require.Equal(t, carol.Self.DID.String(), vp.Proof.Domain)
	require.Equal(t, bob.Self.DID, vp.Proof.Signer())
	require.Equal(t, cred.ID, vp.Credentials[0].ID)
}

func TestPresent_Rejects(t *testing.T) {
	ctx := context.Background()
	alice, bob := testutil.NewWallet(t), testutil.NewWallet(t)
	cred := issueTo(t, alice, bob)

	_, err := bob.Presentations.Present(ctx, bob.Self, cred, "carol")
	var unknown *domain.UnknownConnectionError
	require.ErrorAs(t, err, &unknown)

	bad := cred
	bad.Type = []string{domain.VerifiableCredentialType}
	_, err = bob.Presentations.Present(ctx, bob.Self, bad, domain.SelfAlias)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)

	own, err := bob.Presentations.ListPresentations(bob.Self)
	require.NoError(t, err)
	require.Empty(t, own)
}
