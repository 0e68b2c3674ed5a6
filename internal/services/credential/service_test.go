package credential_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/didkey"
	"didwallet/internal/domain"
	"didwallet/internal/protocol/proof"
	"didwallet/internal/testutil"
)

func TestIssue(t *testing.T) {
	ctx := context.Background()
	alice, bob := testutil.NewWallet(t), testutil.NewWallet(t)
	alice.Connect(t, "bob", bob)
	bob.Connect(t, "alice", alice)

	env, cred, err := alice.Credentials.Issue(ctx, alice.Self, domain.Passport, "bob")
	require.NoError(t, err)
	require.Equal(t, []string{domain.VerifiableCredentialType, "Passport"}, cred.Type)
	require.Equal(t, alice.Self.DID, cred.Issuer)
	require.Equal(t, bob.Self.DID, cred.Subject.ID)
	require.Contains(t, cred.ID, "urn:uuid:")
	require.NotNil(t, cred.Proof)
	require.Equal(t, alice.Self.DID, cred.Proof.Signer())
	require.NoError(t, proof.New(didkey.NewResolver()).Verify(ctx, cred, *cred.Proof))

	kind, id, err := bob.Messages.Hold(bob.Self, testutil.Marshal(t, env))
	require.NoError(t, err)
	require.Equal(t, domain.KindCredential, kind)

	held, err := bob.Credentials.GetCredential(bob.Self, id)
	require.NoError(t, err)
	require.Equal(t, cred.ID, held.ID)

	list, err := bob.Credentials.ListCredentials(bob.Self)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, id, list[0].ID)
	require.Equal(t, "alice", list[0].IssuerAlias)
	require.Equal(t, "self", list[0].SubjectAlias)
	require.Equal(t, domain.Passport, list[0].Type)

	// The issuer keeps its own copy.
	own, err := alice.Credentials.ListCredentials(alice.Self)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.NotEqual(t, env.ID, own[0].ID)
	require.Equal(t, cred.ID, own[0].CredentialID)
	require.Equal(t, "bob", own[0].SubjectAlias)
}

func TestIssue_Rejects(t *testing.T) {
	ctx := context.Background()
	alice, bob := testutil.NewWallet(t), testutil.NewWallet(t)
	alice.Connect(t, "bob", bob)

	_, _, err := alice.Credentials.Issue(ctx, alice.Self, "Visa", "bob")
	require.ErrorIs(t, err, domain.ErrUnknownCredentialType)

	_, _, err = alice.Credentials.Issue(ctx, alice.Self, domain.Passport, "carol")
	var unknown *domain.UnknownConnectionError
	require.ErrorAs(t, err, &unknown)

	list, err := alice.Credentials.ListCredentials(alice.Self)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestGetCredential_NotFound(t *testing.T) {
	alice := testutil.NewWallet(t)

	_, err := alice.Credentials.GetCredential(alice.Self, "missing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}
