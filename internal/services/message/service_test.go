package message_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/domain"
	"didwallet/internal/services/message"
	"didwallet/internal/testutil"
)

func TestWrite_ReadByPeerOnly(t *testing.T) {
	alice, bob, carol := testutil.NewWallet(t), testutil.NewWallet(t), testutil.NewWallet(t)
	alice.Connect(t, "bob", bob)

	env, err := alice.Messages.Write(alice.Self, "bob", []byte("hi bob"))
	require.NoError(t, err)
	raw := testutil.Marshal(t, env)

	opened, err := bob.Messages.Read(bob.Self, raw)
	require.NoError(t, err)
	require.Equal(t, "hi bob", string(opened.Plaintext))
	require.Equal(t, alice.Self.DID, opened.Header.From)

	for _, other := range []*testutil.Wallet{alice, carol} {
		_, err = other.Messages.Read(other.Self, raw)
		var decErr *domain.DecryptionError
		require.True(t, errors.As(err, &decErr))
	}
}

func TestWrite_KeepsOwnCopy(t *testing.T) {
	alice, bob := testutil.NewWallet(t), testutil.NewWallet(t)
	alice.Connect(t, "bob", bob)

	env, err := alice.Messages.Write(alice.Self, "bob", []byte("hi bob"))
	require.NoError(t, err)

	list, err := alice.Messages.ListMessages()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotEqual(t, env.ID, list[0].ID)
	require.Equal(t, "self", list[0].FromAlias)
	require.Equal(t, len("hi bob"), list[0].Length)

	raw, err := alice.Messages.GetMessage(list[0].ID)
	require.NoError(t, err)
	opened, err := alice.Messages.Read(alice.Self, raw)
	require.NoError(t, err)
	require.Equal(t, "hi bob", string(opened.Plaintext))
}

func TestWrite_ToSelfIsSingleEnvelope(t *testing.T) {
	alice := testutil.NewWallet(t)

	env, err := alice.Messages.Write(alice.Self, domain.SelfAlias, []byte("note"))
	require.NoError(t, err)

	list, err := alice.Messages.ListMessages()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, env.ID, list[0].ID)
}

func TestWrite_UnknownAlias(t *testing.T) {
	alice := testutil.NewWallet(t)

	_, err := alice.Messages.Write(alice.Self, "nobody", []byte("x"))
	var unknown *domain.UnknownConnectionError
	require.True(t, errors.As(err, &unknown))
}

func TestHold(t *testing.T) {
	alice, bob := testutil.NewWallet(t), testutil.NewWallet(t)
	alice.Connect(t, "bob", bob)
	bob.Connect(t, "alice", alice)

	env, err := alice.Messages.Write(alice.Self, "bob", []byte("keep me"))
	require.NoError(t, err)
	raw := testutil.Marshal(t, env)

	kind, id, err := bob.Messages.Hold(bob.Self, raw)
	require.NoError(t, err)
	require.Equal(t, domain.KindMessage, kind)
	require.Equal(t, env.ID, id)

	// Holding the same envelope again is a no-op.
	_, _, err = bob.Messages.Hold(bob.Self, raw)
	require.NoError(t, err)

	list, err := bob.Messages.ListMessages()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "alice", list[0].FromAlias)
	require.Equal(t, "self", list[0].ToAlias)

	stored, err := bob.Messages.GetMessage(id)
	require.NoError(t, err)
	require.Equal(t, raw, stored)

	// Envelopes not addressed to the holder are rejected and not stored.
	_, _, err = alice.Messages.Hold(alice.Self, raw)
	var decErr *domain.DecryptionError
	require.True(t, errors.As(err, &decErr))
}

func TestGetMessage_NotFound(t *testing.T) {
	alice := testutil.NewWallet(t)

	_, err := alice.Messages.GetMessage("missing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestClassify(t *testing.T) {
	cases := map[string]domain.RecordKind{
		`hello`:                                               domain.KindMessage,
		`{"type":"Note"}`:                                     domain.KindMessage,
		`{"type":["VerifiableCredential","Passport"]}`:        domain.KindCredential,
		`{"type":["VerifiablePresentation","Passport"]}`:      domain.KindPresentation,
		`{"type":"VerifiableCredential"}`:                     domain.KindCredential,
		`{"credentialSubject":{"type":"VerifiableCredential"}}`: domain.KindMessage,
	}
	for body, want := range cases {
		require.Equal(t, want, message.Classify([]byte(body)), body)
	}
}
