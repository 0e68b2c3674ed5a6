// Package testutil builds complete throwaway wallets for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"didwallet/internal/app"
	"didwallet/internal/domain"
	"didwallet/internal/protocol/envelope"
)

// Wallet is a wired wallet in a temporary home with its identity created.
type Wallet struct {
	*app.Wire
	Home string
	Self domain.Identity
}

// NewWallet creates a wallet in t.TempDir(). mutate may adjust the config
// before wiring.
func NewWallet(t testing.TB, mutate ...func(*app.Config)) *Wallet {
	t.Helper()

	home := t.TempDir()
	cfg := app.DefaultConfig(home)
	for _, m := range mutate {
		m(&cfg)
	}
	w, err := app.NewWire(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	self, created, err := w.Identity.EnsureIdentity(cfg.Passphrase)
	require.NoError(t, err)
	require.True(t, created)

	return &Wallet{Wire: w, Home: home, Self: self}
}

// Connect records other under alias.
func (w *Wallet) Connect(t testing.TB, alias domain.Alias, other *Wallet) {
	t.Helper()
	_, err := w.Connections.Connect(alias, other.Self.DID)
	require.NoError(t, err)
}

// Marshal encodes env as a dcem token.
func Marshal(t testing.TB, env domain.Envelope) []byte {
	t.Helper()
	raw, err := envelope.Marshal(env)
	require.NoError(t, err)
	return raw
}
