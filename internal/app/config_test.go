package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"didwallet/internal/app"
	"didwallet/internal/log"
)

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFilename), []byte(body), 0o600))
}

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := app.LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, app.DefaultConfig(home), cfg)
	require.Equal(t, time.Hour, cfg.TTL)
	require.Equal(t, app.StoreFile, cfg.Store)

	writeConfig(t, home, "")
	cfg, err = app.LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, app.DefaultConfig(home), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "ttl: 90s\nstore: sqlite\nlog_level: envelope=debug:error\nlog_encoding: json\n")

	cfg, err := app.LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, home, cfg.Home)
	require.Equal(t, 90*time.Second, cfg.TTL)
	require.Equal(t, app.StoreSQLite, cfg.Store)
	require.Equal(t, log.JSON, cfg.LogEncoding)

	t.Cleanup(func() {
		log.SetDefaultEncoding(log.Console)
		require.NoError(t, log.SetSpec("warning"))
	})
	t.Setenv(app.LogLevelEnv, "")
	require.NoError(t, cfg.ConfigureLogging(""))
	require.Equal(t, log.DEBUG, log.GetLevel("envelope"))
	require.Equal(t, log.ERROR, log.GetLevel("store"))
	require.Equal(t, log.JSON, log.GetDefaultEncoding())

	// A flag value wins over the file.
	require.NoError(t, cfg.ConfigureLogging("info"))
	require.Equal(t, log.INFO, log.GetLevel("store"))
}

func TestLoadConfig_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"unknown key":   "colour: blue\n",
		"bad store":     "store: mongo\n",
		"bad ttl":       "ttl: soon\n",
		"negative ttl":  "ttl: -1m\n",
		"bad encoding":  "log_encoding: xml\n",
		"not a mapping": "- a\n- b\n",
	} {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, body)
			_, err := app.LoadConfig(home)
			require.Error(t, err)
		})
	}
}

func TestResolveHome(t *testing.T) {
	t.Setenv(app.HomeEnv, "")
	require.Equal(t, app.DefaultHome, app.ResolveHome(""))
	require.Equal(t, "/tmp/w", app.ResolveHome("/tmp/w"))

	t.Setenv(app.HomeEnv, "/tmp/env")
	require.Equal(t, "/tmp/env", app.ResolveHome(""))
	require.Equal(t, "/tmp/w", app.ResolveHome("/tmp/w"))
}

func TestNewWire_SQLite(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	cfg.Store = app.StoreSQLite

	w, err := app.NewWire(cfg)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(cfg.Home, "wallet.db"))
	require.NoError(t, err)
}
