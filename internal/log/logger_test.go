package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type mockWriter struct {
	*bytes.Buffer
}

func (m *mockWriter) Sync() error {
	return nil
}

func newMockWriter() *mockWriter {
	return &mockWriter{Buffer: bytes.NewBuffer(nil)}
}

func withOutput(stdOut, stdErr zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.stdOut = stdOut
		o.stdErr = stdErr
	}
}

func TestLogger(t *testing.T) {
	t.Run("Default level", func(t *testing.T) {
		const module = "default-module"

		stdOut := newMockWriter()
		stdErr := newMockWriter()

		logger := New(module, withOutput(stdOut, stdErr))

		logger.Debug("Sample debug log")
		logger.Info("Sample info log")
		logger.Warn("Sample warn log")
		logger.Error("Sample error log")

		require.NotContains(t, stdOut.String(), "DEBUG")
		require.NotContains(t, stdOut.String(), "INFO")
		require.Contains(t, stdOut.String(), "WARN")
		require.Contains(t, stdErr.String(), "ERROR")
		require.NotContains(t, stdErr.String(), "WARN")
	})

	t.Run("DEBUG", func(t *testing.T) {
		const module = "debug-module"

		require.NoError(t, SetSpec(module+"=debug"))
		require.Equal(t, DEBUG, GetLevel(module))

		stdOut := newMockWriter()
		stdErr := newMockWriter()

		logger := New(module, withOutput(stdOut, stdErr))
		require.True(t, logger.IsEnabled(DEBUG))
		require.False(t, New("other-module").IsEnabled(DEBUG))

		logger.Debug("Sample debug log")
		logger.Info("Sample info log")

		require.Contains(t, stdOut.String(), "DEBUG")
		require.Contains(t, stdOut.String(), "INFO")
		require.Contains(t, stdOut.String(), "[debug-module]")
	})

	t.Run("JSON encoding with fields", func(t *testing.T) {
		const module = "json-module"

		require.NoError(t, SetSpec(module+"=info"))
		SetDefaultEncoding(JSON)
		t.Cleanup(func() { SetDefaultEncoding(Console) })

		stdOut := newMockWriter()

		logger := New(module, withOutput(stdOut, newMockWriter()),
			WithFields(WithDID("did:key:z6Mk")))

		logger.Info("opened", WithMessageID("m-1"), WithSecurityEvent(), WithError(errors.New("boom")))

		out := stdOut.String()
		require.Contains(t, out, `"level":"info"`)
		require.Contains(t, out, `"did":"did:key:z6Mk"`)
		require.Contains(t, out, `"messageID":"m-1"`)
		require.Contains(t, out, `"security":true`)
		require.Contains(t, out, `"error":"boom"`)
	})
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": DEBUG, "INFO": INFO, "warn": WARNING, "Warning": WARNING,
		"error": ERROR, "panic": PANIC, "fatal": FATAL,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestSetSpec(t *testing.T) {
	require.NoError(t, SetSpec("spec-a=debug:spec-b=error:info"))
	require.Equal(t, DEBUG, GetLevel("spec-a"))
	require.Equal(t, ERROR, GetLevel("spec-b"))
	require.Equal(t, INFO, GetLevel("unset-module"))

	require.Error(t, SetSpec("info:debug"))
	require.Error(t, SetSpec("spec-a=loud"))

	require.NoError(t, SetSpec("spec-a=error"))
	require.Equal(t, WARNING, GetLevel("unset-module"))
}

func TestSetDefaultEncoding_AppliesToExistingLoggers(t *testing.T) {
	const module = "encoding-module"

	require.NoError(t, SetSpec(module+"=info"))
	t.Cleanup(func() { SetDefaultEncoding(Console) })

	stdOut := newMockWriter()
	logger := New(module, withOutput(stdOut, newMockWriter()))

	logger.Info("before")
	require.Contains(t, stdOut.String(), "[encoding-module]")

	stdOut.Reset()
	SetDefaultEncoding("JSON")
	require.Equal(t, JSON, GetDefaultEncoding())

	logger.Info("after")
	require.Contains(t, stdOut.String(), `"msg":"after"`)
	require.NotContains(t, stdOut.String(), "[encoding-module]")
}
