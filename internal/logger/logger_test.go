package logger

import (
	"bytes"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logging.LogLevel{
		"":        logging.LogLevelInfo,
		"info":    logging.LogLevelInfo,
		"DEBUG":   logging.LogLevelDebug,
		" warn ":  logging.LogLevelWarn,
		"warning": logging.LogLevelWarn,
		"error":   logging.LogLevelError,
		"trace":   logging.LogLevelTrace,
		"off":     logging.LogLevelDisabled,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFactory_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFactory(&buf, "warn")
	require.NoError(t, err)

	log := f.NewLogger(ScopeRunner)
	log.Info("hidden")
	log.Warnf("visible %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible 1")
	assert.Contains(t, out, ScopeRunner)
}

func TestNewFactory_BadLevel(t *testing.T) {
	_, err := NewFactory(&bytes.Buffer{}, "chatty")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	log := Discard().NewLogger(ScopeFixture)
	log.Error("dropped")
}
