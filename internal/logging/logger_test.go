package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTUIWithoutFileIsNop(t *testing.T) {
	t.Parallel()

	l, err := New(Options{TUI: true, Verbose: true})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestLevels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		opts  Options
		debug bool
		warn  bool
	}{
		{Options{}, false, true},
		{Options{Level: "warn"}, false, true},
		{Options{Level: "error"}, false, false},
		{Options{Level: "error", Verbose: true}, true, true},
	}
	for _, tc := range cases {
		l, err := New(tc.opts)
		require.NoError(t, err)
		assert.Equal(t, tc.debug, l.Core().Enabled(zapcore.DebugLevel), "%+v", tc.opts)
		assert.Equal(t, tc.warn, l.Core().Enabled(zapcore.WarnLevel), "%+v", tc.opts)
	}

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "penguindash.log")
	l, err := New(Options{File: path, TUI: true})
	require.NoError(t, err)
	l.Info("filtered view", zap.Int("rows", 8))
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "filtered view", entry["msg"])
	assert.InDelta(t, 8, entry["rows"], 0)
	assert.Contains(t, entry, "ts")
}
