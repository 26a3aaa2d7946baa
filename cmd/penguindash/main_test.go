package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[defaults]\nbins = 6\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", cfg))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestExportCSV(t *testing.T) {
	out := run(t, "export", "--format", "csv", "--island", "Torgersen", "--sex", "female,male")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "Adelie,Torgersen,"), line)
	}
}

func TestExportUsesConfigDefaults(t *testing.T) {
	out := run(t, "export", "--format", "yaml")
	assert.Contains(t, out, "bins: 6")
}

func TestGraphPrintsMermaid(t *testing.T) {
	out := run(t, "graph")
	assert.True(t, strings.HasPrefix(out, "graph LR"))
	assert.Contains(t, out, "render:scatter")
}
