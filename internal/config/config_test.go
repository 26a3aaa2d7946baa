package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/penguins"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PENGUINDASH_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8, cfg.UI.TableHeight)

	ctl, err := cfg.Controls()
	require.NoError(t, err)
	assert.Equal(t, dashboard.DefaultControls(), ctl)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	body := `
[defaults]
species = ["Gentoo", "Adelie"]
attribute = "flipper_length_mm"
bins = 15

[server]
read_timeout = "2s"

[ui]
table_height = 12
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("PENGUINDASH_SERVER_ADDR", "127.0.0.1:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 12, cfg.UI.TableHeight)

	ctl, err := cfg.Controls()
	require.NoError(t, err)
	assert.Equal(t, []string{"Adelie", "Gentoo"}, ctl.Species)
	assert.Equal(t, []string{"Biscoe"}, ctl.Islands)
	assert.Equal(t, penguins.FlipperLength, ctl.Attribute)
	assert.Equal(t, 15, ctl.Bins)
}

func TestControlsRejectsOutOfRangeBins(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bins.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nbins = 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	_, err = cfg.Controls()
	require.ErrorIs(t, err, dashboard.ErrBinsOutOfRange)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestControlsRejectsBadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Defaults.Islands = []string{"Dreem"}

	_, err = cfg.Controls()
	require.ErrorIs(t, err, dashboard.ErrUnknownValue)
	assert.Contains(t, err.Error(), `did you mean "Dream"`)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.toml")

	cfg, err := Load("")
	require.NoError(t, err)
	cfg = cfg.WithControls(dashboard.Controls{
		Species:   []string{"Gentoo"},
		Islands:   []string{"Biscoe"},
		Sexes:     []string{"male", "female"},
		Attribute: penguins.BodyMass,
		Bins:      4,
	})
	cfg.Keys = map[string][]string{"quit": {"ctrl+q"}}
	cfg.UI.Title = "Field Station"
	cfg.Server.ShutdownTimeout = 3 * time.Second
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	ctl, err := got.Controls()
	require.NoError(t, err)
	assert.Equal(t, penguins.BodyMass, ctl.Attribute)
}
