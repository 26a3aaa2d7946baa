package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/penguins"
)

// Config holds application configuration.
type Config struct {
	Data     DataConfig
	Defaults DefaultsConfig
	Server   ServerConfig
	Log      LogConfig
	UI       UIConfig
	// Keys overrides key bindings per action, e.g. quit = ["ctrl+q"].
	Keys map[string][]string
}

// DataConfig points at an optional CSV replacing the embedded dataset.
type DataConfig struct {
	Path string
}

// DefaultsConfig holds the controls the dashboard starts with.
type DefaultsConfig struct {
	Species   []string
	Islands   []string
	Sexes     []string
	Attribute string
	Bins      int
}

// ServerConfig holds HTTP settings for `serve`.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string
	File  string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title       string
	TableHeight int `mapstructure:"table_height"`
}

// Path returns the config file location: $PENGUINDASH_CONFIG if set,
// otherwise ~/.config/penguindash/config.toml.
func Path() string {
	if p := os.Getenv("PENGUINDASH_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "penguindash", "config.toml")
}

// Load reads configuration from file and env. An explicit path wins over
// Path(). Env var overrides use prefix PENGUINDASH_.
func Load(path string) (Config, error) {
	v := viper.New()

	def := dashboard.DefaultControls()
	v.SetDefault("data.path", "")
	v.SetDefault("defaults.species", def.Species)
	v.SetDefault("defaults.islands", def.Islands)
	v.SetDefault("defaults.sexes", def.Sexes)
	v.SetDefault("defaults.attribute", string(def.Attribute))
	v.SetDefault("defaults.bins", def.Bins)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.title", "Palmer Penguins")
	v.SetDefault("ui.table_height", 8)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("PENGUINDASH_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "penguindash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PENGUINDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine; a named file must exist
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Controls converts the configured defaults into dashboard controls,
// normalized and validated.
func (c Config) Controls() (dashboard.Controls, error) {
	ctl := dashboard.Controls{
		Species:   c.Defaults.Species,
		Islands:   c.Defaults.Islands,
		Sexes:     c.Defaults.Sexes,
		Attribute: penguins.Attribute(c.Defaults.Attribute),
		Bins:      c.Defaults.Bins,
	}.Normalize()
	if err := ctl.Validate(); err != nil {
		return dashboard.Controls{}, fmt.Errorf("config defaults: %w", err)
	}
	return ctl, nil
}

// WithControls returns a copy of c whose defaults are ctl.
func (c Config) WithControls(ctl dashboard.Controls) Config {
	c.Defaults = DefaultsConfig{
		Species:   ctl.Species,
		Islands:   ctl.Islands,
		Sexes:     ctl.Sexes,
		Attribute: string(ctl.Attribute),
		Bins:      ctl.Bins,
	}
	return c
}

// Save writes cfg to path (Path() when empty), creating the directory if
// needed. The TUI uses it to persist the current controls as new defaults.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("data.path", cfg.Data.Path)
	v.Set("defaults.species", cfg.Defaults.Species)
	v.Set("defaults.islands", cfg.Defaults.Islands)
	v.Set("defaults.sexes", cfg.Defaults.Sexes)
	v.Set("defaults.attribute", cfg.Defaults.Attribute)
	v.Set("defaults.bins", cfg.Defaults.Bins)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.read_timeout", cfg.Server.ReadTimeout.String())
	v.Set("server.shutdown_timeout", cfg.Server.ShutdownTimeout.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.table_height", cfg.UI.TableHeight)
	for action, keys := range cfg.Keys {
		v.Set("keys."+action, keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
