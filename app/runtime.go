package app

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/penguindash/internal/config"
	"github.com/jask/penguindash/internal/dashboard"
)

// Runtime is the state shared by every tab, pane and command of one TUI
// session.
type Runtime struct {
	Dashboard  *dashboard.Dashboard
	Defaults   dashboard.Controls
	Config     config.Config
	ConfigPath string
	// ExportDir is where export-csv writes; empty means the working directory.
	ExportDir string
	Log       *zap.Logger
}

func NewRuntime(d *dashboard.Dashboard, cfg config.Config, configPath string, log *zap.Logger) (*Runtime, error) {
	if d == nil {
		return nil, errors.New("app: nil dashboard")
	}
	defaults, err := cfg.Controls()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{Dashboard: d, Defaults: defaults, Config: cfg, ConfigPath: configPath, Log: log}, nil
}

func (rt *Runtime) title() string {
	if t := strings.TrimSpace(rt.Config.UI.Title); t != "" {
		return t
	}
	return "Palmer Penguins"
}

func (rt *Runtime) tableHeight() int {
	return max(4, rt.Config.UI.TableHeight)
}
