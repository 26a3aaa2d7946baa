package app

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/config"
	"github.com/jask/penguindash/internal/export"
	"github.com/jask/penguindash/internal/penguins"
	"github.com/jask/penguindash/screens"
)

// ExportFile is the name export-csv writes inside Runtime.ExportDir.
const ExportFile = "penguins-filtered.csv"

// RegisterCommands adds every dashboard command to reg. Commands run on the
// Update loop, so they may change the dashboard inputs directly.
func RegisterCommands(reg *core.CommandRegistry, rt *Runtime) {
	d := rt.Dashboard
	applied := func(label string) tea.Cmd {
		return core.StatusCmd(label + ": " + matchStatus(d))
	}

	reg.Register(core.Command{
		ID:          "reset",
		Name:        "Reset controls",
		Description: "Restore the configured default controls",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			if err := d.Apply(rt.Defaults); err != nil {
				return core.ErrorCmd(err)
			}
			return applied("Reset")
		},
	})
	reg.Register(core.Command{
		ID:          "select-all",
		Name:        "Select everything",
		Description: "Check every species, island and sex",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			c := d.Controls()
			c.Species, c.Islands, c.Sexes = penguins.AllSpecies, penguins.AllIslands, penguins.AllSexes
			if err := d.Apply(c); err != nil {
				return core.ErrorCmd(err)
			}
			return applied("All selected")
		},
	})
	reg.Register(core.Command{
		ID:          "clear-all",
		Name:        "Clear selections",
		Description: "Uncheck every species, island and sex",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			c := d.Controls()
			c.Species, c.Islands, c.Sexes = nil, nil, nil
			if err := d.Apply(c); err != nil {
				return core.ErrorCmd(err)
			}
			return applied("Cleared")
		},
	})

	for _, attr := range penguins.Attributes {
		reg.Register(core.Command{
			ID:          "attribute:" + string(attr),
			Name:        "Show " + attr.Label(),
			Description: "Histogram and density over " + string(attr),
			Scopes:      []string{"*"},
			Execute: func(m *core.Model) tea.Cmd {
				if err := d.SetAttribute(attr); err != nil {
					return core.ErrorCmd(err)
				}
				return core.StatusCmd("Attribute: " + attr.Label())
			},
			Disabled: func(m *core.Model) (bool, string) {
				if d.Attribute() == attr {
					return true, "already shown"
				}
				return false, ""
			},
		})
	}
	reg.Register(core.Command{
		ID:          "choose-attribute",
		Name:        "Choose attribute",
		Description: "Pick the measurement for histogram and density",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			m.PushScreen(screens.NewAttributePicker(d.Attribute(), func(a penguins.Attribute) tea.Msg {
				return core.CommandExecuteMsg{CommandID: "attribute:" + string(a)}
			}))
			return nil
		},
	})

	reg.Register(core.Command{
		ID:          "save-defaults",
		Name:        "Save as defaults",
		Description: "Write the current controls to the config file",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			c := d.Controls()
			next := rt.Config.WithControls(c)
			if err := config.Save(rt.ConfigPath, next); err != nil {
				rt.Log.Warn("save defaults", zap.String("path", rt.ConfigPath), zap.Error(err))
				return core.ErrorCmd(fmt.Errorf("save defaults: %w", err))
			}
			rt.Config = next
			rt.Defaults = c
			rt.Log.Info("defaults saved", zap.String("path", rt.ConfigPath))
			return core.StatusCmd("Defaults saved to " + rt.ConfigPath)
		},
		Disabled: func(m *core.Model) (bool, string) {
			if rt.ConfigPath == "" {
				return true, "no config path"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID:          "export-csv",
		Name:        "Export rows",
		Description: "Write the filtered rows to " + ExportFile,
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			path := filepath.Join(rt.ExportDir, ExportFile)
			if err := writeRows(path, d.Filtered()); err != nil {
				rt.Log.Warn("export rows", zap.String("path", path), zap.Error(err))
				return core.ErrorCmd(err)
			}
			return core.StatusCmd(fmt.Sprintf("Wrote %d rows to %s", d.Filtered().Len(), path))
		},
	})

	reg.Register(core.Command{
		ID:          "switch-dashboard",
		Name:        "Switch to dashboard",
		Description: "Activate dashboard tab",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			m.SwitchTab(0)
			return core.StatusCmd("Dashboard")
		},
	})
	reg.Register(core.Command{
		ID:          "switch-graph",
		Name:        "Switch to graph",
		Description: "Activate reactive graph tab",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			m.SwitchTab(1)
			return core.StatusCmd("Graph")
		},
	})
}

func writeRows(path string, tbl penguins.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export rows: %w", err)
	}
	if err := export.WriteRows(f, tbl); err != nil {
		f.Close()
		return fmt.Errorf("export rows: %w", err)
	}
	return f.Close()
}
