package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorBorder   = lipgloss.Color("#6c7086")
	colorSelected = lipgloss.Color("#89b4fa")
	colorFocused  = lipgloss.Color("#a6e3a1")
	colorText     = lipgloss.Color("#cdd6f4")
	colorOverlay1 = lipgloss.Color("#7f849c")
	colorSurface2 = lipgloss.Color("#585b70")
	colorPeach    = lipgloss.Color("#fab387")

	mutedStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	valueStyle = lipgloss.NewStyle().Foreground(colorPeach)
)

// Pane draws rounded chrome around either a pre-rendered Content string or
// a Body widget sized to the inner box. Badge is shown right-aligned in the
// bottom border.
type Pane struct {
	Title    string
	Badge    string
	Content  string
	Body     Widget
	Selected bool
	Focused  bool
}

// Inner returns the content box a pane of the given size leaves.
func (p Pane) Inner(width, height int) (int, int) {
	return max(1, width-4), max(1, height-2)
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	width = max(width, 6)
	h := max(height, 3)

	border := colorBorder
	if p.Selected {
		border = colorSelected
	}
	if p.Focused {
		border = colorFocused
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)

	titlePrefix := "  "
	if p.Selected {
		titlePrefix = "▶ "
	}
	if p.Focused {
		titlePrefix = "● "
	}

	innerWidth := width - 2
	contentWidth, innerHeight := p.Inner(width, h)

	top := borderStyle.Render("╭") + labelRule(strings.TrimSpace(titlePrefix+p.Title), innerWidth, borderStyle, titleStyle, false) + borderStyle.Render("╮")
	bottom := borderStyle.Render("╰") + labelRule(p.Badge, innerWidth, borderStyle, mutedStyle, true) + borderStyle.Render("╯")

	content := p.Content
	if p.Body != nil {
		content = p.Body.Render(contentWidth, innerHeight)
	}
	contentLines := splitLines(content)
	v := borderStyle.Render("│")
	rows := make([]string, 0, h)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}

// labelRule draws a horizontal border segment with an embedded label, left
// aligned after one dash or right aligned before one.
func labelRule(label string, width int, rule, text lipgloss.Style, right bool) string {
	if strings.TrimSpace(label) == "" {
		return rule.Render(strings.Repeat("─", width))
	}
	labelText := " " + label + " "
	if ansi.StringWidth(labelText) > width {
		labelText = " " + ansi.Truncate(label, max(1, width-2), "") + " "
	}
	dashes := max(0, width-ansi.StringWidth(labelText))
	lead := min(1, dashes)
	trail := dashes - lead
	if right {
		lead, trail = trail, lead
	}
	return rule.Render(strings.Repeat("─", lead)) + text.Render(labelText) + rule.Render(strings.Repeat("─", trail))
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
