package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var penguinArt = []string{
	`   _  `,
	`  (o> `,
	` //\  `,
	` V_/_ `,
}

// Banner is the dashboard header: a small penguin, the title and a one-line
// summary of the active filters.
type Banner struct {
	Title   string
	Summary string
	Rows    int
	Total   int
}

func (b Banner) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	artStyle := lipgloss.NewStyle().Foreground(colorSelected)

	text := []string{
		titleStyle.Render(b.Title),
		mutedStyle.Render(b.Summary),
		mutedStyle.Render("showing ") + valueStyle.Render(fmt.Sprintf("%d", b.Rows)) + mutedStyle.Render(fmt.Sprintf(" of %d penguins", b.Total)),
	}
	if height < len(penguinArt) || width < 40 {
		return fitBlock(strings.Join(text, "\n"), width, height)
	}
	lines := make([]string, len(penguinArt))
	for i, art := range penguinArt {
		line := artStyle.Render(art) + " "
		if i < len(text) {
			line += text[i]
		}
		lines[i] = line
	}
	return fitBlock(strings.Join(lines, "\n"), width, height)
}
