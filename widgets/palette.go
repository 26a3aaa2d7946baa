package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorBrewer Set2, the qualitative palette the charts are coloured with.
var set2 = []lipgloss.Color{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"}

var speciesIndex = map[string]int{"Adelie": 0, "Chinstrap": 1, "Gentoo": 2}

// SpeciesColor is stable per species so every chart agrees. Species outside
// the canonical three hash onto the rest of the palette.
func SpeciesColor(species string) lipgloss.Color {
	if i, ok := speciesIndex[species]; ok {
		return set2[i]
	}
	var h uint32
	for _, r := range species {
		h = h*31 + uint32(r)
	}
	return set2[3+int(h%uint32(len(set2)-3))]
}

func SpeciesStyle(species string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SpeciesColor(species))
}

// Legend renders "■ Adelie  ■ Gentoo" in species colours.
func Legend(species []string) string {
	parts := make([]string, 0, len(species))
	for _, s := range species {
		parts = append(parts, SpeciesStyle(s).Render("■")+" "+s)
	}
	return strings.Join(parts, "  ")
}

// Empty is the placeholder every chart shows when the filters match nothing.
func Empty(width, height int) string {
	return fitBlock(mutedStyle.Render("No penguins match the current filters."), width, height)
}
