package core

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func defaultRegistry() *KeyRegistry {
	return NewKeyRegistry(DefaultKeyBindings())
}

func containsPlain(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}

func splitPlainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}
