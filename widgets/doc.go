// Package widgets contains dumb render primitives for the penguin dashboard.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, stacks, popup overlay compositor)
// - chart renderers that turn already-computed widget data into terminal text
//
// Not allowed here:
// - key handling, reactive graph access, control state, or tab policy
package widgets

// Widget renders itself into a width x height cell box.
type Widget interface {
	Render(width, height int) string
}

// Text is a Widget that ignores its box and renders fixed content.
type Text string

func (t Text) Render(width, height int) string {
	return fitBlock(string(t), width, height)
}
