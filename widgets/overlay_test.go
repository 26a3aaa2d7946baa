package widgets

import (
	"strings"
	"testing"
)

func TestRenderPopupOverlaysWithoutDroppingBase(t *testing.T) {
	base := strings.Join([]string{
		"row-0................",
		"row-1................",
		"row-2................",
		"row-3................",
		"row-4................",
		"row-5................",
		"row-6................",
		"row-7................",
		"row-8................",
	}, "\n")
	out := RenderPopup(base, "Popup", 20, 9)
	assertBox(t, out, 20, 9)
	if !strings.Contains(out, "Popup") {
		t.Fatalf("expected popup content in output")
	}
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "row-0") {
		t.Fatalf("expected top base row preserved, got %q", lines[0])
	}
	if !strings.Contains(lines[8], "row-8") {
		t.Fatalf("expected bottom base row preserved, got %q", lines[8])
	}
}

func TestPaneChrome(t *testing.T) {
	p := Pane{Title: "Controls", Badge: "n=8", Body: fixedWidget{"hello"}, Selected: true}
	out := p.Render(24, 5)
	assertBox(t, out, 24, 5)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "▶ Controls") {
		t.Fatalf("title missing: %q", lines[0])
	}
	if !strings.Contains(lines[1], "hello") {
		t.Fatalf("body missing: %q", lines[1])
	}
	if !strings.Contains(lines[4], "n=8") {
		t.Fatalf("badge missing: %q", lines[4])
	}
	if w, h := p.Inner(24, 5); w != 20 || h != 3 {
		t.Fatalf("inner = %dx%d, want 20x3", w, h)
	}
}
