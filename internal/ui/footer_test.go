package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFooter_FlashGenerations(t *testing.T) {
	f := NewFooter()
	f.SetWidth(100)

	first := f.SetFlash("one", FlashInfo)
	second := f.SetFlash("two", FlashError)
	if second <= first {
		t.Fatalf("generation should grow: %d then %d", first, second)
	}

	if f.ClearFlash(first) {
		t.Error("a stale tick must not clear a newer flash")
	}
	if f.FlashText() != "two" {
		t.Errorf("FlashText() = %q", f.FlashText())
	}
	if !strings.Contains(ansi.Strip(f.View()), "✗ two") {
		t.Errorf("View() = %q", ansi.Strip(f.View()))
	}

	if !f.ClearFlash(second) {
		t.Error("latest tick should clear the flash")
	}
	if f.HasFlash() {
		t.Error("flash should be gone")
	}
}


func TestFooter_Bindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(200)

	f.SetContext(true, false, 3)
	if out := ansi.Strip(f.View()); !strings.Contains(out, "(3)") {
		t.Errorf("delete binding should show the selection count: %q", out)
	}

	f.SetContext(false, false, 0)
	if out := ansi.Strip(f.View()); strings.Contains(out, "delete") {
		t.Errorf("chat bindings should not offer delete: %q", out)
	}
}

