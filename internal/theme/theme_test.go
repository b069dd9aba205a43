package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestWithColorsLeavesDefaultUntouched(t *testing.T) {
	before := Default().CurrentTitle.GetForeground()
	styles, err := WithColors(map[string]string{"current_title": "#ff8800"})
	if err != nil {
		t.Fatalf("with colors: %v", err)
	}
	if got := styles.CurrentTitle.GetForeground(); got != lipgloss.Color("#ff8800") {
		t.Fatalf("override not applied, got %v", got)
	}
	if !styles.CurrentTitle.GetBold() {
		t.Fatalf("override should keep other attributes")
	}
	if Default().CurrentTitle.GetForeground() != before {
		t.Fatalf("default styles mutated")
	}
}

func TestWithColorsRejectsUnknownStyle(t *testing.T) {
	styles, err := WithColors(map[string]string{"no_such_style": "1"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if styles != Default() {
		t.Fatalf("expected defaults on error")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
