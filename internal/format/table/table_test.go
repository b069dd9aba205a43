package table

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"Black Dog", "4:55"},
		{"Rock and Roll", "3:40"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"Black Dog      4:55",
		"Rock and Roll  3:40",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	rows := [][]string{{"日本", "x"}, {"ab", "y"}}
	got := Format(rows, nil)
	if ansi.StringWidth(got[0]) != ansi.StringWidth(got[1]) {
		t.Fatalf("rows differ in width: %q %q", got[0], got[1])
	}
}

func TestFillKeepsExactWidth(t *testing.T) {
	rows := [][]string{
		{"Led Zeppelin", "Led Zeppelin IV", "Stairway to Heaven", "08:02"},
		{"A", "B", "C", "00:01"},
	}
	got := Fill(rows, []int{3, 2, 1, 1}, []Alignment{AlignLeft, AlignLeft, AlignLeft, AlignRight}, 40)
	for i, line := range got {
		if w := ansi.StringWidth(line); w != 40 {
			t.Fatalf("row %d: width %d, want 40: %q", i, w, line)
		}
	}
	if !strings.Contains(got[0], "…") {
		t.Fatalf("expected truncated cell in %q", got[0])
	}
}

func TestWidthsDistributeRemainder(t *testing.T) {
	widths := Widths([]int{1, 1, 1}, 14)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 10 {
		t.Fatalf("expected 10 cells after gaps, got %v", widths)
	}
	if widths[0] != 4 || widths[1] != 3 || widths[2] != 3 {
		t.Fatalf("unexpected widths %v", widths)
	}
}
