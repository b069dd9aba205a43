package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const (
	columnGap = "  "
	ellipsis  = "…"
)

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if c >= colCount {
				break
			}
			width := cellWidth(cell)
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	return render(rows, widths, alignments)
}

// Fill lays rows out in exactly total cells. Each column receives a share
// of the space proportional to its weight; cells that do not fit are cut
// with an ellipsis.
func Fill(rows [][]string, weights []int, alignments []Alignment, total int) []string {
	if len(rows) == 0 || len(weights) == 0 || total <= 0 {
		return nil
	}
	widths := Widths(weights, total)
	out := render(rows, widths, alignments)
	for i, line := range out {
		if w := cellWidth(line); w > total {
			out[i] = truncate.String(line, uint(total))
		}
	}
	return out
}

// Widths splits total minus the column gaps by weight. Rounding leftovers go
// to the first columns.
func Widths(weights []int, total int) []int {
	widths := make([]int, len(weights))
	space := total - len(columnGap)*(len(weights)-1)
	if space <= 0 {
		return widths
	}
	sum := 0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		return widths
	}
	used := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		widths[i] = space * w / sum
		used += widths[i]
	}
	for i := 0; used < space; i = (i + 1) % len(widths) {
		if weights[i] > 0 {
			widths[i]++
			used++
		}
	}
	return widths
}

func render(rows [][]string, widths []int, alignments []Alignment) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, width := range widths {
			if c > 0 {
				b.WriteString(columnGap)
			}
			var cell string
			if c < len(row) {
				cell = row[c]
			}
			if cellWidth(cell) > width {
				cell = fit(cell, width)
			}
			pad := width - cellWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func fit(cell string, width int) string {
	if width <= 0 {
		return ""
	}
	if width == 1 {
		return truncate.String(cell, 1)
	}
	return truncate.StringWithTail(cell, uint(width), ellipsis)
}

func cellWidth(text string) int {
	return ansi.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
