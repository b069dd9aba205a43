package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/alfazet/amusing/internal/format/table"
	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/theme"
)

const (
	searchPrompt     = "> "
	headerSideWidth  = 16
	progressGlyph    = "."
	defaultEmptyText = "(empty)"

	tlc = "┌"
	trc = "┐"
	blc = "└"
	brc = "┘"
	hz  = "─"
	vt  = "│"
)

// Render draws s using styles. A nil styles uses the defaults.
func Render(s Snapshot, styles *theme.Styles) string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}
	if styles == nil {
		styles = theme.Default()
	}
	lines := make([]string, 0, s.Height)
	lines = append(lines, renderHeader(s.Header, s.Width, styles)...)

	bodyH := BodyHeight(s.Height)
	var body []string
	switch s.Screen {
	case ScreenLibrary:
		leftW, rightW := LibraryWidths(s.Width)
		left := renderList(s.Groups, leftW, bodyH, styles)
		right := renderList(s.Songs, rightW, bodyH, styles)
		body = make([]string, bodyH)
		for i := range body {
			body[i] = left[i] + right[i]
		}
	case ScreenCover:
		body = renderCover(s.Cover, s.CoverNote, s.Width, bodyH, styles)
	default:
		body = renderList(s.Queue, s.Width, bodyH, styles)
	}
	lines = append(lines, body...)
	lines = append(lines, renderFooter(s.Footer, s.Width, styles))
	if len(lines) > s.Height {
		lines = lines[len(lines)-s.Height:]
	}
	return strings.Join(lines, "\n")
}

func renderHeader(h Header, width int, styles *theme.Styles) []string {
	gapless := "g"
	if h.Gapless {
		gapless = "G"
	}
	title, details := "", ""
	if !h.Stopped {
		title = h.Title
		details = h.Artist + " - " + h.Album
	}
	centerW := width - 2*headerSideWidth
	first := headerRow(
		fmt.Sprintf("[%s %s]", h.Mode, gapless),
		styled(fitText(title, centerW), styles.CurrentTitle),
		fmt.Sprintf("Volume: %d", h.Volume),
		width, styles,
	)
	var middle string
	if details != "" {
		artist := styled(h.Artist, styles.CurrentArtist)
		album := styled(h.Album, styles.CurrentAlbum)
		middle = artist + " - " + album
		if ansi.StringWidth(details) > centerW {
			middle = styled(fitText(details, centerW), styles.CurrentArtist)
		}
	}
	second := headerRow(
		fmt.Sprintf("[%s]", h.State),
		middle,
		fmt.Sprintf("Speed: %d", h.Speed),
		width, styles,
	)
	return []string{first, second}
}

func headerRow(left, center, right string, width int, styles *theme.Styles) string {
	if width < 2*headerSideWidth {
		return padRight(fitText(left+" "+right, width), width)
	}
	centerW := width - 2*headerSideWidth
	l := styled(padRight(fitText(left, headerSideWidth), headerSideWidth), styles.Header)
	r := styled(padLeft(fitText(right, headerSideWidth), headerSideWidth), styles.Header)
	c := lipgloss.PlaceHorizontal(centerW, lipgloss.Center, center)
	return l + c + r
}

func renderFooter(f Footer, width int, styles *theme.Styles) string {
	if f.Status != "" {
		style := styles.Info
		if f.Error {
			style = styles.Error
		}
		return styled(padRight(fitText(f.Status, width), width), style)
	}
	left := musing.FormatTime(f.Elapsed)
	right := musing.FormatTime(f.Duration)
	bar := width - ansi.StringWidth(left) - ansi.StringWidth(right) - 2
	if bar < 0 {
		return padRight(fitText(left+"/"+right, width), width)
	}
	done := ProgressCells(f.Elapsed, f.Duration, bar)
	return left + " " +
		styled(strings.Repeat(progressGlyph, done), styles.ProgressDone) +
		styled(strings.Repeat(progressGlyph, bar-done), styles.ProgressRemaining) +
		" " + right
}

// ProgressCells is how many of width cells are filled after elapsed of
// duration seconds.
func ProgressCells(elapsed, duration uint64, width int) int {
	if duration == 0 || width <= 0 {
		return 0
	}
	done := int(math.Round(float64(width) * float64(elapsed) / float64(duration)))
	if done > width {
		return width
	}
	return done
}

func renderList(l List, width, height int, styles *theme.Styles) []string {
	boxH := height
	var searchBox []string
	if l.Search != nil && height >= searchLines+borderLines {
		boxH = height - searchLines
		searchBox = renderSearch(*l.Search, width, styles)
	}
	innerW := width - 2
	innerH := max(boxH-borderLines, 0)

	content := make([]string, 0, innerH)
	if len(l.Rows) == 0 {
		empty := l.Empty
		if empty == "" {
			empty = defaultEmptyText
		}
		content = append(content, " "+styled(fitText(empty, innerW-2), styles.Info))
	} else if innerW > 2 {
		formatted := table.Fill(l.Rows, l.Weights, l.Alignments, innerW-2)
		for i, row := range formatted {
			if i >= innerH {
				break
			}
			content = append(content, " "+styled(row, rowStyle(l, l.First+i, styles))+" ")
		}
	}

	border := styles.Border
	if l.Focused {
		border = styles.ActiveBorder
	}
	out := box(l.Title, content, width, boxH, border, styles)
	return append(out, searchBox...)
}

func rowStyle(l List, index int, styles *theme.Styles) *lipgloss.Style {
	switch {
	case index == l.Cursor && l.Focused:
		return styles.FocusedItem
	case index == l.Cursor:
		return styles.SelectedItem
	case index == l.Playing:
		return styles.PlayingItem
	case l.Marked[index]:
		return styles.MarkedItem
	default:
		return styles.Item
	}
}

func renderSearch(s Search, width int, styles *theme.Styles) []string {
	ti := textinput.New()
	ti.Prompt = searchPrompt
	ti.PromptStyle = *styles.FilterPrompt
	ti.Placeholder = "search"
	ti.PlaceholderStyle = *styles.FilterPlaceholder
	ti.Width = width - 2 - ansi.StringWidth(searchPrompt) - 1
	ti.SetValue(s.Value)
	ti.SetCursor(s.Cursor)
	border := styles.Border
	if s.Editing {
		ti.Focus()
		ti.Cursor.Style = *styles.Cursor
		ti.Cursor.SetMode(cursor.CursorStatic)
		border = styles.ActiveBorder
	} else {
		ti.Blur()
	}
	return box("", []string{ti.View()}, width, searchLines, border, styles)
}

func renderCover(lines []string, note string, width, height int, styles *theme.Styles) []string {
	innerW := width - 2
	innerH := height - borderLines
	if innerW <= 0 || innerH <= 0 {
		return box("", nil, width, height, styles.Border, styles)
	}
	var picture string
	if len(lines) > 0 {
		picture = strings.Join(lines, "\n")
	} else {
		if note == "" {
			note = "no cover art"
		}
		picture = styled(fitText(note, innerW), styles.Info)
	}
	placed := lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, picture)
	return box("", strings.Split(placed, "\n"), width, height, styles.Border, styles)
}

// box frames content in a border of exactly width x height cells, with title
// centred in the top edge.
func box(title string, content []string, width, height int, border *lipgloss.Style, styles *theme.Styles) []string {
	if height <= 0 {
		return nil
	}
	if width < 2 {
		rows := make([]string, height)
		for i := range rows {
			rows[i] = strings.Repeat(" ", max(width, 0))
		}
		return rows
	}
	innerW := width - 2
	top := styled(tlc+strings.Repeat(hz, innerW)+trc, border)
	if title != "" && innerW > 4 {
		seg := " " + fitText(title, innerW-2) + " "
		rest := innerW - ansi.StringWidth(seg)
		leftDashes := rest / 2
		top = styled(tlc+strings.Repeat(hz, leftDashes), border) +
			styled(seg, styles.PaneTitle) +
			styled(strings.Repeat(hz, rest-leftDashes)+trc, border)
	}
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		w := lipgloss.Width(line)
		if w > innerW {
			line = truncate.String(line, uint(innerW))
			w = lipgloss.Width(line)
		}
		rows = append(rows, styled(vt, border)+line+strings.Repeat(" ", innerW-w)+styled(vt, border))
	}
	if height > 1 {
		rows = append(rows, styled(blc+strings.Repeat(hz, innerW)+brc, border))
	}
	return rows
}

func styled(text string, style *lipgloss.Style) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func fitText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func padRight(text string, width int) string {
	if w := ansi.StringWidth(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

func padLeft(text string, width int) string {
	if w := ansi.StringWidth(text); w < width {
		return strings.Repeat(" ", width-w) + text
	}
	return text
}
