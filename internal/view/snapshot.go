// Package view renders an immutable Snapshot of the application into a
// terminal frame. Rendering is pure: the same snapshot always produces the
// same string.
package view

import "github.com/alfazet/amusing/internal/format/table"

// Screen selects the main area of the frame.
type Screen int

const (
	ScreenQueue Screen = iota
	ScreenLibrary
	ScreenCover
)

func (s Screen) String() string {
	switch s {
	case ScreenLibrary:
		return "library"
	case ScreenCover:
		return "cover"
	default:
		return "queue"
	}
}

// Next cycles queue, library, cover.
func (s Screen) Next() Screen {
	return (s + 1) % 3
}

const (
	headerLines = 2
	footerLines = 1
	borderLines = 2
	searchLines = 3
)

// Header is the two-line playback summary at the top of every screen.
type Header struct {
	Mode    string
	State   string
	Gapless bool
	Stopped bool
	Title   string
	Artist  string
	Album   string
	Volume  int
	Speed   int
}

// Footer shows either Status or the playback progress.
type Footer struct {
	Status   string
	Error    bool
	Elapsed  uint64
	Duration uint64
}

// Search is the text box under a list whose search is active.
type Search struct {
	Value  string
	Cursor int
	// Editing is false while the search is idle.
	Editing bool
}

// List is the visible window of one scrollable list. Rows holds the rows
// from view index First onwards; Cursor, Playing and Marked use view
// indices.
type List struct {
	Title      string
	Rows       [][]string
	Weights    []int
	Alignments []table.Alignment
	First      int
	Cursor     int
	Playing    int
	Marked     map[int]bool
	Focused    bool
	Search     *Search
	Empty      string
}

// Snapshot is everything Render needs for one frame.
type Snapshot struct {
	Width  int
	Height int
	Screen Screen
	Header Header
	Footer Footer
	Queue  List
	Groups List
	Songs  List
	Cover  []string
	// CoverNote replaces the picture when there is nothing to draw.
	CoverNote string
}

// BodyHeight is the number of rows between header and footer.
func BodyHeight(height int) int {
	h := height - headerLines - footerLines
	if h < 0 {
		return 0
	}
	return h
}

// ListCapacity is how many rows of a list fit on screen.
func ListCapacity(height int, searching bool) int {
	h := BodyHeight(height) - borderLines
	if searching {
		h -= searchLines
	}
	if h < 0 {
		return 0
	}
	return h
}

// CoverSize is the cell box available to the cover art on the cover screen.
func CoverSize(width, height int) (int, int) {
	w := width - 2
	h := BodyHeight(height) - borderLines
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// LibraryWidths splits the library screen between the two panes.
func LibraryWidths(width int) (int, int) {
	left := width / 2
	return left, width - left
}
