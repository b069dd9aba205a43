// Package coverart turns the base64 cover image reported by the server into
// rows of half-block characters sized to a cell box. Decoding and scaling run
// on a worker goroutine; results come back on a channel.
package coverart

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ErrNoRoom is returned when the target box has no cells.
var ErrNoRoom = errors.New("cover art: target area is empty")

const halfBlock = "▀"

// Request asks for the image in Data to be fitted into Width x Height cells.
// ID is echoed back in the Result so stale renders can be told apart.
type Request struct {
	ID     uint64
	Data   string
	Width  int
	Height int
}

// Result is a finished render. Lines holds one string per cell row.
type Result struct {
	ID    uint64
	Lines []string
	Err   error
}

// Render decodes data and draws it into at most width x height cells, two
// pixels per cell stacked vertically. The aspect ratio is kept.
func Render(data string, width, height int, profile termenv.Profile) ([]string, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrNoRoom
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("cover art: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("cover art: %w", err)
	}
	w, h := fit(img.Bounds().Dx(), img.Bounds().Dy(), width, height*2)
	pixels := sample(img, w, h)

	lines := make([]string, 0, h/2)
	for y := 0; y+1 < h; y += 2 {
		var b strings.Builder
		for x := 0; x < w; x++ {
			top, bottom := pixels[y*w+x], pixels[(y+1)*w+x]
			b.WriteString(profile.String(halfBlock).
				Foreground(profile.Color(top)).
				Background(profile.Color(bottom)).
				String())
		}
		lines = append(lines, b.String())
	}
	return lines, nil
}

// fit scales iw x ih into a box of bw x bh pixels. The height is kept even so
// every cell row gets two pixels.
func fit(iw, ih, bw, bh int) (int, int) {
	if iw <= 0 || ih <= 0 {
		return 0, 0
	}
	w, h := bw, ih*bw/iw
	if h > bh {
		w, h = iw*bh/ih, bh
	}
	w = max(w, 1)
	h = max(h-h%2, 2)
	return w, h
}

// sample box-filters img down to w x h and returns hex colours row by row.
func sample(img image.Image, w, h int) []string {
	bounds := img.Bounds()
	out := make([]string, w*h)
	for y := 0; y < h; y++ {
		y0 := bounds.Min.Y + y*bounds.Dy()/h
		y1 := max(bounds.Min.Y+(y+1)*bounds.Dy()/h, y0+1)
		for x := 0; x < w; x++ {
			x0 := bounds.Min.X + x*bounds.Dx()/w
			x1 := max(bounds.Min.X+(x+1)*bounds.Dx()/w, x0+1)
			out[y*w+x] = average(img, x0, y0, x1, y1).Hex()
		}
	}
	return out
}

func average(img image.Image, x0, y0, x1, y1 int) colorful.Color {
	var r, g, b float64
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				c, _ = colorful.MakeColor(color.Black)
			}
			r, g, b = r+c.R, g+c.G, b+c.B
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n)}.Clamped()
}

// Worker renders requests one at a time. Only the newest unprocessed request
// is kept; older ones are dropped.
type Worker struct {
	profile termenv.Profile
	in      chan Request
	out     chan Result
}

// NewWorker returns a worker that draws with the given colour profile.
func NewWorker(profile termenv.Profile) *Worker {
	return &Worker{
		profile: profile,
		in:      make(chan Request, 1),
		out:     make(chan Result, 1),
	}
}

// Submit queues req, replacing any request not yet picked up. It never
// blocks; only the consumer goroutine may call it.
func (w *Worker) Submit(req Request) {
	for {
		select {
		case w.in <- req:
			return
		default:
		}
		select {
		case <-w.in:
		default:
		}
	}
}

// Results yields one Result per processed request. It is closed when Run
// returns.
func (w *Worker) Results() <-chan Result {
	return w.out
}

// Run processes requests until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-w.in:
			lines, err := Render(req.Data, req.Width, req.Height, w.profile)
			select {
			case w.out <- Result{ID: req.ID, Lines: lines, Err: err}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
