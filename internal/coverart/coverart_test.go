package coverart

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
)

// encodeImage returns a w x h PNG, red on top half and blue below.
func encodeImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 255, A: 255}
			if y >= h/2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderKeepsAspectRatio(t *testing.T) {
	data := encodeImage(t, 40, 40)
	lines, err := Render(data, 30, 10, termenv.Ascii)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// A square image in a 30x10 cell box is limited by height: 20x20 pixels.
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if line != strings.Repeat(halfBlock, 20) {
			t.Fatalf("unexpected row %q", line)
		}
	}
}

func TestRenderColours(t *testing.T) {
	data := encodeImage(t, 2, 4)
	lines, err := Render(data, 2, 2, termenv.TrueColor)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "38;2;255;0;0") {
		t.Fatalf("top row should be red, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "48;2;0;0;255") {
		t.Fatalf("bottom row should be blue, got %q", lines[1])
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(encodeImage(t, 2, 2), 0, 5, termenv.Ascii); !errors.Is(err, ErrNoRoom) {
		t.Fatalf("expected ErrNoRoom, got %v", err)
	}
	if _, err := Render("%%%", 5, 5, termenv.Ascii); err == nil {
		t.Fatalf("expected base64 error")
	}
	garbage := base64.StdEncoding.EncodeToString([]byte("not an image"))
	if _, err := Render(garbage, 5, 5, termenv.Ascii); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestWorkerEchoesID(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorker(termenv.Ascii)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	w.Submit(Request{ID: 7, Data: encodeImage(t, 4, 4), Width: 4, Height: 2})
	select {
	case res := <-w.Results():
		if res.ID != 7 || res.Err != nil || len(res.Lines) != 2 {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no result")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := <-w.Results(); ok {
		t.Fatalf("results should be closed after Run returns")
	}
}
