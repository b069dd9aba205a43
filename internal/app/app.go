package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/alfazet/amusing/internal/backend"
	"github.com/alfazet/amusing/internal/connection"
	"github.com/alfazet/amusing/internal/coverart"
	"github.com/alfazet/amusing/internal/event"
	"github.com/alfazet/amusing/internal/logging/events"
	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/ui"
	"github.com/alfazet/amusing/internal/view"
)

const muxBuffer = 64

// Config describes user-provided application options.
type Config struct {
	Addr     string
	Settings Settings
	// Input and Output replace the terminal in tests.
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// Run connects to the server and drives the terminal until the user quits
// or a producer fails.
func Run(ctx context.Context, cfg Config) error {
	addr := cfg.Addr
	if addr == "" {
		addr = connection.DefaultAddr
	}
	conn, err := connection.Dial(ctx, addr, connection.Options{})
	if err != nil {
		return err
	}
	defer conn.Close()
	events.App.Start(map[string]interface{}{"addr": addr, "version": conn.Version()})

	front := ui.NewFrontend(ui.Options{
		Input:     cfg.Input,
		Output:    cfg.Output,
		Styles:    cfg.Settings.Styles,
		AltScreen: cfg.AltScreen,
	})
	covers := coverart.NewWorker(front.Profile())
	model := NewModel(cfg.Settings, conn, covers)
	poller := backend.NewPoller(front, backend.Options{})

	mux := event.NewMux(muxBuffer)
	event.Forward(mux, "input", poller.Events(), poller.Err)
	event.Attach(mux, "connection", conn.Responses(), func(r musing.Response) event.Event {
		return event.Response{Response: r}
	}, conn.Err)
	event.Attach(mux, "coverart", covers.Results(), func(r coverart.Result) event.Event {
		return event.CoverArtResize{Result: r}
	}, nil)
	mux.Seal()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(front.Run)
	g.Go(func() error {
		return covers.Run(gctx)
	})
	g.Go(func() error {
		defer func() {
			cancel()
			front.Quit()
			poller.Stop()
			mux.Stop()
			model.Close()
		}()
		model.Init()
		return Loop(gctx, model, mux, func(s view.Snapshot) {
			front.Render(s)
		})
	})
	if err := g.Wait(); err != nil && !errors.Is(err, ui.ErrClosed) {
		return fmt.Errorf("amusing: %w", err)
	}
	return nil
}
