package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/alfazet/amusing/internal/event"
	"github.com/alfazet/amusing/internal/view"
)

// Loop is the single consumer: it blocks on the multiplexer, applies each
// event to m and hands a fresh snapshot to render. It returns nil once the
// user quits and an error when a producer dies or the stream ends.
func Loop(ctx context.Context, m *Model, mux *event.Mux, render func(view.Snapshot)) error {
	for {
		ev, err := mux.Next(ctx)
		if err != nil {
			if errors.Is(err, event.ErrClosed) {
				return fmt.Errorf("event loop: %w", err)
			}
			return err
		}
		if err := m.Handle(ev); err != nil {
			return err
		}
		if m.Done() {
			return nil
		}
		if render != nil {
			render(m.Snapshot())
		}
	}
}
