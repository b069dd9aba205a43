package backend

import (
	"context"
	"sync"
	"time"

	"github.com/alfazet/amusing/internal/event"
)

const (
	// DefaultPollTimeout bounds one wait for terminal input.
	DefaultPollTimeout = 16 * time.Millisecond
	// DefaultRefreshInterval is how often state is pulled from the server.
	DefaultRefreshInterval = 125 * time.Millisecond
)

// Source is the terminal side of the poller. Poll waits at most timeout for
// one input event; ok is false when none arrived. An error ends polling.
type Source interface {
	Poll(timeout time.Duration) (ev event.Event, ok bool, err error)
}

// Options tune a Poller. Zero values use the defaults.
type Options struct {
	PollTimeout     time.Duration
	RefreshInterval time.Duration
	// Now replaces the wall clock in tests.
	Now func() time.Time
}

// Poller alternates input polls with a wall-clock refresh check and
// publishes Keypress, Resize and Refresh events. One Refresh is sent before
// the first poll.
type Poller struct {
	source  Source
	timeout time.Duration
	gate    *throttle
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	events chan event.Event
	wg     sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewPoller starts polling source.
func NewPoller(source Source, opts Options) *Poller {
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		source:  source,
		timeout: opts.PollTimeout,
		gate:    newThrottle(opts.RefreshInterval),
		now:     opts.Now,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan event.Event, 16),
	}

	p.wg.Add(1)
	go p.poll()

	go func() {
		p.wg.Wait()
		close(p.events)
	}()

	return p
}

// Events returns the poller's output. It is closed when polling stops.
func (p *Poller) Events() <-chan event.Event {
	return p.events
}

// Err is the error that stopped polling, if any.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Stop cancels the poller. The loop exits after its current poll returns;
// use Wait if a clean drain is required.
func (p *Poller) Stop() {
	p.cancel()
}

// Wait blocks until the poll goroutine has exited and the events channel is
// closed.
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) poll() {
	defer p.wg.Done()

	emit := func(ev event.Event) bool {
		select {
		case <-p.ctx.Done():
			return false
		case p.events <- ev:
			return true
		}
	}

	p.gate.due(p.now())
	if !emit(event.Refresh{}) {
		return
	}

	for p.ctx.Err() == nil {
		ev, ok, err := p.source.Poll(p.timeout)
		if err != nil {
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
			return
		}
		if ok && !emit(ev) {
			return
		}
		if p.gate.due(p.now()) && !emit(event.Refresh{}) {
			return
		}
	}
}
