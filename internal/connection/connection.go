// Package connection owns the socket to the musing server. A single actor
// goroutine drains an unbounded request queue, writing one request and reading
// its reply before it touches the next, and publishes decoded replies on a
// channel.
package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/alfazet/amusing/internal/logging/events"
	"github.com/alfazet/amusing/internal/musing"
	"github.com/alfazet/amusing/internal/protocol"
)

// DefaultAddr is where musing listens unless told otherwise.
const DefaultAddr = "127.0.0.1:2137"

// ErrClosed is reported by Err after Close.
var ErrClosed = errors.New("connection closed")

// Options tune Dial.
type Options struct {
	DialTimeout      time.Duration
	HandshakeTimeout time.Duration
	// Buffer is the capacity of the Responses channel.
	Buffer int
}

func (o Options) withDefaults() Options {
	if o.DialTimeout <= 0 {
		o.DialTimeout = 5 * time.Second
	}
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = 5 * time.Second
	}
	if o.Buffer <= 0 {
		o.Buffer = 16
	}
	return o
}

// Conn is the client side of one musing connection.
type Conn struct {
	conn    net.Conn
	version string

	mu     sync.Mutex
	queue  []musing.Request
	err    error
	notify chan struct{}

	responses chan musing.Response
	done      chan struct{}
	closeOnce sync.Once
	exited    chan struct{}
}

// Dial connects to addr, waits for the server's version frame and starts the
// actor.
func Dial(ctx context.Context, addr string, opts Options) (*Conn, error) {
	opts = opts.withDefaults()
	dialer := net.Dialer{Timeout: opts.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect to musing at %s: %w", addr, err)
	}
	c, err := start(conn, opts)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect to musing at %s: %w", addr, err)
	}
	events.Conn.Handshake(addr, c.version)
	return c, nil
}

// Start runs the handshake and the actor on an already established
// connection.
func Start(conn net.Conn, opts Options) (*Conn, error) {
	return start(conn, opts.withDefaults())
}

func start(conn net.Conn, opts Options) (*Conn, error) {
	if opts.HandshakeTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(opts.HandshakeTimeout))
	}
	version, err := protocol.ReadVersion(conn)
	if err != nil {
		return nil, err
	}
	_ = conn.SetReadDeadline(time.Time{})

	c := &Conn{
		conn:      conn,
		version:   version,
		notify:    make(chan struct{}, 1),
		responses: make(chan musing.Response, opts.Buffer),
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
	}
	go c.run()
	return c, nil
}

// Version is the string the server sent on connect.
func (c *Conn) Version() string {
	return c.version
}

// Responses yields one value per reply that carries a payload, in request
// order. It is closed when the actor stops.
func (c *Conn) Responses() <-chan musing.Response {
	return c.responses
}

// Submit queues req and returns immediately.
func (c *Conn) Submit(req musing.Request) {
	if req == nil {
		return
	}
	c.mu.Lock()
	c.queue = append(c.queue, req)
	depth := len(c.queue)
	c.mu.Unlock()
	events.Conn.Queued(req.Kind(), depth)

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Pending is the number of requests not yet written to the socket.
func (c *Conn) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Err is the reason the actor stopped, or nil while it runs.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close shuts the socket and waits for the actor to exit.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	<-c.exited
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}

func (c *Conn) run() {
	defer close(c.exited)
	defer close(c.responses)

	for {
		req, ok := c.next()
		if !ok {
			c.fail(ErrClosed)
			return
		}
		resp, emit, err := c.roundTrip(req)
		if err != nil {
			c.fail(err)
			return
		}
		if !emit {
			continue
		}
		select {
		case c.responses <- resp:
		case <-c.done:
			c.fail(ErrClosed)
			return
		}
	}
}

func (c *Conn) next() (musing.Request, bool) {
	for {
		c.mu.Lock()
		if len(c.queue) > 0 {
			req := c.queue[0]
			c.queue[0] = nil
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return req, true
		}
		c.mu.Unlock()

		select {
		case <-c.notify:
		case <-c.done:
			return nil, false
		}
	}
}

// roundTrip writes req and reads exactly one reply. A returned error means the
// stream is unusable; protocol errors and undecodable replies come back as a
// Failure response instead.
func (c *Conn) roundTrip(req musing.Request) (musing.Response, bool, error) {
	kind := req.Kind()
	body, err := json.Marshal(req)
	if err != nil {
		return musing.Response{Request: req, Payload: musing.Failure{Reason: fmt.Sprintf("encode %s: %v", kind, err)}}, true, nil
	}
	if err := protocol.WriteFrame(c.conn, body); err != nil {
		return musing.Response{}, false, fmt.Errorf("send %s: %w", kind, err)
	}
	events.Conn.Sent(kind)

	raw, err := protocol.ReadJSON(c.conn)
	if err != nil {
		var serverErr *protocol.ServerError
		if errors.As(err, &serverErr) {
			events.Conn.ServerError(kind, serverErr.Reason)
			return musing.Response{Request: req, Payload: musing.Failure{Reason: serverErr.Error()}}, true, nil
		}
		return musing.Response{}, false, fmt.Errorf("receive %s: %w", kind, err)
	}
	events.Conn.Reply(kind, len(raw))

	payload, err := req.Decode(raw)
	if err != nil {
		return musing.Response{Request: req, Payload: musing.Failure{Reason: err.Error()}}, true, nil
	}
	if payload == nil {
		return musing.Response{}, false, nil
	}
	return musing.Response{Request: req, Payload: payload}, true, nil
}

func (c *Conn) fail(err error) {
	select {
	case <-c.done:
		err = ErrClosed
	default:
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
	_ = c.conn.Close()
	events.Conn.Exit(err)
}
