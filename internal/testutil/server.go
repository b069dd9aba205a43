package testutil

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/alfazet/amusing/internal/protocol"
)

// Handler produces the reply for one decoded request. Returning nil replies
// with {"status":"ok"}.
type Handler func(request map[string]any) any

// OK is the bare acknowledgement most requests get.
var OK = map[string]any{"status": "ok"}

// FakeServer speaks the musing wire protocol on a loopback listener.
type FakeServer struct {
	t        *testing.T
	ln       net.Listener
	version  string
	handler  Handler
	mu       sync.Mutex
	requests []map[string]any
	conns    []net.Conn
	wg       sync.WaitGroup
}

// StartFakeServer listens on 127.0.0.1 and serves every accepted connection
// until the test finishes.
func StartFakeServer(t *testing.T, version string, handler Handler) *FakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping: cannot listen on loopback: %v", err)
	}
	s := &FakeServer{t: t, ln: ln, version: version, handler: handler}
	s.wg.Add(1)
	go s.accept()
	t.Cleanup(s.Close)
	return s
}

// Addr is the host:port clients should dial.
func (s *FakeServer) Addr() string {
	return s.ln.Addr().String()
}

// Requests returns a copy of every request received so far.
func (s *FakeServer) Requests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.requests...)
}

// Kinds returns the kind of every request received so far.
func (s *FakeServer) Kinds() []string {
	requests := s.Requests()
	kinds := make([]string, len(requests))
	for i, req := range requests {
		kinds[i], _ = req["kind"].(string)
	}
	return kinds
}

// Close stops accepting and drops every open connection.
func (s *FakeServer) Close() {
	_ = s.ln.Close()
	s.mu.Lock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *FakeServer) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			Serve(conn, s.version, s.handle)
		}()
	}
}

func (s *FakeServer) handle(req map[string]any) any {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.handler == nil {
		return OK
	}
	return s.handler(req)
}

// Serve runs the server side of one connection: the version handshake, then
// one reply per request, until the peer goes away.
func Serve(conn net.Conn, version string, handler Handler) error {
	defer conn.Close()
	if err := protocol.WriteVersion(conn, version); err != nil {
		return err
	}
	for {
		payload, err := protocol.ReadFrame(conn)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		var req map[string]any
		if err := json.Unmarshal(payload, &req); err != nil {
			return err
		}
		reply := handler(req)
		if reply == nil {
			reply = OK
		}
		if raw, ok := reply.(json.RawMessage); ok {
			err = protocol.WriteFrame(conn, raw)
		} else {
			err = protocol.WriteJSON(conn, reply)
		}
		if err != nil {
			return err
		}
	}
}
