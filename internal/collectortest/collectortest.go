// Package collectortest provides an in-process collector for tests.
//
// The server speaks the real wire protocol over real TCP sockets, records
// every entry it receives, and can be told to misbehave (close connections,
// return TRY_LATER) so client failure handling can be exercised.
package collectortest

import (
	"net"
	"sync"
	"testing"

	"github.com/patricklucas/yelp-clog/pkg/transport"
	"github.com/patricklucas/yelp-clog/pkg/wire"
)

// Server is a mock collector listening on a real TCP socket.
type Server struct {
	ln net.Listener

	mu      sync.Mutex
	entries []wire.Entry
	result  wire.ResultCode
	conns   int
	active  map[net.Conn]struct{}
	closed  bool

	wg sync.WaitGroup
}

// Start launches a mock collector on a random loopback port.
// The server is shut down automatically when the test finishes.
func Start(t testing.TB) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	s := &Server{
		ln:     ln,
		result: wire.ResultOK,
		active: make(map[net.Conn]struct{}),
	}

	s.wg.Add(1)
	go s.acceptLoop()

	t.Cleanup(func() { s.Close() })
	return s
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Host returns the listen host.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.ln.Addr().String())
	return host
}

// Port returns the listen port.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Entries returns a copy of all entries received so far, in arrival order.
func (s *Server) Entries() []wire.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]wire.Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Messages returns the payloads received for the given category.
func (s *Server) Messages(category string) [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result [][]byte
	for _, e := range s.entries {
		if e.Category == category {
			result = append(result, e.Message)
		}
	}
	return result
}

// ClearEntries discards all recorded entries.
func (s *Server) ClearEntries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// SetResult changes the result code returned for subsequent requests.
func (s *Server) SetResult(code wire.ResultCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = code
}

// ConnCount returns how many connections have been accepted.
func (s *Server) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// CloseActiveConns forcibly closes all live connections, so the client's
// next use of its connection fails.
func (s *Server) CloseActiveConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.active {
		conn.Close()
	}
}

// Close stops the server and closes all connections.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for conn := range s.active {
		conn.Close()
	}
	s.mu.Unlock()

	s.ln.Close()
	s.wg.Wait()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		nc, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			nc.Close()
			return
		}
		s.conns++
		s.active[nc] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handle(nc)
	}
}

func (s *Server) handle(nc net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.active, nc)
		s.mu.Unlock()
		nc.Close()
	}()

	conn := transport.NewConn(nc, 0, 0)
	for {
		frame, err := conn.Receive()
		if err != nil {
			return
		}

		req, err := wire.DecodeLogRequest(frame)
		if err != nil {
			return
		}

		s.mu.Lock()
		s.entries = append(s.entries, req.Entries...)
		code := s.result
		s.mu.Unlock()

		resp, err := wire.EncodeLogResponse(&wire.LogResponse{Result: code})
		if err != nil {
			return
		}
		if err := conn.Send(resp); err != nil {
			return
		}
	}
}
