// Package testutil provides fake peer sockets for tests.
package testutil

import (
	"bytes"
	"errors"
	"sync"
)

// ErrSocketClosed is returned by FailingSocket once its budget is spent.
var ErrSocketClosed = errors.New("testutil: socket closed")

// Socket records every write. It is safe for concurrent use.
type Socket struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	writes int
}

// Write records p and reports it fully written.
func (s *Socket) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	return s.buf.Write(p)
}

// Bytes returns a copy of everything written so far.
func (s *Socket) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.buf.Bytes())
}

// Writes returns the number of Write calls.
func (s *Socket) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// ShortSocket accepts OK full writes, then reports one byte fewer than requested.
type ShortSocket struct {
	Socket
	OK int
}

// Write records p, truncating it once the OK budget is spent.
func (s *ShortSocket) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.writes > s.OK {
		n, _ := s.buf.Write(p[:len(p)-1])
		return n, nil
	}
	return s.buf.Write(p)
}

// FailingSocket accepts OK writes, then fails every later one.
type FailingSocket struct {
	Socket
	OK int
}

// Write records p or fails with ErrSocketClosed once the OK budget is spent.
func (s *FailingSocket) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.writes > s.OK {
		return 0, ErrSocketClosed
	}
	return s.buf.Write(p)
}

// GatedSocket blocks every write until Release is called, simulating a
// stalled network path. Entered receives once per write that starts.
type GatedSocket struct {
	Socket
	Entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

// NewGatedSocket returns a closed gate.
func NewGatedSocket() *GatedSocket {
	return &GatedSocket{
		Entered: make(chan struct{}, 1024),
		gate:    make(chan struct{}),
	}
}

// Write waits for the gate, then records p.
func (s *GatedSocket) Write(p []byte) (int, error) {
	select {
	case s.Entered <- struct{}{}:
	default:
	}
	<-s.gate
	return s.Socket.Write(p)
}

// Release opens the gate for all pending and future writes.
func (s *GatedSocket) Release() {
	s.once.Do(func() { close(s.gate) })
}
