package control

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/frudas24/deskcontrol/internal/event"
	"github.com/frudas24/deskcontrol/internal/session"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Pusher accepts control events for delivery to the peer.
type Pusher interface {
	Push(ev event.Event) error
}

// Server handles websocket control input.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	sink     Pusher
	log      zerolog.Logger
	conn     *websocket.Conn
}

// NewServer creates a control websocket server feeding sink.
func NewServer(sess *session.Session, sink Pusher, log zerolog.Logger) *Server {
	return &Server{
		session: sess,
		sink:    sink,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.log.Debug().Err(err).Msg("control connection rejected")
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(msg); err != nil {
			s.log.Warn().Err(err).Msg("control event dropped, closing connection")
			return
		}
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// handleMessage dispatches a single control message. Only a failed push is
// returned; malformed input is logged and skipped.
func (s *Server) handleMessage(msg Message) error {
	if msg.T == "inputEnabled" {
		if msg.Enabled != nil {
			s.session.SetInputEnabled(*msg.Enabled)
		}
		return nil
	}
	if !s.session.InputEnabled() {
		return nil
	}

	events, err := Translate(msg, s.session.ScreenSize())
	if err != nil {
		s.log.Debug().Err(err).Str("type", msg.T).Msg("ignoring control message")
		return nil
	}
	for _, ev := range events {
		if err := s.sink.Push(ev); err != nil {
			return fmt.Errorf("push %s event: %w", ev.Kind(), err)
		}
	}
	return nil
}
