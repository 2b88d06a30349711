package wire

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"liap-tui-server/internal/config"
	"liap-tui-server/internal/registry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server wires the HTTP/WebSocket transport to the Dispatcher, grounded on
// gateway.Gateway's http.ServeMux + upgrader setup in apps/server/main.go.
type Server struct {
	reg        *registry.Registry
	dispatcher *Dispatcher
	grace      time.Duration
}

func NewServer(reg *registry.Registry, cfg config.RoomConfig) *Server {
	return &Server{
		reg:        reg,
		dispatcher: NewDispatcher(reg),
		grace:      cfg.ReconnectGrace,
	}
}

// Mux builds the HTTP handler: /ws for the game socket, /health for
// liveness, mirroring the teacher's main.go route layout.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	c := newConnection(conn, uuid.NewString())
	defer c.close()
	defer s.onDisconnect(c)

	for {
		frame, err := c.readFrame()
		if err != nil {
			return
		}
		s.dispatcher.Handle(c, frame)
	}
}

// onDisconnect marks the seat disconnected and, if the room is still
// waiting for the human to come back after grace elapses, promotes it to
// BOT_TAKEOVER — mirroring lobby.QuickStart's reconnect-or-replace-with-NPC
// handling of a dropped table seat.
func (s *Server) onDisconnect(c *Connection) {
	if c.RoomID == "" {
		return
	}
	a, ok := s.reg.Get(c.RoomID)
	if !ok {
		return
	}
	a.MarkDisconnected(c.Seat)
	if sink, ok := s.reg.Sink(c.RoomID); ok {
		sink.Detach(c.Seat)
	}
	if s.grace <= 0 {
		return
	}
	seat := c.Seat
	time.AfterFunc(s.grace, func() {
		a.ExpireGrace(seat)
	})
}

// ListenAndServe starts the HTTP server on addr, blocking until it errors.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("liap-tui-server listening on %s", addr)
	return http.ListenAndServe(addr, s.Mux())
}
