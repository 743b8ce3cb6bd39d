// Package telemetry serves a read-only, once-per-frame JSON snapshot of
// the machine's state over a websocket, for external tooling to observe
// without touching the core. The in-process inspector window receives the
// same Snapshot value directly rather than over the websocket.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Snapshot is the published state: registers, flags, and the PPU's
// position, matching the narrow read-only contract the core exposes to
// external collaborators.
type Snapshot struct {
	A uint8 `json:"a"`
	F uint8 `json:"f"`
	B uint8 `json:"b"`
	C uint8 `json:"c"`
	D uint8 `json:"d"`
	E uint8 `json:"e"`
	H uint8 `json:"h"`
	L uint8 `json:"l"`

	SP uint16 `json:"sp"`
	PC uint16 `json:"pc"`

	IME bool  `json:"ime"`
	IE  uint8 `json:"ie"`
	IF  uint8 `json:"if"`

	PPUMode    uint8  `json:"ppu_mode"`
	LY         uint8  `json:"ly"`
	FrameCount uint64 `json:"frame_count"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Server fans out the latest Snapshot to every connected websocket client.
// It reads from a client only to detect a disconnect; anything a client
// sends is discarded.
type Server struct {
	log *logrus.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer returns a Server with no clients connected yet.
func NewServer(log *logrus.Logger) *Server {
	return &Server{log: log, clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection for future Publish calls.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("telemetry: upgrade failed")
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	go s.drain(conn)
}

// drain discards anything a client sends and removes it once it closes;
// this is a broadcast-only protocol, so reads exist only to detect
// disconnects.
func (s *Server) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
			return
		}
	}
}

// Publish marshals snap and writes it to every connected client, dropping
// any client whose write fails.
func (s *Server) Publish(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.WithError(err).Warn("telemetry: marshal failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// ListenAndServe starts an HTTP server on addr with Server mounted at /ws.
// It runs until the listener fails and is meant to be launched in its own
// goroutine.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	return http.ListenAndServe(addr, mux)
}
