package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vrplab/engine/solver"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeWait = 2 * time.Second

// WebSocketSink broadcasts each GenerationMetrics as JSON to every client
// currently connected on its /ws endpoint, so a dashboard can watch a run
// progress live instead of polling a log file. Clients are a registered
// set, not a single assumed connection - a dashboard reconnecting mid-run
// is a real scenario here.
type WebSocketSink struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewWebSocketSink returns an empty sink; call ServeHTTP from an
// http.ServeMux to start accepting connections.
func NewWebSocketSink() *WebSocketSink {
	return &WebSocketSink{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// broadcast target until the connection closes.
func (s *WebSocketSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("telemetry: upgrade:", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Drain and discard anything the client sends; this connection is
	// publish-only. The loop's only purpose is to notice closure.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *WebSocketSink) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Report implements solver.Telemetry, broadcasting m to every connected
// client and dropping any that fail to accept the write.
func (s *WebSocketSink) Report(m solver.GenerationMetrics) {
	s.broadcast(m)
}

// ReportInitial implements solver.InitialReporter, broadcasting startup
// seeding progress the same way generations are.
func (s *WebSocketSink) ReportInitial(m solver.InitialMetrics) {
	s.broadcast(m)
}

func (s *WebSocketSink) broadcast(m interface{}) {
	payload, err := json.Marshal(m)
	if err != nil {
		log.Println("telemetry: marshal:", err)
		return
	}

	s.mu.Lock()
	targets := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		targets = append(targets, conn)
	}
	s.mu.Unlock()

	for _, conn := range targets {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.drop(conn)
		}
	}
}
