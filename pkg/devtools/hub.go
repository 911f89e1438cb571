// Package devtools streams serialized router states to debugging clients.
//
// Every recorded state is broadcast over WebSocket and kept in a bounded
// history. A client that connects late first receives the history in order,
// which lets it step back through earlier navigations.
package devtools

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/vango-dev/routerstore/pkg/routerstore"
)

// MessageType represents the type of devtools message.
type MessageType string

const (
	// MessageState carries one serialized router state.
	MessageState MessageType = "state"
)

// Message is sent to debugging clients via WebSocket.
type Message struct {
	Type       MessageType      `json:"type"`
	Seq        uint64           `json:"seq"`
	Serializer routerstore.Kind `json:"serializer"`
	URL        string           `json:"url"`
	Time       time.Time        `json:"time"`
	State      any              `json:"state"`
}

// client serializes writes to one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages debugging client connections and the state history.
type Hub struct {
	clients  map[*client]bool
	history  []Message
	limit    int
	seq      uint64
	mu       sync.RWMutex
	sendMu   sync.Mutex // orders broadcasts by seq
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates a hub that keeps the last limit states. A limit of zero
// disables history replay.
func NewHub(limit int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]bool),
		limit:   limit,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // Debugging extensions connect from arbitrary origins
			},
		},
	}
}

// HandleWebSocket upgrades the connection, replays the history and keeps the
// client registered until it disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Warn("devtools upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	// Hold the client's write lock across registration and replay so that
	// broadcasts reach it only after the history it was registered with.
	c.mu.Lock()
	h.mu.Lock()
	h.clients[c] = true
	replay := append([]Message(nil), h.history...)
	h.mu.Unlock()

	for _, msg := range replay {
		data, err := routerstore.Encode(msg, false)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	c.mu.Unlock()

	h.logger.Debug("devtools client connected", "remote", req.RemoteAddr, "replayed", len(replay))

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
}

// Record appends a serialized state to the history and broadcasts it.
func (h *Hub) Record(kind routerstore.Kind, url string, state any) Message {
	h.sendMu.Lock()
	defer h.sendMu.Unlock()

	h.mu.Lock()
	h.seq++
	msg := Message{
		Type:       MessageState,
		Seq:        h.seq,
		Serializer: kind,
		URL:        url,
		Time:       time.Now().UTC(),
		State:      state,
	}
	if h.limit > 0 {
		h.history = append(h.history, msg)
		if over := len(h.history) - h.limit; over > 0 {
			h.history = append([]Message(nil), h.history[over:]...)
		}
	}
	clients := lo.Keys(h.clients)
	h.mu.Unlock()

	data, err := routerstore.Encode(msg, false)
	if err != nil {
		h.logger.Error("devtools encode failed", "seq", msg.Seq, "error", err)
		return msg
	}

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.remove(c)
		}
	}
	return msg
}

// History returns a copy of the recorded states, oldest first.
func (h *Hub) History() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Message{}, h.history...)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}
