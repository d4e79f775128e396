package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// client is one websocket connection. Writes are serialized by mu since a
// gorilla connection supports one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex

	// lastEvent is the highest event sequence number seen; the read loop is
	// its only user.
	lastEvent uint64
}

func (c *client) write(data []byte, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(timeout))
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Hub tracks the websocket clients of a session.
type Hub struct {
	clients      map[*client]bool
	mu           sync.RWMutex
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	metrics      *Metrics
	logger       *slog.Logger
}

// NewHub creates a hub. cfg must have its defaults applied.
func NewHub(cfg *Config) *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
		writeTimeout: cfg.WriteTimeout,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
	}
}

func (h *Hub) upgrade(w http.ResponseWriter, r *http.Request) (*client, error) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &client{conn: conn}, nil
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	h.metrics.connected(1)
	h.logger.Debug("client connected", "remote", c.conn.RemoteAddr().String())
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		h.metrics.connected(-1)
		c.conn.Close()
		h.logger.Debug("client disconnected", "remote", c.conn.RemoteAddr().String())
	}
}

// Broadcast sends data to every client, dropping those whose write fails.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data, h.writeTimeout); err != nil {
			h.logger.Warn("dropping client", "error", err)
			h.metrics.wsError("write")
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes every client connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
		h.metrics.connected(-1)
	}
}
