package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// WriteTimeout bounds how long one slow client may hold up a broadcast.
const WriteTimeout = 3 * time.Second

// Logger interface for logging abstraction
type Logger interface {
	Printf(format string, v ...interface{})
}

// Hub fans dungeon patches out to every connected viewer.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  Logger
}

func NewHub(logger Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{clients: make(map[*websocket.Conn]struct{}), logger: logger}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Printf("viewer connected (%d total)", n)
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes message to every viewer. Viewers that fail the write
// are closed and dropped.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		ctx, cancel := context.WithTimeout(context.Background(), WriteTimeout)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			h.logger.Printf("dropping viewer: %v", err)
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
}
