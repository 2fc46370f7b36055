package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dukerupert/mealbook/internal/model"
)

// Message is the snapshot envelope pushed to connected clients. Every
// committed mutation produces one carrying the full member list.
type Message struct {
	Type    string         `json:"type"`
	Members []model.Member `json:"members"`
}

// MembersMessage wraps a member snapshot for broadcast.
func MembersMessage(members []model.Member) Message {
	return Message{Type: "members", Members: members}
}

// Hub maintains the set of active WebSocket clients and broadcasts
// snapshots to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		c.enqueue(data)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
