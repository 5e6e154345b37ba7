package realtime

import (
	"sync"
)

// TopicAll receives every event regardless of category.
const TopicAll = "all"

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains live subscribers per topic and fans events out to them.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[Client]struct{})}
}

// Register adds a client under a topic.
func (h *Hub) Register(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[Client]struct{})
	}
	h.topics[topic][client] = struct{}{}
}

// Unregister removes a client; if the topic has no more clients, cleans up map.
func (h *Hub) Unregister(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.topics[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Broadcast sends a message to all clients of a topic and returns how many
// received it. Clients whose send fails are dropped from the topic.
func (h *Hub) Broadcast(topic string, message []byte) int {
	h.mu.RLock()
	clients := make([]Client, 0, len(h.topics[topic]))
	for c := range h.topics[topic] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range clients {
		if c.Send(message) {
			delivered++
			continue
		}
		h.Unregister(topic, c)
	}
	return delivered
}

// Subscribers returns the number of clients registered under topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
