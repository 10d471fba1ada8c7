package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one server-sent event for the local UI.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is a subscriber's outgoing queue. The SSE handler drains it.
type Client chan []byte

// ClientBuffer is the number of events a slow client may fall behind by
// before further events are dropped for it.
const ClientBuffer = 16

// Hub fans lobby events out to every subscribed UI client. The last event of
// each type is kept so a new client starts from the current state.
type Hub struct {
	clients map[Client]bool
	last    map[string][]byte
	order   []string
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[Client]bool),
		last:    make(map[string][]byte),
	}
}

// Subscribe registers a new client and queues the latest event of every type for it.
func (h *Hub) Subscribe() Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := make(Client, ClientBuffer)
	for _, t := range h.order {
		select {
		case client <- h.last[t]:
		default:
		}
	}
	h.clients[client] = true
	return client
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client) // Signals the SSE handler to stop.
	}
}

// Clients returns the number of subscribed clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends an event to all clients.
func (h *Hub) Publish(eventType string, payload any) {
	messageBytes, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("[HUB] Dropping %s event: %v", eventType, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, seen := h.last[eventType]; !seen {
		h.order = append(h.order, eventType)
	}
	h.last[eventType] = messageBytes

	for client := range h.clients {
		// Non-blocking so a slow client cannot stall the lobby.
		select {
		case client <- messageBytes:
		default:
		}
	}
}
