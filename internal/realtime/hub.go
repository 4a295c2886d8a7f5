package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/apex/log"
)

// Event types published by the admin API.
const (
	EventCacherExpired    = "cacher.expired"
	EventCacherConfigured = "cacher.configured"
	EventLookupSaved      = "lookup.saved"
	EventLookupDeleted    = "lookup.deleted"
)

// Event describes an administrative change to a cache.
type Event struct {
	Type   string    `json:"type"`
	Cacher string    `json:"cacher,omitempty"`
	Key    string    `json:"key,omitempty"`
	By     string    `json:"by,omitempty"`
	At     time.Time `json:"at"`
}

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains subscribed connections and broadcasts events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[Client]struct{})}
}

// Register adds a client.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Len is the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish stamps the event if needed and sends it to every client.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	message, err := json.Marshal(e)
	if err != nil {
		log.WithError(err).Warn("failed to encode event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if ok := c.Send(message); !ok {
			// write failed; the handler unregisters it when its read loop ends
			log.WithField("type", e.Type).Debug("event not delivered to a client")
		}
	}
}
