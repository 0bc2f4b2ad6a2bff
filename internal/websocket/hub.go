package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	PrincipalID() string
	Send(data []byte) error
	Close() error
}

// Hub manages WebSocket connections organized by principal.
// It is safe for concurrent use.
type Hub struct {
	// principals maps principal ID to a map of client ID to client
	principals map[string]map[string]ClientInterface
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		principals: make(map[string]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its principal
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	principalID := client.PrincipalID()
	if h.principals[principalID] == nil {
		h.principals[principalID] = make(map[string]ClientInterface)
	}
	h.principals[principalID][client.ID()] = client

	log.Debug().
		Str("principal_id", principalID).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	principalID := client.PrincipalID()
	clients, ok := h.principals[principalID]
	if !ok {
		return
	}
	if _, exists := clients[client.ID()]; !exists {
		return
	}

	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.principals, principalID)
	}

	log.Debug().
		Str("principal_id", principalID).
		Str("client_id", client.ID()).
		Msg("WebSocket client unregistered")
}

// Broadcast sends an event to every client of one principal
func (h *Hub) Broadcast(principalID string, event Event) {
	h.mu.RLock()
	targets := make([]ClientInterface, 0, len(h.principals[principalID]))
	for _, client := range h.principals[principalID] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	h.send(targets, event)
}

// BroadcastAll sends an event to every connected client
func (h *Hub) BroadcastAll(event Event) {
	h.mu.RLock()
	targets := make([]ClientInterface, 0)
	for _, clients := range h.principals {
		for _, client := range clients {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	h.send(targets, event)
}

// send delivers event to targets asynchronously, outside the hub lock
func (h *Hub) send(targets []ClientInterface, event Event) {
	if len(targets) == 0 {
		return
	}

	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	for _, client := range targets {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Str("principal_id", c.PrincipalID()).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Str("event_type", event.Type).
		Int("client_count", len(targets)).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients connected for a principal
func (h *Hub) ClientCount(principalID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.principals[principalID])
}

// TotalClientCount returns the total number of connected clients
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.principals {
		total += len(clients)
	}
	return total
}
