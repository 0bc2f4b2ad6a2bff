package websocket

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all clients connected for the principal
	Publish(principalID string, event Event)
	// PublishAll sends an event to every connected client
	PublishAll(event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher
func (h *Hub) Publish(principalID string, event Event) {
	h.Broadcast(principalID, event)
}

// PublishAll implements EventPublisher
func (h *Hub) PublishAll(event Event) {
	h.BroadcastAll(event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(principalID string, event Event) {}

// PublishAll does nothing
func (n *NoOpPublisher) PublishAll(event Event) {}
