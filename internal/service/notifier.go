package service

import (
	"github.com/dafibh/backoffice/backoffice-backend/internal/metrics"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
)

// notifier fans a record write out to realtime clients and metrics. The zero
// value does nothing.
type notifier struct {
	eventPublisher websocket.EventPublisher
	metrics        metrics.Recorder
}

// SetEventPublisher sets the event publisher for real-time updates
func (n *notifier) SetEventPublisher(publisher websocket.EventPublisher) {
	n.eventPublisher = publisher
}

// SetMetrics sets the recorder for mutation counts
func (n *notifier) SetMetrics(recorder metrics.Recorder) {
	n.metrics = recorder
}

// notifyOwner tells the principal's own connections about a write
func (n *notifier) notifyOwner(principalID string, eventType websocket.EventType, entity websocket.EntityType, payload interface{}) {
	n.record(entity, eventType)
	if n.eventPublisher != nil {
		n.eventPublisher.Publish(principalID, websocket.NewEvent(eventType, entity, payload))
	}
}

// notifyAll tells every connection about a write to a shared record
func (n *notifier) notifyAll(eventType websocket.EventType, entity websocket.EntityType, payload interface{}) {
	n.record(entity, eventType)
	if n.eventPublisher != nil {
		n.eventPublisher.PublishAll(websocket.NewEvent(eventType, entity, payload))
	}
}

func (n *notifier) record(entity websocket.EntityType, eventType websocket.EventType) {
	if n.metrics != nil {
		n.metrics.IncrementMutation(string(entity), string(eventType))
	}
}
