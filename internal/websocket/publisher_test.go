package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_ImplementsEventPublisher(t *testing.T) {
	var publisher EventPublisher = NewHub()
	assert.NotNil(t, publisher)
}

func TestHub_Publish(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1", "auth0|alice")
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish("auth0|alice", NewEvent(EventTypeCreated, EntityTypeExpense, nil))
	publisher.PublishAll(NewEvent(EventTypeCreated, EntityTypePayment, nil))

	require.Eventually(t, func() bool {
		return len(client.GetMessages()) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestNoOpPublisher(t *testing.T) {
	publisher := &NoOpPublisher{}

	assert.NotPanics(t, func() {
		publisher.Publish("auth0|alice", NewEvent(EventTypeCreated, EntityTypeExpense, nil))
		publisher.PublishAll(NewEvent(EventTypeCreated, EntityTypePayment, nil))
	})
}
