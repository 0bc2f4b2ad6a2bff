package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	tests := []struct {
		eventType  EventType
		entityType EntityType
		wantType   string
	}{
		{EventTypeCreated, EntityTypeExpense, "expense.created"},
		{EventTypeUpdated, EntityTypePayment, "payment.updated"},
		{EventTypeDeleted, EntityTypeClient, "client.deleted"},
		{EventTypeCreated, EntityTypeEmployee, "employee.created"},
	}

	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			before := time.Now().UTC()
			event := NewEvent(tt.eventType, tt.entityType, nil)

			assert.Equal(t, tt.wantType, event.Type)
			assert.Equal(t, tt.entityType, event.Entity)
			assert.False(t, event.Timestamp.Before(before))
			assert.Equal(t, time.UTC, event.Timestamp.Location())
		})
	}
}

func TestEvent_ToJSON(t *testing.T) {
	event := NewEvent(EventTypeDeleted, EntityTypeExpense, DeletedPayload{ID: "3f0c"})

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "expense.deleted", decoded["type"])
	assert.Equal(t, "expense", decoded["entity"])
	assert.Equal(t, map[string]interface{}{"id": "3f0c"}, decoded["payload"])
	assert.Contains(t, decoded, "timestamp")
}
