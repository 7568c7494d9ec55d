package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		name     string
		et       EventType
		expected string
	}{
		{"completed", EventTypeCompleted, "completed"},
		{"failed", EventTypeFailed, "failed"},
		{"overridden", EventTypeOverridden, "overridden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestEntityType_String(t *testing.T) {
	tests := []struct {
		name     string
		et       EntityType
		expected string
	}{
		{"score", EntityTypeScore, "score"},
		{"dispatch", EntityTypeDispatch, "dispatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"userId":     "user-1",
		"blinkScore": 91.25,
	}

	before := time.Now()
	evt := NewEvent(EventTypeCompleted, EntityTypeScore, payload)
	after := time.Now()

	assert.Equal(t, "score.completed", evt.Type)
	assert.Equal(t, EntityTypeScore, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"userId":     "user-1",
		"blinkScore": float64(91),
	}

	evt := Event{
		Type:      "score.completed",
		Entity:    EntityTypeScore,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded Event
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime.UTC(), decoded.Timestamp.UTC())

	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user-1", decodedPayload["userId"])
	assert.Equal(t, float64(91), decodedPayload["blinkScore"])
}

func TestEvent_ToJSON(t *testing.T) {
	payload := map[string]interface{}{
		"userId": "user-42",
	}

	evt := ScoreFailed(payload)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var decoded map[string]interface{}
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "score.failed", decoded["type"])
	assert.Equal(t, "score", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestScoreEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"userId": "user-7"}

	t.Run("ScoreCompleted", func(t *testing.T) {
		evt := ScoreCompleted(payload)
		assert.Equal(t, "score.completed", evt.Type)
		assert.Equal(t, EntityTypeScore, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("ScoreFailed", func(t *testing.T) {
		evt := ScoreFailed(payload)
		assert.Equal(t, "score.failed", evt.Type)
		assert.Equal(t, EntityTypeScore, evt.Entity)
	})

	t.Run("ScoreOverridden", func(t *testing.T) {
		evt := ScoreOverridden(payload)
		assert.Equal(t, "score.overridden", evt.Type)
		assert.Equal(t, EntityTypeScore, evt.Entity)
	})
}

func TestDispatchCompleted(t *testing.T) {
	payload := map[string]interface{}{"usersScored": float64(12)}
	evt := DispatchCompleted(payload)
	assert.Equal(t, "dispatch.completed", evt.Type)
	assert.Equal(t, EntityTypeDispatch, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
}
