package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"solosolver-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMessage(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := events.BaseEvent{
		Type:       events.ComplaintAnalyzed,
		Data:       map[string]interface{}{"user_id": "u1", "status": "success"},
		OccurredAt: at,
	}

	msg, err := toMessage(ev)

	require.NoError(t, err)
	assert.Equal(t, []byte("u1"), msg.Key)
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "COMPLAINT_ANALYZED", string(msg.Headers[0].Value))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "success", body["status"])
}

func TestToMessage_UnmarshalablePayload(t *testing.T) {
	ev := events.BaseEvent{Data: map[string]interface{}{"bad": make(chan int)}}
	_, err := toMessage(ev)
	assert.Error(t, err)
}
