package events

import (
	"context"
	"testing"
	"time"

	"solosolver-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewComplaintAnalyzed(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	record := &entity.InteractionRecord{
		Id:        id,
		UserId:    "u1",
		SessionId: "s1",
		Status:    entity.InteractionStatusFallback,
		Classification: entity.Classification{
			Category:         entity.CategoryDamagedItem,
			RefundPercentage: 100,
			Source:           entity.SourceHeuristic,
		},
		MatchedTransactions: []entity.Transaction{{Id: "t1"}},
		CreatedAt:           created,
	}

	ev := NewComplaintAnalyzed(record)

	assert.Equal(t, ComplaintAnalyzed, ev.EventType())
	assert.Equal(t, created, ev.Timestamp())
	assert.Equal(t, id.String(), ev.Payload()["interaction_id"])
	assert.Equal(t, "Damaged Item", ev.Payload()["complaint_category"])
	assert.Equal(t, 100, ev.Payload()["refund_percentage"])
	assert.Equal(t, "heuristic", ev.Payload()["classification_source"])
	assert.Equal(t, 1, ev.Payload()["matched_transactions"])
	assert.Equal(t, "2024-03-01T10:00:00Z", ev.Payload()["occurred_at"])
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), BaseEvent{Type: ComplaintAnalyzed}))
	assert.NoError(t, p.Close())
}
