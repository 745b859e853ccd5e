package events

import (
	"context"
	"time"

	"solosolver-be/internal/entity"
)

const ComplaintAnalyzed = "COMPLAINT_ANALYZED"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "COMPLAINT_ANALYZED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to an external bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewComplaintAnalyzed summarizes a persisted interaction. The complaint text
// and generated reply stay in the store.
func NewComplaintAnalyzed(record *entity.InteractionRecord) BaseEvent {
	occurredAt := record.CreatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return BaseEvent{
		Type: ComplaintAnalyzed,
		Data: map[string]interface{}{
			"event_type":            ComplaintAnalyzed,
			"interaction_id":        record.Id.String(),
			"user_id":               record.UserId,
			"session_id":            record.SessionId,
			"status":                string(record.Status),
			"complaint_category":    string(record.Classification.Category),
			"decision":              string(record.Classification.RecommendedDecision),
			"refund_percentage":     record.Classification.RefundPercentage,
			"sentiment":             string(record.Classification.Sentiment),
			"aggression":            string(record.Classification.Aggression),
			"classification_source": string(record.Classification.Source),
			"matched_transactions":  len(record.MatchedTransactions),
			"occurred_at":           occurredAt.UTC().Format(time.RFC3339),
		},
		OccurredAt: occurredAt,
	}
}

// NoopPublisher drops every event. Used when no bus is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
