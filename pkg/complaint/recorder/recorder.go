package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Recorder hands an interaction off for persistence. Record never blocks on the
// store and never reports failure to the caller.
type Recorder interface {
	Record(ctx context.Context, record *entity.InteractionRecord)
}

// InteractionMessage is the wire form of an InteractionRecord on the bus.
type InteractionMessage struct {
	Id                      uuid.UUID                `json:"id"`
	SessionId               string                   `json:"session_id,omitempty"`
	UserId                  string                   `json:"user_id"`
	ComplaintText           string                   `json:"complaint_text"`
	Classification          entity.Classification    `json:"classification"`
	ClassificationReasoning string                   `json:"classification_reasoning"`
	GeneratedResponse       string                   `json:"generated_response"`
	GenerationReasoning     string                   `json:"generation_reasoning"`
	MatchedTransactions     []entity.Transaction     `json:"matched_transactions"`
	Status                  entity.InteractionStatus `json:"status"`
	CreatedAt               time.Time                `json:"created_at"`
	ProfileSummary          string                   `json:"profile_summary,omitempty"`
	HistorySummary          string                   `json:"history_summary,omitempty"`
}

func Encode(record *entity.InteractionRecord) ([]byte, error) {
	return json.Marshal(InteractionMessage{
		Id:                      record.Id,
		SessionId:               record.SessionId,
		UserId:                  record.UserId,
		ComplaintText:           record.ComplaintText,
		Classification:          record.Classification,
		ClassificationReasoning: record.ClassificationReasoning,
		GeneratedResponse:       record.GeneratedResponse,
		GenerationReasoning:     record.GenerationReasoning,
		MatchedTransactions:     record.MatchedTransactions,
		Status:                  record.Status,
		CreatedAt:               record.CreatedAt,
		ProfileSummary:          record.ProfileSummary,
		HistorySummary:          record.HistorySummary,
	})
}

func Decode(payload []byte) (*entity.InteractionRecord, error) {
	var m InteractionMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("failed to decode interaction message: %w", err)
	}
	if m.UserId == "" {
		return nil, fmt.Errorf("failed to decode interaction message: missing user_id")
	}
	return &entity.InteractionRecord{
		Id:                      m.Id,
		SessionId:               m.SessionId,
		UserId:                  m.UserId,
		ComplaintText:           m.ComplaintText,
		Classification:          m.Classification,
		ClassificationReasoning: m.ClassificationReasoning,
		GeneratedResponse:       m.GeneratedResponse,
		GenerationReasoning:     m.GenerationReasoning,
		MatchedTransactions:     m.MatchedTransactions,
		Status:                  m.Status,
		CreatedAt:               m.CreatedAt,
		ProfileSummary:          m.ProfileSummary,
		HistorySummary:          m.HistorySummary,
	}, nil
}

// BusRecorder publishes records on a watermill topic. The consumer service
// subscribed to the same topic does the writing.
type BusRecorder struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

var _ Recorder = &BusRecorder{}

func NewBusRecorder(publisher message.Publisher, topic string, log logger.ILogger) *BusRecorder {
	return &BusRecorder{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

func (r *BusRecorder) Record(ctx context.Context, record *entity.InteractionRecord) {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	payload, err := Encode(record)
	if err != nil {
		r.logger.Error("RECORDER", "Failed to encode interaction", map[string]interface{}{
			"interaction_id": record.Id.String(),
			"error":          err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("user_id", record.UserId)

	if err := r.publisher.Publish(r.topic, msg); err != nil {
		r.logger.Error("RECORDER", "Failed to publish interaction", map[string]interface{}{
			"interaction_id": record.Id.String(),
			"topic":          r.topic,
			"error":          err.Error(),
		})
		return
	}

	r.logger.Debug("RECORDER", "Interaction dispatched", map[string]interface{}{
		"interaction_id": record.Id.String(),
		"status":         string(record.Status),
	})
}
