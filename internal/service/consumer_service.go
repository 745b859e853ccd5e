package service

import (
	"context"
	"fmt"
	"time"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/repository/specification"
	"solosolver-be/internal/repository/unitofwork"
	"solosolver-be/pkg/complaint/recorder"
	"solosolver-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v5"
)

const (
	persistTries   = 3
	publishTimeout = 5 * time.Second
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService persists interactions dispatched by the recorder and fans
// out a COMPLAINT_ANALYZED event for each stored one.
type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
	initialBackoff time.Duration
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
		initialBackoff: 200 * time.Millisecond,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: the in-process bus redelivers nacked messages
// immediately, so retries happen here with backoff instead.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	record, err := recorder.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("RECORDER", "Dropping undecodable interaction", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = cs.initialBackoff
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, cs.persist(ctx, record)
	},
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(persistTries),
	)
	if err != nil {
		cs.logger.Error("RECORDER", "Failed to persist interaction", map[string]interface{}{
			"interaction_id": record.Id.String(),
			"user_id":        record.UserId,
			"error":          err.Error(),
		})
		return
	}

	cs.logger.Info("RECORDER", "Interaction persisted", map[string]interface{}{
		"interaction_id": record.Id.String(),
		"status":         string(record.Status),
	})

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := cs.eventPublisher.Publish(pubCtx, events.NewComplaintAnalyzed(record)); err != nil {
		cs.logger.Warn("EVENTS", "Failed to publish complaint event", map[string]interface{}{
			"interaction_id": record.Id.String(),
			"error":          err.Error(),
		})
	}
}

// persist writes the audit row and, for chat sessions, the transcript in one transaction.
func (cs *consumerService) persist(ctx context.Context, record *entity.InteractionRecord) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback()
		}
	}()

	if err := uow.InteractionRepository().Create(ctx, record); err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}

	if record.SessionId != "" {
		if err := cs.writeTranscript(ctx, uow, record); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

func (cs *consumerService) writeTranscript(ctx context.Context, uow unitofwork.UnitOfWork, record *entity.InteractionRecord) error {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: record.SessionId})
	if err != nil {
		return fmt.Errorf("find chat session: %w", err)
	}
	if session == nil {
		err = uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
			SessionId: record.SessionId,
			UserId:    record.UserId,
		})
	} else {
		err = uow.ChatSessionRepository().Touch(ctx, record.SessionId)
	}
	if err != nil {
		return fmt.Errorf("upsert chat session: %w", err)
	}

	classification := record.Classification
	messages := []*entity.ChatMessage{
		{
			SessionId: record.SessionId,
			Sender:    entity.ChatSenderUser,
			Message:   record.ComplaintText,
			Metadata:  map[string]interface{}{"user_id": record.UserId},
			CreatedAt: record.CreatedAt,
		},
		{
			SessionId:       record.SessionId,
			Sender:          entity.ChatSenderBot,
			Message:         record.GeneratedResponse,
			Classifications: &classification,
			Metadata: map[string]interface{}{
				"interaction_id":      record.Id.String(),
				"status":              string(record.Status),
				"user_profile":        record.ProfileSummary,
				"transaction_context": record.HistorySummary,
			},
			CreatedAt: record.CreatedAt.Add(time.Millisecond),
		},
	}
	for _, m := range messages {
		if err := uow.ChatMessageRepository().Create(ctx, m); err != nil {
			return fmt.Errorf("insert chat message: %w", err)
		}
	}
	return nil
}
