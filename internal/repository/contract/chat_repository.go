package contract

import (
	"context"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Touch(ctx context.Context, sessionId string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
