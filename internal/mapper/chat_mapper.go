package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        s.Id,
		SessionId: s.SessionId,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        s.Id,
		SessionId: s.SessionId,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) (*model.ChatMessage, error) {
	if msg == nil {
		return nil, nil
	}

	out := &model.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Sender:    msg.Sender,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}

	if msg.Classifications != nil {
		b, err := json.Marshal(msg.Classifications)
		if err != nil {
			return nil, fmt.Errorf("marshal classifications: %w", err)
		}
		out.Classifications = datatypes.JSON(b)
	}
	if msg.Metadata != nil {
		b, err := json.Marshal(msg.Metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		out.Metadata = datatypes.JSON(b)
	}
	return out, nil
}
