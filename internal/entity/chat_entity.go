package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatSenderUser = "user"
	ChatSenderBot  = "bot"
)

type ChatSession struct {
	Id        uuid.UUID
	SessionId string
	UserId    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type ChatMessage struct {
	Id              uuid.UUID
	SessionId       string
	Sender          string
	Message         string
	Classifications *Classification
	Metadata        map[string]interface{}
	CreatedAt       time.Time
}
