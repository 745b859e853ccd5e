package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AIInteraction struct {
	Id                      uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId               *string        `gorm:"type:text;index"`
	UserId                  string         `gorm:"type:text;not null;index"`
	ComplaintText           string         `gorm:"type:text;not null"`
	Classification          datatypes.JSON `gorm:"type:jsonb"`
	ClassificationReasoning string         `gorm:"type:text"`
	GeneratedResponse       string         `gorm:"type:text"`
	GenerationReasoning     string         `gorm:"type:text"`
	MatchedTransactions     datatypes.JSON `gorm:"type:jsonb"`
	Status                  string         `gorm:"type:varchar(20);not null"`
	CreatedAt               time.Time      `gorm:"autoCreateTime;index"`
}

func (AIInteraction) TableName() string {
	return "ai_interactions"
}
