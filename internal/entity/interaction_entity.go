package entity

import (
	"time"

	"github.com/google/uuid"
)

type InteractionStatus string

const (
	InteractionStatusSuccess  InteractionStatus = "success"
	InteractionStatusFallback InteractionStatus = "fallback"
	InteractionStatusError    InteractionStatus = "error"
)

type InteractionRecord struct {
	Id                      uuid.UUID
	SessionId               string
	UserId                  string
	ComplaintText           string
	Classification          Classification
	ClassificationReasoning string
	GeneratedResponse       string
	GenerationReasoning     string
	MatchedTransactions     []Transaction
	Status                  InteractionStatus
	CreatedAt               time.Time

	// Carried to the chat transcript only; ai_interactions does not store them.
	ProfileSummary string
	HistorySummary string
}
