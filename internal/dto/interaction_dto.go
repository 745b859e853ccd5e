package dto

import (
	"time"

	"solosolver-be/internal/entity"

	"github.com/google/uuid"
)

type ListInteractionsRequest struct {
	UserId    string `query:"userId" validate:"omitempty,max=128"`
	SessionId string `query:"sessionId" validate:"omitempty,max=128"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
}

type InteractionResponse struct {
	Id                      uuid.UUID                `json:"id"`
	SessionId               string                   `json:"sessionId,omitempty"`
	UserId                  string                   `json:"userId"`
	ComplaintText           string                   `json:"complaintText"`
	Classification          entity.Classification    `json:"classification"`
	ClassificationReasoning string                   `json:"classificationReasoning"`
	GeneratedResponse       string                   `json:"generatedResponse"`
	GenerationReasoning     string                   `json:"generationReasoning"`
	MatchedTransactions     []entity.Transaction     `json:"matchedTransactions"`
	Status                  entity.InteractionStatus `json:"status"`
	CreatedAt               time.Time                `json:"createdAt"`
}

type ListInteractionsResponse struct {
	Items  []*InteractionResponse `json:"items"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}
