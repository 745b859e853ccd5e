package mapper

import (
	"encoding/json"
	"fmt"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/model"

	"gorm.io/datatypes"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToModel(r *entity.InteractionRecord) (*model.AIInteraction, error) {
	if r == nil {
		return nil, nil
	}

	classification, err := json.Marshal(r.Classification)
	if err != nil {
		return nil, fmt.Errorf("marshal classification: %w", err)
	}

	matched := r.MatchedTransactions
	if matched == nil {
		matched = []entity.Transaction{}
	}
	matchedJSON, err := json.Marshal(matched)
	if err != nil {
		return nil, fmt.Errorf("marshal matched transactions: %w", err)
	}

	var sessionId *string
	if r.SessionId != "" {
		s := r.SessionId
		sessionId = &s
	}

	return &model.AIInteraction{
		Id:                      r.Id,
		SessionId:               sessionId,
		UserId:                  r.UserId,
		ComplaintText:           r.ComplaintText,
		Classification:          datatypes.JSON(classification),
		ClassificationReasoning: r.ClassificationReasoning,
		GeneratedResponse:       r.GeneratedResponse,
		GenerationReasoning:     r.GenerationReasoning,
		MatchedTransactions:     datatypes.JSON(matchedJSON),
		Status:                  string(r.Status),
		CreatedAt:               r.CreatedAt,
	}, nil
}

func (m *InteractionMapper) ToEntity(i *model.AIInteraction) *entity.InteractionRecord {
	if i == nil {
		return nil
	}

	out := &entity.InteractionRecord{
		Id:                      i.Id,
		SessionId:               deref(i.SessionId),
		UserId:                  i.UserId,
		ComplaintText:           i.ComplaintText,
		ClassificationReasoning: i.ClassificationReasoning,
		GeneratedResponse:       i.GeneratedResponse,
		GenerationReasoning:     i.GenerationReasoning,
		Status:                  entity.InteractionStatus(i.Status),
		CreatedAt:               i.CreatedAt,
	}
	// Corrupt json columns leave zero values rather than failing a listing.
	if len(i.Classification) > 0 {
		_ = json.Unmarshal(i.Classification, &out.Classification)
	}
	if len(i.MatchedTransactions) > 0 {
		_ = json.Unmarshal(i.MatchedTransactions, &out.MatchedTransactions)
	}
	return out
}
