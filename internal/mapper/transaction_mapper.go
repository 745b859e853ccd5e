package mapper

import (
	"solosolver-be/internal/entity"
	"solosolver-be/internal/model"

	"github.com/google/uuid"
)

type TransactionMapper struct{}

func NewTransactionMapper() *TransactionMapper {
	return &TransactionMapper{}
}

func (m *TransactionMapper) ToEntity(t *model.Transaction) *entity.Transaction {
	if t == nil {
		return nil
	}

	return &entity.Transaction{
		Id:                      t.Id.String(),
		UserId:                  t.UserId,
		ProductTitle:            deref(t.ProductTitle),
		ComplaintTitleText:      deref(t.ComplaintTitleText),
		ComplaintBodyText:       deref(t.ComplaintBodyText),
		RatingReview:            t.RatingReview,
		InferredComplaintDriver: deref(t.InferredComplaintDriver),
		MainCategory:            deref(t.MainCategory),
		Price:                   t.Price,
		VerifiedPurchaseReview:  t.VerifiedPurchaseReview != nil && *t.VerifiedPurchaseReview,
		TimestampReview:         derefInt64(t.TimestampReview),
		TimestampReviewDt:       t.TimestampReviewDt,
		CreatedAt:               t.CreatedAt,
	}
}

func (m *TransactionMapper) ToEntities(ts []*model.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, m.ToEntity(t))
	}
	return out
}

// ToModel is used by seeding and tests; the pipeline never writes transactions.
func (m *TransactionMapper) ToModel(t *entity.Transaction) *model.Transaction {
	if t == nil {
		return nil
	}

	id, _ := uuid.Parse(t.Id)
	verified := t.VerifiedPurchaseReview
	ts := t.TimestampReview

	return &model.Transaction{
		Id:                      id,
		UserId:                  t.UserId,
		ProductTitle:            ptr(t.ProductTitle),
		ComplaintTitleText:      ptr(t.ComplaintTitleText),
		ComplaintBodyText:       ptr(t.ComplaintBodyText),
		RatingReview:            t.RatingReview,
		InferredComplaintDriver: ptr(t.InferredComplaintDriver),
		MainCategory:            ptr(t.MainCategory),
		Price:                   t.Price,
		VerifiedPurchaseReview:  &verified,
		TimestampReview:         &ts,
		TimestampReviewDt:       t.TimestampReviewDt,
		CreatedAt:               t.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
