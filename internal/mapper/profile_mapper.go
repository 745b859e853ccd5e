package mapper

import (
	"solosolver-be/internal/entity"
	"solosolver-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

// ToEntity maps the stored profile row. Purchase figures are filled in from
// transaction aggregates by the caller.
func (m *ProfileMapper) ToEntity(p *model.Profile) *entity.UserProfile {
	if p == nil {
		return nil
	}

	out := &entity.UserProfile{
		UserId:              p.UserId,
		Name:                deref(p.Name),
		IsChronicComplainer: p.IsChronicComplainer != nil && *p.IsChronicComplainer,
		IsAggressive:        p.IsAggressiveTendency != nil && *p.IsAggressiveTendency,
	}
	if p.AvgSatisfactionRating != nil {
		out.AvgRating = *p.AvgSatisfactionRating
	}
	if p.ComplaintCount != nil {
		out.ComplaintCount = *p.ComplaintCount
	}
	if p.TotalPurchaseValue != nil {
		out.TotalPurchaseValue = *p.TotalPurchaseValue
	}
	return out
}
