package model

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                string    `gorm:"type:text;not null;uniqueIndex"`
	Name                  *string   `gorm:"type:text"`
	Email                 *string   `gorm:"type:text"`
	AvgSatisfactionRating *float64  `gorm:"type:numeric"`
	ComplaintCount        *int64    `gorm:"type:integer"`
	TotalPurchaseValue    *float64  `gorm:"type:numeric"`
	IsChronicComplainer   *bool     `gorm:"type:boolean"`
	IsAggressiveTendency  *bool     `gorm:"type:boolean"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
