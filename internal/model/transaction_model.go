package model

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	Id                      uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                  string     `gorm:"type:text;not null;index"`
	ProductTitle            *string    `gorm:"type:text"`
	ComplaintTitleText      *string    `gorm:"type:text"`
	ComplaintBodyText       *string    `gorm:"type:text"`
	RatingReview            *float64   `gorm:"type:numeric"`
	InferredComplaintDriver *string    `gorm:"type:text;index"`
	MainCategory            *string    `gorm:"type:text"`
	Price                   *float64   `gorm:"type:numeric"`
	VerifiedPurchaseReview  *bool      `gorm:"type:boolean"`
	TimestampReview         *int64     `gorm:"type:bigint;index"`
	TimestampReviewDt       *time.Time `gorm:"type:timestamptz"`
	CreatedAt               time.Time  `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transaction_history"
}
