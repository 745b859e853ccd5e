package entity

import "time"

type Transaction struct {
	Id                      string     `json:"id"`
	UserId                  string     `json:"user_id"`
	ProductTitle            string     `json:"product_title"`
	ComplaintTitleText      string     `json:"complaint_title_text"`
	ComplaintBodyText       string     `json:"complaint_body_text"`
	RatingReview            *float64   `json:"rating_review"`
	InferredComplaintDriver string     `json:"inferred_complaint_driver"`
	MainCategory            string     `json:"main_category"`
	Price                   *float64   `json:"price"`
	VerifiedPurchaseReview  bool       `json:"verified_purchase_review"`
	TimestampReview         int64      `json:"timestamp_review"`
	TimestampReviewDt       *time.Time `json:"timestamp_review_dt"`
	CreatedAt               time.Time  `json:"created_at"`
}

type TransactionStats struct {
	PurchaseCount int64
	TotalValue    float64
	AvgRating     float64
	RatedCount    int64
}

type DriverCount struct {
	Driver string
	Count  int64
}
