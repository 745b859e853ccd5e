package entity

type UserProfile struct {
	UserId              string
	Name                string
	PurchaseCount       int64
	ComplaintCount      int64
	AvgRating           float64
	TotalPurchaseValue  float64
	TopComplaintDrivers []string
	IsChronicComplainer bool
	IsAggressive        bool
}

func (p *UserProfile) IsEmpty() bool {
	return p == nil || p.PurchaseCount == 0
}
