package dto

import "solosolver-be/internal/entity"

type ChatTurnDto struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type FileReferenceDto struct {
	Name     string `json:"name"`
	Url      string `json:"url"`
	MimeType string `json:"mimeType"`
}

type AnalyzeComplaintRequest struct {
	UserId        string             `json:"userId" validate:"required"`
	ComplaintText string             `json:"complaintText" validate:"required"`
	SessionId     string             `json:"sessionId"`
	ChatHistory   []ChatTurnDto      `json:"chatHistory" validate:"omitempty,max=100,dive"`
	Files         []FileReferenceDto `json:"files" validate:"omitempty,max=10,dive"`
}

type UserProfileDto struct {
	Summary             string   `json:"summary"`
	PurchaseCount       int64    `json:"purchaseCount"`
	ComplaintCount      int64    `json:"complaintCount"`
	AvgRating           float64  `json:"avgRating"`
	TotalPurchaseValue  float64  `json:"totalPurchaseValue"`
	TopComplaintDrivers []string `json:"topComplaintDrivers"`
	IsChronicComplainer bool     `json:"isChronicComplainer"`
	IsAggressive        bool     `json:"isAggressive"`
}

type AnalyzeComplaintResponse struct {
	InteractionId   string                   `json:"interactionId"`
	Response        string                   `json:"response"`
	Classifications entity.Classification    `json:"classifications"`
	SearchResults   []*entity.Transaction    `json:"searchResults"`
	Status          entity.InteractionStatus `json:"status"`
	UserProfile     UserProfileDto           `json:"userProfile"`
}

// AnalyzeFailureResponse is the 500 body; it still carries a customer-safe reply.
type AnalyzeFailureResponse struct {
	Response string                   `json:"response"`
	Status   entity.InteractionStatus `json:"status"`
}

type ErrorMessageResponse struct {
	Error string `json:"error"`
}
