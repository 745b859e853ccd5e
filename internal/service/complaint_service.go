package service

import (
	"context"
	"errors"
	"strings"

	"solosolver-be/internal/dto"
	"solosolver-be/internal/entity"
	"solosolver-be/pkg/complaint/pipeline"
)

var ErrMissingComplaintFields = errors.New("missing userId or complaintText")

type IComplaintService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeComplaintRequest) (*dto.AnalyzeComplaintResponse, error)
}

// Analyzer runs one complaint through the pipeline.
type Analyzer interface {
	Run(ctx context.Context, req entity.ComplaintRequest) *pipeline.Result
}

type complaintService struct {
	analyzer Analyzer
}

func NewComplaintService(analyzer Analyzer) IComplaintService {
	return &complaintService{analyzer: analyzer}
}

// Analyze only fails on missing input. A pipeline fault comes back as a
// response whose status is "error".
func (s *complaintService) Analyze(ctx context.Context, req *dto.AnalyzeComplaintRequest) (*dto.AnalyzeComplaintResponse, error) {
	userId := strings.TrimSpace(req.UserId)
	text := strings.TrimSpace(req.ComplaintText)
	if userId == "" || text == "" {
		return nil, ErrMissingComplaintFields
	}

	complaint := entity.ComplaintRequest{
		UserId:        userId,
		ComplaintText: text,
		SessionId:     strings.TrimSpace(req.SessionId),
	}
	for _, turn := range req.ChatHistory {
		complaint.ChatHistory = append(complaint.ChatHistory, entity.ChatTurn{
			Sender:  turn.Sender,
			Message: turn.Message,
		})
	}
	for _, f := range req.Files {
		complaint.Files = append(complaint.Files, entity.FileReference{
			Name:     f.Name,
			Url:      f.Url,
			MimeType: f.MimeType,
		})
	}

	result := s.analyzer.Run(ctx, complaint)

	searchResults := result.MatchedTransactions
	if searchResults == nil {
		searchResults = make([]*entity.Transaction, 0)
	}

	return &dto.AnalyzeComplaintResponse{
		InteractionId:   result.InteractionId.String(),
		Response:        result.ResponseText,
		Classifications: result.Classification,
		SearchResults:   searchResults,
		Status:          result.Status,
		UserProfile:     toProfileDto(result.Profile, result.ProfileSummary),
	}, nil
}

func toProfileDto(p *entity.UserProfile, summary string) dto.UserProfileDto {
	out := dto.UserProfileDto{
		Summary:             summary,
		TopComplaintDrivers: make([]string, 0),
	}
	if p == nil {
		return out
	}
	out.PurchaseCount = p.PurchaseCount
	out.ComplaintCount = p.ComplaintCount
	out.AvgRating = p.AvgRating
	out.TotalPurchaseValue = p.TotalPurchaseValue
	out.IsChronicComplainer = p.IsChronicComplainer
	out.IsAggressive = p.IsAggressive
	if len(p.TopComplaintDrivers) > 0 {
		out.TopComplaintDrivers = p.TopComplaintDrivers
	}
	return out
}
