package service

import (
	"context"

	"solosolver-be/internal/dto"
	"solosolver-be/internal/repository/specification"
	"solosolver-be/internal/repository/unitofwork"
)

const defaultInteractionPageSize = 20

type IInteractionService interface {
	List(ctx context.Context, req *dto.ListInteractionsRequest) (*dto.ListInteractionsResponse, error)
}

type interactionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewInteractionService(uowFactory unitofwork.RepositoryFactory) IInteractionService {
	return &interactionService{uowFactory: uowFactory}
}

func (s *interactionService) List(ctx context.Context, req *dto.ListInteractionsRequest) (*dto.ListInteractionsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultInteractionPageSize
	}

	var filters []specification.Specification
	if req.UserId != "" {
		filters = append(filters, specification.ByUserID{UserID: req.UserId})
	}
	if req.SessionId != "" {
		filters = append(filters, specification.BySessionID{SessionID: req.SessionId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.InteractionRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	records, err := uow.InteractionRepository().FindAll(ctx, append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InteractionResponse, 0, len(records))
	for _, r := range records {
		items = append(items, &dto.InteractionResponse{
			Id:                      r.Id,
			SessionId:               r.SessionId,
			UserId:                  r.UserId,
			ComplaintText:           r.ComplaintText,
			Classification:          r.Classification,
			ClassificationReasoning: r.ClassificationReasoning,
			GeneratedResponse:       r.GeneratedResponse,
			GenerationReasoning:     r.GenerationReasoning,
			MatchedTransactions:     r.MatchedTransactions,
			Status:                  r.Status,
			CreatedAt:               r.CreatedAt,
		})
	}

	return &dto.ListInteractionsResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}
