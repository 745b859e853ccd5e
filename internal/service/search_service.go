package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solosolver-be/internal/dto"
	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/repository/specification"
	"solosolver-be/internal/repository/unitofwork"
	"solosolver-be/pkg/cache"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchTransactionsRequest) (*dto.SearchTransactionsResponse, error)
}

type searchService struct {
	uowFactory   unitofwork.RepositoryFactory
	cache        *cache.SearchCache
	logger       logger.ILogger
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// NewSearchService accepts a nil cache.
func NewSearchService(
	uowFactory unitofwork.RepositoryFactory,
	searchCache *cache.SearchCache,
	log logger.ILogger,
	defaultLimit, maxLimit int,
) ISearchService {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &searchService{
		uowFactory:   uowFactory,
		cache:        searchCache,
		logger:       log,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchTransactionsRequest) (*dto.SearchTransactionsResponse, error) {
	echo := dto.SearchQueryEcho{
		UserId:      strings.TrimSpace(req.UserId),
		SearchQuery: strings.TrimSpace(req.SearchQuery),
		Category:    strings.TrimSpace(req.Category),
		TimeRange:   req.TimeRange.Int(),
		Limit:       s.clampLimit(req.Limit.Int()),
	}

	key, keyErr := cache.Key(echo)
	if keyErr == nil {
		var cached dto.SearchTransactionsResponse
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	specs := []specification.Specification{}
	if echo.UserId != "" {
		specs = append(specs, specification.ByUserID{UserID: echo.UserId})
	}
	if echo.SearchQuery != "" {
		specs = append(specs, specification.ComplaintTextSearch{Query: echo.SearchQuery})
	}
	if echo.Category != "" {
		specs = append(specs, specification.ByComplaintDriver{Driver: echo.Category})
	}
	if echo.TimeRange > 0 {
		cutoff := s.now().AddDate(0, 0, -echo.TimeRange)
		specs = append(specs, specification.ReviewedSince{Cutoff: cutoff})
	}
	specs = append(specs,
		specification.OrderBy{Field: "timestamp_review", Desc: true},
		specification.Pagination{Limit: echo.Limit},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.TransactionRepository().FindAll(ctx, specs...)
	if err != nil {
		s.logger.Error("SEARCH", "Transaction search failed", map[string]interface{}{
			"user_id": echo.UserId,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("search transactions: %w", err)
	}
	if rows == nil {
		rows = make([]*entity.Transaction, 0)
	}

	res := &dto.SearchTransactionsResponse{
		Transactions: rows,
		Insights:     buildInsights(rows),
		Query:        echo,
	}

	if keyErr == nil {
		s.cache.Set(ctx, key, res)
	}
	return res, nil
}

func (s *searchService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func buildInsights(rows []*entity.Transaction) dto.SearchInsights {
	insights := dto.SearchInsights{
		TotalResults: len(rows),
		Categories:   make([]string, 0),
	}

	seen := make(map[string]struct{})
	var ratingSum float64
	for _, t := range rows {
		if t.InferredComplaintDriver != "" {
			if _, ok := seen[t.InferredComplaintDriver]; !ok {
				seen[t.InferredComplaintDriver] = struct{}{}
				insights.Categories = append(insights.Categories, t.InferredComplaintDriver)
			}
		}
		if t.RatingReview != nil {
			ratingSum += *t.RatingReview
		}
		if t.VerifiedPurchaseReview {
			insights.VerifiedPurchases++
		}
	}
	// unrated rows count as zero
	if len(rows) > 0 {
		insights.AvgRating = ratingSum / float64(len(rows))
	}
	return insights
}

// FormatInsights renders insights on one line for the CLI.
func FormatInsights(i dto.SearchInsights) string {
	return fmt.Sprintf("%d results, avg rating %.1f, %d verified, categories: %s",
		i.TotalResults, i.AvgRating, i.VerifiedPurchases, strings.Join(i.Categories, ", "))
}
