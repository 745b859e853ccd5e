package grounding

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/repository/memory"
	"solosolver-be/internal/repository/specification"
	"solosolver-be/internal/repository/unitofwork"
)

const (
	NoHistoryProfile = "New customer with no previous transaction history."
	NoHistoryMatches = "No recent transactions found."

	minTopK         = 3
	maxTopK         = 5
	topDriverCount  = 3
	defaultPoolSize = 10
)

// History is what the builder knows about a customer before classification.
type History struct {
	Profile    *entity.UserProfile
	Candidates []*entity.Transaction
}

// PipelineContext is the per-request grounding handed to the generator.
type PipelineContext struct {
	Classification      entity.Classification
	MatchedTransactions []*entity.Transaction
	Profile             *entity.UserProfile
	ProfileSummary      string
	HistorySummary      string
	HasHistory          bool
}

type Builder struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ProfileCache
	logger     logger.ILogger
	topK       int
	poolSize   int
}

// NewBuilder clamps topK into [3, 5]. cache may be nil.
func NewBuilder(uowFactory unitofwork.RepositoryFactory, cache *memory.ProfileCache, log logger.ILogger, topK, poolSize int) *Builder {
	if topK < minTopK {
		topK = minTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}
	if poolSize < topK {
		poolSize = defaultPoolSize
	}
	return &Builder{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
		topK:       topK,
		poolSize:   poolSize,
	}
}

func (b *Builder) TopK() int {
	return b.topK
}

// LoadHistory never fails: lookup errors are logged and leave the history empty.
func (b *Builder) LoadHistory(ctx context.Context, userId, complaintText string) *History {
	h := &History{}
	uow := b.uowFactory.NewUnitOfWork(ctx)

	profile, err := b.loadProfile(ctx, uow, userId)
	if err != nil {
		b.logger.Warn("GROUNDING", "Profile lookup failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	} else {
		h.Profile = profile
	}

	candidates, err := uow.TransactionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.RankByRelevance{Text: complaintText},
		specification.Pagination{Limit: b.poolSize},
	)
	if err != nil {
		b.logger.Warn("GROUNDING", "Transaction lookup failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	} else {
		h.Candidates = candidates
	}

	return h
}

func (b *Builder) loadProfile(ctx context.Context, uow unitofwork.UnitOfWork, userId string) (*entity.UserProfile, error) {
	if b.cache != nil {
		if p, ok := b.cache.Get(userId); ok {
			return p, nil
		}
	}

	stored, err := uow.ProfileRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	stats, err := uow.TransactionRepository().Stats(ctx, userId)
	if err != nil {
		return nil, err
	}
	drivers, err := uow.TransactionRepository().TopDrivers(ctx, userId, topDriverCount)
	if err != nil {
		return nil, err
	}

	profile := stored
	if profile == nil {
		profile = &entity.UserProfile{UserId: userId}
	}
	profile.PurchaseCount = stats.PurchaseCount
	if stats.PurchaseCount > 0 {
		profile.AvgRating = stats.AvgRating
	}
	if profile.TotalPurchaseValue == 0 {
		profile.TotalPurchaseValue = stats.TotalValue
	}
	profile.TopComplaintDrivers = nil
	var driverTotal int64
	for _, d := range drivers {
		profile.TopComplaintDrivers = append(profile.TopComplaintDrivers, d.Driver)
		driverTotal += d.Count
	}
	if profile.ComplaintCount == 0 {
		profile.ComplaintCount = driverTotal
	}

	if b.cache != nil {
		b.cache.Save(profile)
	}
	return profile, nil
}

// Build ranks candidates sharing the classified category first, keeps the
// store's relevance order otherwise, and truncates to topK.
func (b *Builder) Build(c entity.Classification, h *History) *PipelineContext {
	if h == nil {
		h = &History{}
	}

	ranked := append([]*entity.Transaction(nil), h.Candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		bi := ranked[i].InferredComplaintDriver == string(c.Category)
		bj := ranked[j].InferredComplaintDriver == string(c.Category)
		return bi && !bj
	})
	if len(ranked) > b.topK {
		ranked = ranked[:b.topK]
	}

	return &PipelineContext{
		Classification:      c,
		MatchedTransactions: ranked,
		Profile:             h.Profile,
		ProfileSummary:      ProfileSummary(h.Profile),
		HistorySummary:      HistorySummary(ranked),
		HasHistory:          len(ranked) > 0,
	}
}

func ProfileSummary(p *entity.UserProfile) string {
	if p.IsEmpty() {
		return NoHistoryProfile
	}

	summary := fmt.Sprintf("Customer Profile: %d previous transactions, average rating %.1f, common complaint categories: %s",
		p.PurchaseCount, p.AvgRating, strings.Join(p.TopComplaintDrivers, ", "))

	var flags []string
	if p.IsChronicComplainer {
		flags = append(flags, "frequent complainer")
	}
	if p.IsAggressive {
		flags = append(flags, "history of aggressive messages")
	}
	if len(flags) > 0 {
		summary += " (" + strings.Join(flags, "; ") + ")"
	}
	return summary
}

func HistorySummary(txs []*entity.Transaction) string {
	if len(txs) == 0 {
		return NoHistoryMatches
	}

	parts := make([]string, 0, len(txs))
	for _, t := range txs {
		parts = append(parts, fmt.Sprintf("%s - %s", orUnknown(t.ProductTitle), orUnknown(t.InferredComplaintDriver)))
	}
	return "Recent transactions: " + strings.Join(parts, ", ")
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
