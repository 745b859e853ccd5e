package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/repository/contract"
	"solosolver-be/internal/repository/specification"
	"solosolver-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// MockStore is a thread-safe in-memory implementation of unitofwork.RepositoryFactory.
// It interprets the specification types used by the services.
type MockStore struct {
	mu sync.Mutex

	Transactions []*entity.Transaction
	Profiles     map[string]*entity.UserProfile
	Interactions []*entity.InteractionRecord
	Sessions     map[string]*entity.ChatSession
	Messages     []*entity.ChatMessage

	FindErr        error
	ProfileErr     error
	InteractionErr error
	MessageErr     error

	FindCalls        int
	StatsCalls       int
	InteractionCalls int
	Commits          int
	Rollbacks        int
}

func NewMockStore() *MockStore {
	return &MockStore{
		Profiles: make(map[string]*entity.UserProfile),
		Sessions: make(map[string]*entity.ChatSession),
	}
}

func (m *MockStore) AddTransactions(txs ...*entity.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txs {
		if t.Id == "" {
			t.Id = uuid.NewString()
		}
		m.Transactions = append(m.Transactions, t)
	}
}

func (m *MockStore) InteractionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Interactions)
}

func (m *MockStore) InteractionAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.InteractionCalls
}

func (m *MockStore) SnapshotInteractions() []*entity.InteractionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.InteractionRecord(nil), m.Interactions...)
}

func (m *MockStore) SnapshotMessages() []*entity.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.ChatMessage(nil), m.Messages...)
}

func (m *MockStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &mockUnitOfWork{store: m}
}

type mockUnitOfWork struct {
	store *MockStore
	inTx  bool
}

func (u *mockUnitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *mockUnitOfWork) Commit() error {
	u.store.mu.Lock()
	u.store.Commits++
	u.store.mu.Unlock()
	u.inTx = false
	return nil
}

func (u *mockUnitOfWork) Rollback() error {
	u.store.mu.Lock()
	u.store.Rollbacks++
	u.store.mu.Unlock()
	u.inTx = false
	return nil
}

func (u *mockUnitOfWork) TransactionRepository() contract.TransactionRepository {
	return &mockTransactionRepo{store: u.store}
}

func (u *mockUnitOfWork) ProfileRepository() contract.ProfileRepository {
	return &mockProfileRepo{store: u.store}
}

func (u *mockUnitOfWork) InteractionRepository() contract.InteractionRepository {
	return &mockInteractionRepo{store: u.store}
}

func (u *mockUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &mockSessionRepo{store: u.store}
}

func (u *mockUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &mockMessageRepo{store: u.store}
}

type mockTransactionRepo struct {
	store *MockStore
}

func (r *mockTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.store.AddTransactions(tx)
	return nil
}

func (r *mockTransactionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.FindCalls++
	if r.store.FindErr != nil {
		return nil, r.store.FindErr
	}

	rows := append([]*entity.Transaction(nil), r.store.Transactions...)
	var limit, offset int
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserID:
			rows = filterTx(rows, func(t *entity.Transaction) bool { return t.UserId == s.UserID })
		case specification.ComplaintTextSearch:
			rows = filterTx(rows, func(t *entity.Transaction) bool { return matchesAllTerms(t.ComplaintBodyText, s.Query) })
		case specification.ByComplaintDriver:
			d := strings.TrimSpace(s.Driver)
			if d != "" && !strings.EqualFold(d, "all") {
				rows = filterTx(rows, func(t *entity.Transaction) bool { return t.InferredComplaintDriver == d })
			}
		case specification.ReviewedSince:
			rows = filterTx(rows, func(t *entity.Transaction) bool {
				return t.TimestampReviewDt != nil && !t.TimestampReviewDt.Before(s.Cutoff)
			})
		case specification.OrderBy:
			sortByTimestamp(rows, s.Desc)
		case specification.RankByRelevance:
			rankByRelevance(rows, s.Text)
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		}
	}

	if offset > 0 {
		if offset >= len(rows) {
			return []*entity.Transaction{}, nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *mockTransactionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	return int64(len(rows)), err
}

func (r *mockTransactionRepo) Stats(_ context.Context, userId string) (*entity.TransactionStats, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.StatsCalls++
	if r.store.FindErr != nil {
		return nil, r.store.FindErr
	}

	stats := &entity.TransactionStats{}
	var ratingSum float64
	for _, t := range r.store.Transactions {
		if t.UserId != userId {
			continue
		}
		stats.PurchaseCount++
		if t.Price != nil {
			stats.TotalValue += *t.Price
		}
		if t.RatingReview != nil {
			stats.RatedCount++
			ratingSum += *t.RatingReview
		}
	}
	if stats.PurchaseCount > 0 {
		stats.AvgRating = ratingSum / float64(stats.PurchaseCount)
	}
	return stats, nil
}

func (r *mockTransactionRepo) TopDrivers(_ context.Context, userId string, limit int) ([]entity.DriverCount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.FindErr != nil {
		return nil, r.store.FindErr
	}

	counts := map[string]int64{}
	for _, t := range r.store.Transactions {
		if t.UserId == userId && t.InferredComplaintDriver != "" {
			counts[t.InferredComplaintDriver]++
		}
	}
	out := make([]entity.DriverCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, entity.DriverCount{Driver: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Driver < out[j].Driver
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockProfileRepo struct {
	store *MockStore
}

func (r *mockProfileRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.UserProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.ProfileErr != nil {
		return nil, r.store.ProfileErr
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.ByUserID); ok {
			if p, found := r.store.Profiles[s.UserID]; found {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type mockInteractionRepo struct {
	store *MockStore
}

func (r *mockInteractionRepo) Create(_ context.Context, record *entity.InteractionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.InteractionCalls++
	if r.store.InteractionErr != nil {
		return r.store.InteractionErr
	}
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	cp := *record
	r.store.Interactions = append(r.store.Interactions, &cp)
	return nil
}

func (r *mockInteractionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.InteractionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.InteractionErr != nil {
		return nil, r.store.InteractionErr
	}

	rows := append([]*entity.InteractionRecord(nil), r.store.Interactions...)
	var limit, offset int
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserID:
			rows = filterRecords(rows, func(i *entity.InteractionRecord) bool { return i.UserId == s.UserID })
		case specification.BySessionID:
			rows = filterRecords(rows, func(i *entity.InteractionRecord) bool { return i.SessionId == s.SessionID })
		case specification.OrderBy:
			sort.SliceStable(rows, func(i, j int) bool {
				if s.Desc {
					return rows[i].CreatedAt.After(rows[j].CreatedAt)
				}
				return rows[i].CreatedAt.Before(rows[j].CreatedAt)
			})
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		}
	}
	if offset > 0 {
		if offset >= len(rows) {
			return []*entity.InteractionRecord{}, nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *mockInteractionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var filters []specification.Specification
	for _, s := range specs {
		switch s.(type) {
		case specification.Pagination, specification.OrderBy:
		default:
			filters = append(filters, s)
		}
	}
	rows, err := r.FindAll(ctx, filters...)
	return int64(len(rows)), err
}

type mockSessionRepo struct {
	store *MockStore
}

func (r *mockSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	session.CreatedAt = time.Now()
	cp := *session
	r.store.Sessions[session.SessionId] = &cp
	return nil
}

func (r *mockSessionRepo) Touch(_ context.Context, sessionId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.Sessions[sessionId]; ok {
		now := time.Now()
		s.UpdatedAt = &now
	}
	return nil
}

func (r *mockSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if s, ok := spec.(specification.BySessionID); ok {
			if found, exists := r.store.Sessions[s.SessionID]; exists {
				cp := *found
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type mockMessageRepo struct {
	store *MockStore
}

func (r *mockMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.MessageErr != nil {
		return r.store.MessageErr
	}
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	cp := *message
	r.store.Messages = append(r.store.Messages, &cp)
	return nil
}

func (r *mockMessageRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, msg := range r.store.Messages {
		keep := true
		for _, spec := range specs {
			if s, ok := spec.(specification.BySessionID); ok && msg.SessionId != s.SessionID {
				keep = false
			}
		}
		if keep {
			n++
		}
	}
	return n, nil
}

func filterTx(rows []*entity.Transaction, keep func(*entity.Transaction) bool) []*entity.Transaction {
	out := rows[:0:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterRecords(rows []*entity.InteractionRecord, keep func(*entity.InteractionRecord) bool) []*entity.InteractionRecord {
	out := rows[:0:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func sortByTimestamp(rows []*entity.Transaction, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return rows[i].TimestampReview > rows[j].TimestampReview
		}
		return rows[i].TimestampReview < rows[j].TimestampReview
	})
}

func rankByRelevance(rows []*entity.Transaction, text string) {
	terms := strings.Split(specification.OrQuery(text), " | ")
	score := func(t *entity.Transaction) int {
		body := strings.ToLower(t.ComplaintBodyText)
		n := 0
		for _, term := range terms {
			if term != "" && strings.Contains(body, term) {
				n++
			}
		}
		return n
	}
	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := score(rows[i]), score(rows[j])
		if si != sj {
			return si > sj
		}
		return rows[i].TimestampReview > rows[j].TimestampReview
	})
}

// matchesAllTerms approximates websearch_to_tsquery: every word must appear.
func matchesAllTerms(body, query string) bool {
	body = strings.ToLower(body)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(body, w) {
			return false
		}
	}
	return true
}
