package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solosolver-be/internal/dto"
	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/pkg/serverutils"
	"solosolver-be/internal/repository/contract"
	"solosolver-be/internal/service"
	"solosolver-be/pkg/complaint/pipeline"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubComplaintService struct {
	res   *dto.AnalyzeComplaintResponse
	err   error
	calls int
}

func (s *stubComplaintService) Analyze(_ context.Context, _ *dto.AnalyzeComplaintRequest) (*dto.AnalyzeComplaintResponse, error) {
	s.calls++
	return s.res, s.err
}

type stubSearchService struct {
	got *dto.SearchTransactionsRequest
	res *dto.SearchTransactionsResponse
	err error
}

func (s *stubSearchService) Search(_ context.Context, req *dto.SearchTransactionsRequest) (*dto.SearchTransactionsResponse, error) {
	s.got = req
	return s.res, s.err
}

type stubInteractionService struct {
	got *dto.ListInteractionsRequest
}

func (s *stubInteractionService) List(_ context.Context, req *dto.ListInteractionsRequest) (*dto.ListInteractionsResponse, error) {
	s.got = req
	return &dto.ListInteractionsResponse{Items: []*dto.InteractionResponse{}, Limit: req.Limit}, nil
}

func newTestApp(routes ...interface{ RegisterRoutes(fiber.Router) }) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	for _, r := range routes {
		r.RegisterRoutes(api)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestAnalyze_Success(t *testing.T) {
	svc := &stubComplaintService{res: &dto.AnalyzeComplaintResponse{
		Response:        "Dear customer",
		Classifications: entity.Classification{Category: entity.CategorySizingIssue, Source: entity.SourceHeuristic},
		SearchResults:   []*entity.Transaction{},
		Status:          entity.InteractionStatusFallback,
	}}
	app := newTestApp(NewComplaintController(svc, logger.NewNopLogger()))

	code, body := doJSON(t, app, http.MethodPost, "/api/complaint/v1/analyze",
		`{"userId":"u1","complaintText":"These shoes are too small","chatHistory":[{"sender":"user","message":"hi"}],"sessionId":"s1"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "fallback", body["status"])
	assert.Equal(t, "Dear customer", body["response"])
	classifications := body["classifications"].(map[string]interface{})
	assert.Equal(t, "Sizing Issue", classifications["complaint_category"])
	assert.Equal(t, "heuristic", classifications["source"])
}

func TestAnalyze_MissingFields(t *testing.T) {
	svc := &stubComplaintService{}
	app := newTestApp(NewComplaintController(svc, logger.NewNopLogger()))

	for _, body := range []string{`{"complaintText":"broken"}`, `{"userId":"u1"}`, `{}`} {
		code, out := doJSON(t, app, http.MethodPost, "/api/complaint/v1/analyze", body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Missing userId or complaintText", out["error"])
	}
	assert.Zero(t, svc.calls)
}

func TestAnalyze_WhitespaceTextIsMissing(t *testing.T) {
	svc := &stubComplaintService{err: service.ErrMissingComplaintFields}
	app := newTestApp(NewComplaintController(svc, logger.NewNopLogger()))

	code, out := doJSON(t, app, http.MethodPost, "/api/complaint/v1/analyze", `{"userId":"u1","complaintText":"   "}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing userId or complaintText", out["error"])
	assert.Equal(t, 1, svc.calls)
}

func TestAnalyze_BadBodyIsApology(t *testing.T) {
	app := newTestApp(NewComplaintController(&stubComplaintService{}, logger.NewNopLogger()))

	code, out := doJSON(t, app, http.MethodPost, "/api/complaint/v1/analyze", `{"userId": `)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, pipeline.Apology, out["response"])
}

func TestAnalyze_PipelineErrorStatus(t *testing.T) {
	svc := &stubComplaintService{res: &dto.AnalyzeComplaintResponse{Response: pipeline.Apology, Status: entity.InteractionStatusError}}
	app := newTestApp(NewComplaintController(svc, logger.NewNopLogger()))

	code, out := doJSON(t, app, http.MethodPost, "/api/complaint/v1/analyze", `{"userId":"u1","complaintText":"something broke"}`)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, pipeline.Apology, out["response"])
}

func TestSearch_PassesFilters(t *testing.T) {
	svc := &stubSearchService{res: &dto.SearchTransactionsResponse{
		Transactions: []*entity.Transaction{},
		Insights:     dto.SearchInsights{Categories: []string{}},
	}}
	app := newTestApp(NewSearchController(svc))

	code, out := doJSON(t, app, http.MethodPost, "/api/transaction/v1/search",
		`{"userId":"u1","category":"Shipping Problem","timeRange":"30","limit":5}`)

	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, svc.got)
	assert.Equal(t, 30, svc.got.TimeRange.Int())
	assert.Equal(t, 5, svc.got.Limit.Int())
	assert.Contains(t, out, "insights")
}

func TestSearch_EmptyBodyAllowed(t *testing.T) {
	svc := &stubSearchService{res: &dto.SearchTransactionsResponse{}}
	app := newTestApp(NewSearchController(svc))

	code, _ := doJSON(t, app, http.MethodPost, "/api/transaction/v1/search", "")

	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, svc.got)
	assert.Nil(t, svc.got.TimeRange)
}

func TestSearch_StoreErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unavailable", fmt.Errorf("search transactions: %w", contract.ErrStoreUnavailable), http.StatusServiceUnavailable, "store unavailable"},
		{"other", errors.New("syntax error in tsquery"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(NewSearchController(&stubSearchService{err: tt.err}))

			code, out := doJSON(t, app, http.MethodPost, "/api/transaction/v1/search", `{"userId":"u1"}`)

			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, out["error"])
		})
	}
}

func TestSearch_RejectsBadTimeRange(t *testing.T) {
	app := newTestApp(NewSearchController(&stubSearchService{}))

	code, out := doJSON(t, app, http.MethodPost, "/api/transaction/v1/search", `{"timeRange":"a week"}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, out["error"])
}

func TestInteractions_List(t *testing.T) {
	svc := &stubInteractionService{}
	app := newTestApp(NewInteractionController(svc))

	code, out := doJSON(t, app, http.MethodGet, "/api/interaction/v1?userId=u1&limit=5", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "u1", svc.got.UserId)
	assert.Equal(t, 5, svc.got.Limit)
}

func TestInteractions_InvalidLimit(t *testing.T) {
	app := newTestApp(NewInteractionController(&stubInteractionService{}))

	code, out := doJSON(t, app, http.MethodGet, "/api/interaction/v1?limit=500", "")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, out["success"])
}
