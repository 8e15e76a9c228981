package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"agri-advisory-be/internal/dto"
	"agri-advisory-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdvisoryService struct {
	queryResponse *dto.QueryResponse
	intentResult  string
	err           error
}

func (f *fakeAdvisoryService) Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.queryResponse, nil
}

func (f *fakeAdvisoryService) TestIntent(ctx context.Context, request *dto.QueryRequest) (*dto.TestIntentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TestIntentResponse{Question: request.Question, DetectedIntent: f.intentResult}, nil
}

type fakeStatsService struct {
	stats  *dto.StatsResponse
	health *dto.HealthResponse
	err    error
}

func (f *fakeStatsService) RecordQuery(intentLabel string) {}

func (f *fakeStatsService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func (f *fakeStatsService) Health(ctx context.Context, ready bool) *dto.HealthResponse {
	return f.health
}

func newTestApp(advisory *fakeAdvisoryService, stats *fakeStatsService, ready bool) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	ctrl := NewAdvisoryController(advisory, stats, func() bool { return ready })
	ctrl.RegisterRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestQueryEndpoint(t *testing.T) {
	advisory := &fakeAdvisoryService{
		queryResponse: &dto.QueryResponse{
			Success: true,
			Intent:  "disease",
			Answer:  "Use copper sprays against canker.",
			Sources: []dto.SourceDTO{
				{SourceFile: "CitrusPlantPestsAndDiseases.pdf", Page: 12, Corpus: "disease"},
			},
		},
	}
	app := newTestApp(advisory, &fakeStatsService{}, true)

	resp := postJSON(t, app, "/query", dto.QueryRequest{Question: "What is citrus canker?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "disease", body.Intent)
	assert.Len(t, body.Sources, 1)
	assert.Nil(t, body.Confidence)
}

func TestQueryNotReady(t *testing.T) {
	app := newTestApp(&fakeAdvisoryService{}, &fakeStatsService{}, false)

	resp := postJSON(t, app, "/query", dto.QueryRequest{Question: "anything"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestQueryMissingQuestion(t *testing.T) {
	app := newTestApp(&fakeAdvisoryService{}, &fakeStatsService{}, true)

	resp := postJSON(t, app, "/query", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQueryServiceFailure(t *testing.T) {
	advisory := &fakeAdvisoryService{err: errors.New("pipeline exploded")}
	app := newTestApp(advisory, &fakeStatsService{}, true)

	resp := postJSON(t, app, "/query", dto.QueryRequest{Question: "q"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestTestIntentEndpoint(t *testing.T) {
	advisory := &fakeAdvisoryService{intentResult: "hybrid"}
	app := newTestApp(advisory, &fakeStatsService{}, true)

	resp := postJSON(t, app, "/test-intent", dto.QueryRequest{Question: "Scheme for canker control?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.TestIntentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "hybrid", body.DetectedIntent)
	assert.Equal(t, "Scheme for canker control?", body.Question)
}

func TestHealthEndpoint(t *testing.T) {
	stats := &fakeStatsService{health: &dto.HealthResponse{
		Status: "healthy",
		Services: dto.HealthServices{
			Database:     true,
			Agent:        true,
			VectorStores: map[string]bool{"disease": true, "scheme": true},
		},
	}}
	app := newTestApp(&fakeAdvisoryService{}, stats, true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.Services.VectorStores["disease"])
}

func TestStatsEndpoint(t *testing.T) {
	stats := &fakeStatsService{stats: &dto.StatsResponse{
		TotalDocuments: 2,
		VectorStores: map[string]dto.KnowledgeBaseStats{
			"disease_kb": {Status: "active", Document: "CitrusPlantPestsAndDiseases.pdf", ChunkCount: 120},
			"scheme_kb":  {Status: "active", Document: "GovernmentSchemes.pdf", ChunkCount: 80},
		},
	}}
	app := newTestApp(&fakeAdvisoryService{}, stats, true)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.StatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.TotalDocuments)
	assert.Equal(t, "active", body.VectorStores["disease_kb"].Status)
}

func TestRootEndpoint(t *testing.T) {
	app := newTestApp(&fakeAdvisoryService{}, &fakeStatsService{}, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Agriculture Advisory API is running")
}
