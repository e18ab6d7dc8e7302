package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cgm-backend/config"
	"cgm-backend/models"
	"cgm-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	inserted  []*models.GlucoseReading
	insertErr error
	findRows  []models.GlucoseReading
	latest    *models.GlucoseReading
	agg       services.ReadingAggregate
}

func (s *stubStore) Insert(_ context.Context, r *models.GlucoseReading) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	r.ID = uint(len(s.inserted) + 1)
	s.inserted = append(s.inserted, r)
	return nil
}

func (s *stubStore) Find(_ context.Context, _ services.ReadingFilter, limit int) ([]models.GlucoseReading, error) {
	if limit < len(s.findRows) {
		return s.findRows[:limit], nil
	}
	return s.findRows, nil
}

func (s *stubStore) FindLatest(_ context.Context, _ services.ReadingFilter) (*models.GlucoseReading, error) {
	if s.latest == nil {
		return nil, &services.NotFoundError{What: "reading"}
	}
	return s.latest, nil
}

func (s *stubStore) Aggregate(_ context.Context, _ services.ReadingFilter) (*services.ReadingAggregate, error) {
	agg := s.agg
	return &agg, nil
}

func testRouter(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{
		Environment:       "test",
		DemoMode:          true,
		DefaultQueryLimit: 10,
		MaxQueryLimit:     100,
		DefaultStatsHours: 24,
	}

	readingSvc := services.NewReadingService(store, nil, nil, cfg)
	statsSvc := services.NewStatsService(store)
	rc := NewReadingController(readingSvc, statsSvc, cfg)
	sc := NewStatsController(statsSvc, cfg)

	r := gin.New()
	r.POST("/api/ingest", rc.Ingest)
	r.GET("/api/readings", rc.List)
	r.GET("/api/readings/latest", rc.Latest)
	r.GET("/api/stats", sc.GetStats)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestIngestEndpoint_Success(t *testing.T) {
	store := &stubStore{}
	r := testRouter(store)

	w, resp := doJSON(t, r, http.MethodPost, "/api/ingest", gin.H{"value": 120.25})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, 120.3, data["value"])
	assert.Equal(t, 6.7, data["mmol"])
	assert.Equal(t, "Unknown", data["trend"])
	assert.Equal(t, "Clean", data["noise"])
	assert.Equal(t, "Just now", data["timeAgo"])
	require.Len(t, store.inserted, 1)
}

func TestIngestEndpoint_ValidationDetails(t *testing.T) {
	r := testRouter(&stubStore{})

	w, resp := doJSON(t, r, http.MethodPost, "/api/ingest", gin.H{"value": 1000.1, "trend": "Sideways"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "validation", resp["error"])

	details := resp["details"].([]any)
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"value", "trend"}, fields)
}

func TestIngestEndpoint_Duplicate(t *testing.T) {
	store := &stubStore{insertErr: &services.DuplicateError{Detail: "an identical sample was already stored"}}
	r := testRouter(store)

	w, resp := doJSON(t, r, http.MethodPost, "/api/ingest", gin.H{"value": 100})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate", resp["error"])
}

func TestListEndpoint_LimitValidation(t *testing.T) {
	r := testRouter(&stubStore{})

	for _, bad := range []string{"0", "101", "-5", "ten"} {
		w, resp := doJSON(t, r, http.MethodGet, "/api/readings?limit="+bad, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", bad)
		assert.Equal(t, "validation", resp["error"])
	}
}

func TestListEndpoint_ReturnsAllWhenFewerThanLimit(t *testing.T) {
	now := time.Now()
	store := &stubStore{
		findRows: []models.GlucoseReading{
			{ID: 3, Value: 130, Timestamp: now},
			{ID: 2, Value: 120, Timestamp: now.Add(-5 * time.Minute)},
			{ID: 1, Value: 110, Timestamp: now.Add(-10 * time.Minute)},
		},
		agg: services.ReadingAggregate{Count: 3, Avg: 120, Min: 110, Max: 130, NormalCount: 3},
	}
	r := testRouter(store)

	w, resp := doJSON(t, r, http.MethodGet, "/api/readings?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].([]any)
	require.Len(t, data, 3)
	assert.Equal(t, float64(3), data[0].(map[string]any)["id"], "newest first")

	stats := resp["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["count"])
	assert.Equal(t, float64(100), stats["normal"].(map[string]any)["percent"])

	query := resp["query"].(map[string]any)
	assert.Equal(t, float64(10), query["limit"])
}

func TestLatestEndpoint_NotFound(t *testing.T) {
	r := testRouter(&stubStore{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/readings/latest", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", resp["error"])
}

func TestStatsEndpoint(t *testing.T) {
	store := &stubStore{agg: services.ReadingAggregate{
		Count: 3, Avg: 113.333333, Min: 50, Max: 190,
		LowCount: 1, NormalCount: 1, HighCount: 1,
	}}
	r := testRouter(store)

	w, resp := doJSON(t, r, http.MethodGet, "/api/stats?hours=12", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["count"])
	assert.Equal(t, 113.3, summary["average"])
	assert.Equal(t, float64(33), summary["low"].(map[string]any)["percent"])

	period := data["period"].(map[string]any)
	assert.Equal(t, float64(12), period["hours"])
}

func TestStatsEndpoint_BadHours(t *testing.T) {
	r := testRouter(&stubStore{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/stats?hours=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", resp["error"])
}
