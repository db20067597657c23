// README: Handler tests over a minimal gin engine with in-memory services.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldops/internal/http/handlers"
	"fieldops/internal/modules/contractor"
	"fieldops/internal/modules/geo"
	"fieldops/internal/modules/notify"
	"fieldops/internal/modules/ranking"
	"fieldops/internal/types"
)

type stubCandidates struct {
	contractors []contractor.Contractor
}

func (s *stubCandidates) ListActiveByJobType(_ context.Context, jobTypeID types.ID) ([]contractor.Contractor, error) {
	var out []contractor.Contractor
	for _, c := range s.contractors {
		if c.JobTypeID == jobTypeID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubNames struct{ names map[types.ID]string }

func (s *stubNames) GetName(_ context.Context, id types.ID) (string, bool, error) {
	name, ok := s.names[id]
	return name, ok, nil
}

func buildRankingRouter(t *testing.T, contractors []contractor.Contractor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := ranking.NewService(
		&stubCandidates{contractors: contractors},
		&stubNames{names: map[types.ID]string{"jt-electrical": "Electrical"}},
		geo.HaversineProvider{},
		notify.Nop{},
		zap.NewNop(),
		ranking.Config{Workers: 2},
	)
	r := gin.New()
	h := handlers.NewRankingHandler(svc)
	r.POST("/api/rankings", h.Rank)
	return r
}

func rankBody(t *testing.T, overrides map[string]any) *bytes.Buffer {
	t.Helper()
	body := map[string]any{
		"job_type_id":    "jt-electrical",
		"date":           "2026-03-02", // a Monday
		"target_time":    "10:00",
		"lat":            40.0,
		"lng":            -74.0,
		"duration_hours": 2,
	}
	for k, v := range overrides {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewBuffer(raw)
}

func mondaySchedule(start, end int) []contractor.ScheduleEntry {
	return []contractor.ScheduleEntry{{
		Weekday: time.Monday,
		Slots:   []contractor.TimeSlot{{StartMin: start, EndMin: end}},
	}}
}

func TestRankEndpoint_ReturnsOrderedResults(t *testing.T) {
	router := buildRankingRouter(t, []contractor.Contractor{
		{
			ID: "free", JobTypeID: "jt-electrical", Rating: 4.0, Active: true,
			Base:           types.Point{Lat: 40.01, Lng: -74.0},
			WeeklySchedule: mondaySchedule(540, 1020),
		},
		{
			ID: "busy", JobTypeID: "jt-electrical", Rating: 5.0, Active: true,
			Base: types.Point{Lat: 40.0, Lng: -74.0},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rankings", rankBody(t, nil))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []struct {
			ContractorID string `json:"contractor_id"`
			JobTypeName  string `json:"job_type_name"`
			BestSlot     *struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"best_slot"`
			Score struct {
				Overall float64 `json:"overall"`
			} `json:"score"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "free", resp.Results[0].ContractorID)
	assert.Equal(t, "Electrical", resp.Results[0].JobTypeName)
	require.NotNil(t, resp.Results[0].BestSlot)
	assert.Equal(t, "09:00", resp.Results[0].BestSlot.Start)
	assert.Nil(t, resp.Results[1].BestSlot)
}

func TestRankEndpoint_BadRequests(t *testing.T) {
	router := buildRankingRouter(t, nil)

	tests := []struct {
		name string
		body *bytes.Buffer
	}{
		{name: "zero duration", body: rankBody(t, map[string]any{"duration_hours": 0})},
		{name: "bad latitude", body: rankBody(t, map[string]any{"lat": 123.0})},
		{name: "bad date", body: rankBody(t, map[string]any{"date": "03/02/2026"})},
		{name: "bad time", body: rankBody(t, map[string]any{"target_time": "25:99"})},
		{name: "missing job type", body: rankBody(t, map[string]any{"job_type_id": ""})},
		{
			name: "weights do not sum to one",
			body: rankBody(t, map[string]any{"weights": map[string]float64{"availability": 0.9, "rating": 0.9, "distance": 0.9}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/rankings", tt.body)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRankEndpoint_TopNZero(t *testing.T) {
	router := buildRankingRouter(t, []contractor.Contractor{
		{
			ID: "c1", JobTypeID: "jt-electrical", Rating: 4.0, Active: true,
			Base:           types.Point{Lat: 40.0, Lng: -74.0},
			WeeklySchedule: mondaySchedule(540, 1020),
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rankings", rankBody(t, map[string]any{"top_n": 0}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Results)
}
