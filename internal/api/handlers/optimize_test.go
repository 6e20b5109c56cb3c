package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"lng-supply-optimizer/internal/adapters/cache"
	"lng-supply-optimizer/internal/adapters/reference"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() domain.ReferenceDataset {
	return domain.ReferenceDataset{
		Vessels: []domain.Vessel{{Name: "V", CapacityM3: 10000, SpeedKnots: 10}},
		Routes: []domain.RouteLeg{
			{Origin: "T", Destination: "A", DistanceNM: 100},
			{Origin: "A", Destination: "B", DistanceNM: 50},
			{Origin: "B", Destination: "T", DistanceNM: 150},
			{Origin: "T", Destination: "B", DistanceNM: 150},
			{Origin: "B", Destination: "A", DistanceNM: 50},
			{Origin: "A", Destination: "T", DistanceNM: 100},
		},
	}
}

func newTestHandler() *OptimizeHandler {
	opt := &services.Optimizer{
		Reference: reference.NewStaticRepository(testDataset()),
		Store:     cache.NewMemoryRunStore(),
	}
	return NewOptimizeHandler(opt, []string{"50:50"})
}

const paramsJSON = `{
	"scf_lng": 1, "scf_mgo": 1, "loading_hours": 0, "maintenance_days": 0,
	"unpumpable_fraction": 0, "boil_off_fraction": 0, "filling_fraction": 1,
	"gross_storage_margin": 0, "analysis_year": 2025, "base_year": 2025,
	"inflation_rate": 0, "lng_price_usd": 0, "diesel_price_usd": 0
}`

func optimizeBody(locations string, twin string) string {
	body := `{"terminal":"T","locations":` + locations + `,"params":` + paramsJSON + `,"demand":{"A":1,"B":1}`
	if twin != "" {
		body += `,"twin":` + twin
	}
	return body + `}`
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestOptimizeSingle(t *testing.T) {
	h := newTestHandler()

	rec := post(h.Optimize, "/optimize", optimizeBody(`["A","B"]`, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		RunKey     string                   `json:"run_key"`
		Reused     bool                     `json:"reused"`
		ReuseCount int                      `json:"reuse_count"`
		Results    []domain.CandidateResult `json:"results"`
		Top        *domain.CandidateResult  `json:"top"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.RunKey, 64)
	assert.False(t, res.Reused)
	assert.Len(t, res.Results, 2)
	require.NotNil(t, res.Top)
	assert.Equal(t, "V", res.Top.Vessel)

	rec = post(h.Optimize, "/optimize", optimizeBody(`["B","A"]`, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var again struct {
		RunKey     string `json:"run_key"`
		Reused     bool   `json:"reused"`
		ReuseCount int    `json:"reuse_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, res.RunKey, again.RunKey)
	assert.True(t, again.Reused)
	assert.Equal(t, 1, again.ReuseCount)
}

func TestOptimizeTrimsLocationAndDemandNames(t *testing.T) {
	h := newTestHandler()

	body := `{"terminal":" T ","locations":[" A","B "],"params":` + paramsJSON + `,"demand":{" A":1,"B ":1}}`
	rec := post(h.Optimize, "/optimize", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		RunKey  string                   `json:"run_key"`
		Reused  bool                     `json:"reused"`
		Results []domain.CandidateResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Results, 2)

	rec = post(h.Optimize, "/optimize", optimizeBody(`["A","B"]`, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), res.RunKey)
	assert.Contains(t, rec.Body.String(), `"reused":true`)

	dup := `{"terminal":"T","locations":["A","B"],"params":` + paramsJSON + `,"demand":{"A":1," A":2,"B":1}}`
	rec = post(h.Optimize, "/optimize", dup)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate demand")
}

func TestOptimizeTwinUsesDefaultRatios(t *testing.T) {
	h := newTestHandler()

	rec := post(h.OptimizeTwin, "/optimize/twin", optimizeBody(`["A","B"]`, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Results domain.TwinResults         `json:"results"`
		Top     *domain.TwinCombinedResult `json:"top"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Results.Total, 1)
	assert.Equal(t, "50:50", res.Results.Total[0].Ratio)
	assert.NotEmpty(t, res.Results.Vessel1)
	require.NotNil(t, res.Top)
}

func TestOptimizeWithTwinBlock(t *testing.T) {
	h := newTestHandler()

	rec := post(h.Optimize, "/optimize", optimizeBody(`["A","B"]`, `{"ratios":["60:40","70:30"],"enforceSameVessel":true}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"kapal_1"`)
	assert.Contains(t, rec.Body.String(), `"60:40"`)
}

func TestOptimizeBadRequests(t *testing.T) {
	h := newTestHandler()

	cases := map[string]string{
		"malformed json":   `{"terminal":`,
		"unknown field":    `{"terminal":"T","bogus":1}`,
		"two objects":      optimizeBody(`["A","B"]`, "") + `{}`,
		"missing params":   `{"terminal":"T","locations":["A"],"demand":{"A":1}}`,
		"no locations":     optimizeBody(`[]`, ""),
		"bad twin ratio":   optimizeBody(`["A","B"]`, `{"ratios":["70-30"]}`),
		"duplicate stop":   optimizeBody(`["A","A"]`, ""),
		"terminal as stop": optimizeBody(`["A","T"]`, ""),
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := post(h.Optimize, "/optimize", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestOptimizeMissingParamField(t *testing.T) {
	h := newTestHandler()
	body := strings.Replace(optimizeBody(`["A","B"]`, ""), `"scf_lng": 1, `, "", 1)

	rec := post(h.Optimize, "/optimize", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SCFLNG")
}

func TestOptimizeMethodNotAllowed(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/optimize", nil)
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestRunLookup(t *testing.T) {
	h := newTestHandler()
	mux := http.NewServeMux()
	mux.HandleFunc("/runs/{key}", h.Run)

	created := post(h.Optimize, "/optimize", optimizeBody(`["A","B"]`, ""))
	require.Equal(t, http.StatusOK, created.Code)
	var res struct {
		RunKey string `json:"run_key"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &res))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+res.RunKey, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var run struct {
		RunKey     string            `json:"run_key"`
		Mode       string            `json:"mode"`
		ReuseCount int               `json:"reuse_count"`
		Record     *domain.RunRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, res.RunKey, run.RunKey)
	assert.Equal(t, services.ModeSingle, run.Mode)
	assert.Equal(t, 0, run.ReuseCount)
	require.NotNil(t, run.Record)
	assert.Len(t, run.Record.Results, 2)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	h := &HealthHandler{}
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodPost, "/health", bytes.NewReader(nil)))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthReportsBackends(t *testing.T) {
	h := &HealthHandler{
		ReferenceSource: "yaml",
		RunStore:        "redis",
		Ping:            func(ctx context.Context) error { return nil },
	}
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","reference":"yaml","run_store":"redis"}`, rec.Body.String())

	h.Ping = func(ctx context.Context) error { return errors.New("connection refused") }
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","reference":"yaml","run_store":"redis","error":"dependency unavailable"}`, rec.Body.String())
}
