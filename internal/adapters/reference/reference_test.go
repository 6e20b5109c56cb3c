package reference

import (
	"context"
	"encoding/json"
	"lng-supply-optimizer/internal/domain"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetYAML = `
vessels:
  - name: Coaster
    capacity_m3: 7500
    speed_knots: 12
    fuel_laden: 18
    fuel_ballast: 16
    fuel_berth: 4
    charter_rate_usd: 25000
    port_cost_usd: 15000
routes:
  - {origin: T, destination: A, distance_nm: 120}
  - {origin: A, destination: T, distance_nm: 125}
oru:
  - {location: A, capex_usd: 4000000}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDatasetYAML(t *testing.T) {
	data, err := LoadDataset(writeFile(t, "reference.yaml", datasetYAML))
	require.NoError(t, err)

	require.Len(t, data.Vessels, 1)
	assert.Equal(t, "Coaster", data.Vessels[0].Name)
	assert.Equal(t, 15000.0, data.Vessels[0].PortCostPerCall)
	require.Len(t, data.Routes, 2)
	assert.Equal(t, 125.0, data.Routes[1].DistanceNM)
	require.Len(t, data.ORU, 1)
	assert.Equal(t, 4_000_000.0, data.ORU[0].CapexUSD)
}

func TestLoadDatasetJSON(t *testing.T) {
	raw, err := json.Marshal(domain.ReferenceDataset{
		Vessels: []domain.Vessel{{Name: "V", CapacityM3: 1000, SpeedKnots: 10}},
	})
	require.NoError(t, err)

	data, err := LoadDataset(writeFile(t, "reference.json", string(raw)))
	require.NoError(t, err)
	assert.Len(t, data.Vessels, 1)
}

func TestLoadDatasetRejectsInvalidRows(t *testing.T) {
	_, err := LoadDataset(writeFile(t, "bad.yaml", "vessels:\n  - name: V\n    capacity_m3: 100\n"))
	assert.Error(t, err)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFileRepositoryReadsFreshPerCall(t *testing.T) {
	path := writeFile(t, "reference.yaml", datasetYAML)
	repo, err := NewFileRepository(path)
	require.NoError(t, err)

	ctx := context.Background()
	legs, err := repo.ListRouteLegs(ctx)
	require.NoError(t, err)
	assert.Len(t, legs, 2)

	require.NoError(t, os.WriteFile(path, []byte(datasetYAML+"  - {location: T, capex_usd: 1}\n"), 0o644))
	oru, err := repo.ListORUCapex(ctx)
	require.NoError(t, err)
	assert.Len(t, oru, 2)
}

func TestStaticRepositoryReturnsCopies(t *testing.T) {
	repo := NewStaticRepository(domain.ReferenceDataset{
		Vessels: []domain.Vessel{{Name: "V"}},
	})

	v, err := repo.ListVessels(context.Background())
	require.NoError(t, err)
	v[0].Name = "changed"

	again, err := repo.ListVessels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "V", again[0].Name)
}

func newTestHTTPRepository(t *testing.T, url string) *HTTPRepository {
	t.Helper()
	repo, err := NewHTTPRepository(url, "secret", time.Second)
	require.NoError(t, err)
	repo.backoff = time.Millisecond
	return repo
}

func TestHTTPRepositoryLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/vessels":
			_ = json.NewEncoder(w).Encode([]domain.Vessel{{Name: "V", CapacityM3: 10000, SpeedKnots: 12}})
		case "/routes":
			_ = json.NewEncoder(w).Encode([]domain.RouteLeg{{Origin: "T", Destination: "A", DistanceNM: 50}})
		case "/oru":
			_ = json.NewEncoder(w).Encode([]domain.ORUCapex{{Location: "A", CapexUSD: 10}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	repo := newTestHTTPRepository(t, srv.URL+"/")
	ctx := context.Background()

	vessels, err := repo.ListVessels(ctx)
	require.NoError(t, err)
	assert.Equal(t, "V", vessels[0].Name)

	legs, err := repo.ListRouteLegs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, legs[0].DistanceNM)

	oru, err := repo.ListORUCapex(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", oru[0].Location)
}

func TestHTTPRepositoryRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.Vessel{{Name: "V"}})
	}))
	defer srv.Close()

	vessels, err := newTestHTTPRepository(t, srv.URL).ListVessels(context.Background())
	require.NoError(t, err)
	assert.Len(t, vessels, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPRepositoryDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestHTTPRepository(t, srv.URL).ListRouteLegs(context.Background())
	require.Error(t, err)

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPRepositoryGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestHTTPRepository(t, srv.URL).ListORUCapex(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestNewHTTPRepositoryRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPRepository("  ", "", 0)
	assert.Error(t, err)
}
