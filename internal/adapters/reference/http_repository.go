package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/obs"
	"net/http"
	"strings"
	"time"
)

// HTTPRepository reads reference datasets from a collaborator service:
//
//	GET {base}/vessels -> []Vessel
//	GET {base}/routes  -> []RouteLeg
//	GET {base}/oru     -> []ORUCapex
//
// Transient failures are retried with backoff. Safe for concurrent use.
type HTTPRepository struct {
	session  *http.Client
	baseURL  string
	apiKey   string
	attempts int
	backoff  time.Duration
}

func NewHTTPRepository(baseURL, apiKey string, timeout time.Duration) (*HTTPRepository, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("http reference repository: base url is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPRepository{
		session:  &http.Client{Timeout: timeout},
		baseURL:  baseURL,
		apiKey:   apiKey,
		attempts: 4,
		backoff:  200 * time.Millisecond,
	}, nil
}

func (h *HTTPRepository) ListVessels(ctx context.Context) (_ []domain.Vessel, err error) {
	defer obs.Time(ctx, "reference.http.ListVessels")(&err)

	var out []domain.Vessel
	if err := h.getJSON(ctx, "/vessels", &out); err != nil {
		return nil, fmt.Errorf("list vessels: %w", err)
	}
	return out, nil
}

func (h *HTTPRepository) ListRouteLegs(ctx context.Context) (_ []domain.RouteLeg, err error) {
	defer obs.Time(ctx, "reference.http.ListRouteLegs")(&err)

	var out []domain.RouteLeg
	if err := h.getJSON(ctx, "/routes", &out); err != nil {
		return nil, fmt.Errorf("list route legs: %w", err)
	}
	return out, nil
}

func (h *HTTPRepository) ListORUCapex(ctx context.Context) (_ []domain.ORUCapex, err error) {
	defer obs.Time(ctx, "reference.http.ListORUCapex")(&err)

	var out []domain.ORUCapex
	if err := h.getJSON(ctx, "/oru", &out); err != nil {
		return nil, fmt.Errorf("list oru capex: %w", err)
	}
	return out, nil
}

func (h *HTTPRepository) getJSON(ctx context.Context, path string, v any) error {
	url := h.baseURL + path

	resp, err := h.doWithRetry(ctx, func() (*http.Request, error) {
		return h.newRequest(ctx, http.MethodGet, url)
	})
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode body: %w", path, err)
	}
	return nil
}
