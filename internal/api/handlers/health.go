package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

// HealthHandler reports which backends serve the engine. When Ping is set
// a failing dependency turns the response into 503.
type HealthHandler struct {
	ReferenceSource string
	RunStore        string
	Ping            func(ctx context.Context) error
}

type healthResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
	RunStore  string `json:"run_store,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := healthResponse{Status: "ok", Reference: h.ReferenceSource, RunStore: h.RunStore}
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			log.Printf("health check failed: err=%v", err)
			res.Status = "degraded"
			res.Error = "dependency unavailable"
			writeJSON(w, r, http.StatusServiceUnavailable, res)
			return
		}
	}
	writeJSON(w, r, http.StatusOK, res)
}
