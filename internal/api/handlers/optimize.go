package handlers

import (
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/api/dto"
	"lng-supply-optimizer/internal/config"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/ports"
	"lng-supply-optimizer/internal/services"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type OptimizeHandler struct {
	Optimizer *services.Optimizer
	Validate  *validator.Validate
	// Ratios used when a twin request names none.
	DefaultRatios []string
}

func NewOptimizeHandler(opt *services.Optimizer, defaultRatios []string) *OptimizeHandler {
	return &OptimizeHandler{
		Optimizer:     opt,
		Validate:      validator.New(),
		DefaultRatios: defaultRatios,
	}
}

// Optimize runs a single-vessel scenario, or a twin scenario when the body
// carries a twin block.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, false)
}

// OptimizeTwin always runs the twin-vessel model; an absent twin block
// means default ratios with no constraints.
func (h *OptimizeHandler) OptimizeTwin(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, true)
}

// Run returns a stored run record without bumping its reuse counter.
func (h *OptimizeHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		writeError(w, r, http.StatusBadRequest, "run key is required")
		return
	}

	rec, err := h.Optimizer.GetRun(r.Context(), key)
	if errors.Is(err, ports.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		log.Printf("get run failed: run_key=%s err=%v", key, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	mode := services.ModeSingle
	if rec.IsTwin() {
		mode = services.ModeTwin
	}
	writeJSON(w, r, http.StatusOK, dto.RunResponse{
		RunKey:     rec.Key,
		Mode:       mode,
		ReuseCount: rec.ReuseCount,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		Record:     rec,
	})
}

func (h *OptimizeHandler) serve(w http.ResponseWriter, r *http.Request, forceTwin bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, config.FormatValidationError(err).Error())
		return
	}
	if forceTwin && req.Twin == nil {
		req.Twin = &dto.TwinRequest{}
	}

	sc, err := h.toScenario(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Optimizer.Optimize(r.Context(), sc)
	if errors.Is(err, services.ErrInvalidRequest) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("optimize failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "engine error")
		return
	}

	rec := res.Record
	if rec.IsTwin() {
		results := rec.TwinResults
		if results == nil {
			results = &domain.TwinResults{}
		}
		writeJSON(w, r, http.StatusOK, dto.TwinOptimizeResponse{
			RunKey:     res.Key,
			Reused:     res.Reused,
			ReuseCount: rec.ReuseCount,
			Results:    results,
			Top:        rec.TwinTop,
		})
		return
	}

	results := rec.Results
	if results == nil {
		results = []domain.CandidateResult{}
	}
	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		RunKey:     res.Key,
		Reused:     res.Reused,
		ReuseCount: rec.ReuseCount,
		Results:    results,
		Top:        rec.Top,
	})
}

func (h *OptimizeHandler) toScenario(req dto.OptimizeRequest) (domain.Scenario, error) {
	locations := make([]string, 0, len(req.Locations))
	for _, l := range req.Locations {
		locations = append(locations, strings.TrimSpace(l))
	}

	// Demand keys are trimmed like locations so they keep matching.
	demand := make(domain.Demand, len(req.Demand))
	for loc, d := range req.Demand {
		name := strings.TrimSpace(loc)
		if _, dup := demand[name]; dup {
			return domain.Scenario{}, fmt.Errorf("duplicate demand for location %q", name)
		}
		demand[name] = d
	}

	sc := domain.Scenario{
		Terminal:  strings.TrimSpace(req.Terminal),
		Locations: locations,
		Params:    req.Params.ToDomain(),
		Demand:    demand,
	}

	if req.Twin != nil {
		ratios := req.Twin.Ratios
		if len(ratios) == 0 {
			ratios = h.DefaultRatios
		}
		twin, err := domain.NewTwinConfig(ratios, req.Twin.EnforceSameVessel, req.Twin.VesselNames, req.Twin.ShareTerminalORU)
		if err != nil {
			return domain.Scenario{}, err
		}
		sc.Twin = twin
	}

	return sc, nil
}
