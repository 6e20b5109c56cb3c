package services

import (
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"strings"
)

// DefaultMaxLocations bounds the factorial route search when no limit is configured.
const DefaultMaxLocations = 7

// ValidateScenario applies the boundary rules the engine relies on.
// Failures wrap ErrInvalidRequest.
func ValidateScenario(sc domain.Scenario, maxLocations int) error {
	if maxLocations <= 0 {
		maxLocations = DefaultMaxLocations
	}

	terminal := strings.TrimSpace(sc.Terminal)
	if terminal == "" {
		return invalid("terminal is required")
	}

	n := len(sc.Locations)
	if n == 0 {
		return invalid("at least one location is required")
	}
	if n > maxLocations {
		return invalid("%d locations exceeds the limit of %d", n, maxLocations)
	}

	seen := make(map[string]struct{}, n)
	total := 0.0
	for _, loc := range sc.Locations {
		if strings.TrimSpace(loc) == "" {
			return invalid("location names must be non-empty")
		}
		if loc == terminal {
			return invalid("location %q is the terminal", loc)
		}
		if _, ok := seen[loc]; ok {
			return invalid("duplicate location %q", loc)
		}
		seen[loc] = struct{}{}

		d, ok := sc.Demand[loc]
		if !ok {
			return invalid("missing demand for location %q", loc)
		}
		if d < 0 {
			return invalid("demand for location %q must be >= 0", loc)
		}
		total += d
	}
	if total <= 0 {
		return invalid("total demand must be > 0")
	}

	p := sc.Params
	if p.SCFMGO <= 0 || p.SCFLNG <= 0 {
		return invalid("scf_lng and scf_mgo must be > 0")
	}
	if p.LoadingHours < 0 || p.MaintenanceDays < 0 {
		return invalid("loading_hours and maintenance_days must be >= 0")
	}
	if p.UnpumpableFraction < 0 || p.UnpumpableFraction >= 1 {
		return invalid("unpumpable_fraction must be in [0, 1)")
	}
	if p.BoilOffFraction < 0 || p.BoilOffFraction >= 1 {
		return invalid("boil_off_fraction must be in [0, 1)")
	}
	if p.FillingFraction <= 0 || p.FillingFraction > 1 {
		return invalid("filling_fraction must be in (0, 1]")
	}
	if p.GrossStorageMargin < 0 {
		return invalid("gross_storage_margin must be >= 0")
	}
	if p.AnalysisYear <= 0 || p.BaseYear <= 0 {
		return invalid("analysis_year and base_year must be > 0")
	}
	if p.InflationRate <= -1 {
		return invalid("inflation_rate must be > -1")
	}

	if sc.Twin != nil {
		if _, err := sc.Twin.Splits(); err != nil {
			return invalid("%v", err)
		}
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
