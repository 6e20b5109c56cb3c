package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Candidate LNG carrier. Fuel rates are tons/day for each sailing phase.
// Vessels are reference data and are never mutated during a run;
// Inflate returns an adjusted copy.
type Vessel struct {
	Name            string  `json:"name" yaml:"name"`
	CapacityM3      float64 `json:"capacity_m3" yaml:"capacity_m3"`
	SpeedKnots      float64 `json:"speed_knots" yaml:"speed_knots"`
	FuelLaden       float64 `json:"fuel_laden" yaml:"fuel_laden"`
	FuelBallast     float64 `json:"fuel_ballast" yaml:"fuel_ballast"`
	FuelBerth       float64 `json:"fuel_berth" yaml:"fuel_berth"`
	CharterRateUSD  float64 `json:"charter_rate_usd" yaml:"charter_rate_usd"`
	PortCostPerCall float64 `json:"port_cost_usd" yaml:"port_cost_usd"`
}

// Inflate scales charter and port cost by the given factor.
func (v Vessel) Inflate(factor float64) Vessel {
	out := v
	out.CharterRateUSD = v.CharterRateUSD * factor
	out.PortCostPerCall = v.PortCostPerCall * factor
	return out
}

func (v Vessel) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("vessel: name must be non-empty")
	}
	if v.CapacityM3 <= 0 {
		return fmt.Errorf("vessel %q: capacity must be > 0", v.Name)
	}
	if v.SpeedKnots <= 0 {
		return fmt.Errorf("vessel %q: speed must be > 0", v.Name)
	}
	return nil
}
