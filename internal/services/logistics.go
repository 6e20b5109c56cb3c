package services

import (
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"

	"gonum.org/v1/gonum/floats"
)

// Physical voyage and tank sizing figures for one vessel on one route.
type Logistics struct {
	LegDistancesNM  []float64
	TotalDistanceNM float64

	SailingHours float64
	// Laden portion: every leg except the final return to the terminal.
	LadenHours   float64
	BallastHours float64
	// Loading/berth time at the terminal and every stop.
	BerthHours float64
	Calls      int

	RoundTripDays float64
	BufferDays    float64

	StopDemandM3 map[string]float64
	stopOrder    []string
	DemandM3     float64
	DemandBBTUD  float64

	WorkingVolumeM3    float64
	UnpumpableM3       float64
	BoilOffM3          float64
	MaxFillM3          float64
	NominalCapacityM3  float64
	RequiredCapacityM3 float64
}

// Reasons a vessel/route pair is excluded from ranking.
var (
	ErrMissingLeg       = errors.New("route has a missing distance leg")
	ErrCapacityExceeded = errors.New("required capacity exceeds vessel capacity")
	ErrBoilOffOverflow  = errors.New("boil-off over the round trip consumes the cargo")
	ErrInvalidVessel    = errors.New("vessel has invalid physical data")
)

// ComputeLogistics derives voyage timing and tank volumes. It returns
// ErrMissingLeg when the route cannot be sailed; capacity feasibility
// is checked separately by CheckFeasibility.
func ComputeLogistics(
	vessel domain.Vessel,
	route domain.Route,
	idx DistanceIndex,
	demand domain.Demand,
	params domain.ScenarioParams,
) (*Logistics, error) {
	if vessel.SpeedKnots <= 0 {
		return nil, ErrInvalidVessel
	}

	dists, ok := idx.RouteDistances(route)
	if !ok {
		return nil, ErrMissingLeg
	}
	if len(dists) == 0 {
		return nil, fmt.Errorf("compute logistics: route %v has no legs", route)
	}

	stops := route.Stops()
	lg := &Logistics{
		LegDistancesNM:  dists,
		TotalDistanceNM: floats.Sum(dists),
		Calls:           len(stops) + 1,
		StopDemandM3:    make(map[string]float64, len(stops)),
		stopOrder:       stops,
	}

	lg.SailingHours = lg.TotalDistanceNM / vessel.SpeedKnots
	lg.BallastHours = dists[len(dists)-1] / vessel.SpeedKnots
	lg.LadenHours = lg.SailingHours - lg.BallastHours
	lg.BerthHours = params.LoadingHours * float64(lg.Calls)
	lg.RoundTripDays = (lg.SailingHours + lg.BerthHours) / HoursPerDay

	stopBBTUD := make([]float64, 0, len(stops))
	for _, s := range stops {
		bbtud := demand[s]
		stopBBTUD = append(stopBBTUD, bbtud)
		lg.StopDemandM3[s] = BBTUDToM3PerDay(bbtud)
	}
	lg.DemandBBTUD = floats.Sum(stopBBTUD)
	lg.DemandM3 = BBTUDToM3PerDay(lg.DemandBBTUD)

	lg.BufferDays = RoundUpDecimals(params.MaintenanceDays/DaysPerYear*lg.RoundTripDays, 1)

	lg.WorkingVolumeM3 = lg.DemandM3*lg.RoundTripDays + lg.DemandM3*lg.BufferDays
	lg.UnpumpableM3 = lg.WorkingVolumeM3 * (1/(1-params.UnpumpableFraction) - 1)

	bogDenominator := 1 - params.BoilOffFraction*lg.RoundTripDays
	if bogDenominator <= 0 {
		return nil, ErrBoilOffOverflow
	}
	lg.BoilOffM3 = lg.WorkingVolumeM3 * (1/bogDenominator - 1)

	lg.MaxFillM3 = lg.WorkingVolumeM3 + lg.UnpumpableM3 + lg.BoilOffM3
	lg.NominalCapacityM3 = lg.MaxFillM3 / params.FillingFraction
	lg.RequiredCapacityM3 = RoundUp(lg.NominalCapacityM3, CapacityIncrementM3)

	return lg, nil
}

// StockDays is how many days of demand one round trip carries.
func (lg *Logistics) StockDays() float64 {
	return lg.RoundTripDays + lg.BufferDays
}

// CheckFeasibility rejects a vessel too small for the required capacity.
func CheckFeasibility(vessel domain.Vessel, lg *Logistics) error {
	if lg.RequiredCapacityM3 > vessel.CapacityM3 {
		return ErrCapacityExceeded
	}
	return nil
}
