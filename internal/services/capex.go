package services

import "lng-supply-optimizer/internal/domain"

// Storage tank sizing and cost at one demand stop.
type StopCapex struct {
	Location     string
	NetStorageM3 float64
	TankM3       float64
	TankCostUSD  float64
	ORUCapexUSD  float64
}

type Capex struct {
	Stops []StopCapex
	// Terminal ORU capex charged because the vessel is below the small-vessel threshold.
	TerminalORUUSD float64
	TotalUSD       float64
	PerMMBTU       float64
}

// ComputeCapex prices storage tanks and ORUs for every stop on the route and
// amortises the total over the delivery horizon.
func ComputeCapex(
	vessel domain.Vessel,
	terminal string,
	lg *Logistics,
	oru map[string]float64,
	params domain.ScenarioParams,
) Capex {
	inflation := params.InflationFactor()

	var c Capex
	// Stops are visited in route order so the breakdown is stable.
	for _, loc := range lg.stopOrder {
		dailyM3 := lg.StopDemandM3[loc]
		net := dailyM3*lg.RoundTripDays + dailyM3*lg.BufferDays
		tank := RoundUp(net*(1+params.GrossStorageMargin), TankBlockM3)

		sc := StopCapex{
			Location:     loc,
			NetStorageM3: net,
			TankM3:       tank,
			TankCostUSD:  tank / TankBlockM3 * TankBlockCostUSD * inflation,
			ORUCapexUSD:  oru[loc],
		}
		c.Stops = append(c.Stops, sc)
		c.TotalUSD += sc.TankCostUSD + sc.ORUCapexUSD
	}

	if vessel.CapacityM3 < SmallVesselThresholdM3 {
		c.TerminalORUUSD = oru[terminal]
		c.TotalUSD += c.TerminalORUUSD
	}

	energy := lg.DemandBBTUD * DaysPerYear * DeliveryHorizonYears * MMBTUPerBBTU
	if energy > 0 {
		c.PerMMBTU = c.TotalUSD / energy
	}

	return c
}
