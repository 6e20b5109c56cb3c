package services

import "lng-supply-optimizer/internal/domain"

// Annual operating cost breakdown for one vessel on one route.
type Opex struct {
	FuelTonsPerVoyage float64
	LNGFuelPerVoyage  float64
	VoyagesPerYear    float64
	LNGFuelCostUSD    float64
	PortCostUSD       float64
	CharterCostUSD    float64
	ORUMaintenanceUSD float64
	TotalUSDPerYear   float64
	PerMMBTU          float64
	FuelCostMGOUSD    float64
}

// ComputeOpex prices fuel, port calls, charter and ORU maintenance per year.
// vessel must already be inflation-adjusted.
func ComputeOpex(
	vessel domain.Vessel,
	lg *Logistics,
	capexTotalUSD float64,
	params domain.ScenarioParams,
) Opex {
	var o Opex

	o.FuelTonsPerVoyage = lg.LadenHours/HoursPerDay*vessel.FuelLaden +
		lg.BallastHours/HoursPerDay*vessel.FuelBallast +
		lg.BerthHours/HoursPerDay*vessel.FuelBerth
	o.LNGFuelPerVoyage = o.FuelTonsPerVoyage * params.LNGToMGORatio()

	// working volume / demand rate is the stock one round trip carries.
	if stock := lg.StockDays(); stock > 0 {
		o.VoyagesPerYear = DaysPerYear / stock
	}

	o.LNGFuelCostUSD = o.VoyagesPerYear * o.LNGFuelPerVoyage * params.LNGPriceUSD
	o.PortCostUSD = o.VoyagesPerYear * vessel.PortCostPerCall * float64(lg.Calls)
	o.CharterCostUSD = vessel.CharterRateUSD * DaysPerYear
	o.ORUMaintenanceUSD = capexTotalUSD * ORUMaintenanceRatio
	o.TotalUSDPerYear = o.LNGFuelCostUSD + o.PortCostUSD + o.CharterCostUSD + o.ORUMaintenanceUSD

	o.FuelCostMGOUSD = o.VoyagesPerYear * o.FuelTonsPerVoyage * params.DieselPriceUSD

	energy := lg.DemandBBTUD * DaysPerYear * MMBTUPerBBTU
	if energy > 0 {
		o.PerMMBTU = o.TotalUSDPerYear / energy
	}

	return o
}
