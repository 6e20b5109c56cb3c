package services

const (
	// MMBTU of LNG per cubic meter; converts BBTUD demand to m3/day.
	MMBTUPerM3 = 24.04
	// MMBTU per BBTU.
	MMBTUPerBBTU = 1000.0

	HoursPerDay = 24.0
	DaysPerYear = 365.0

	// Required vessel capacity is rounded up to this increment (m3).
	CapacityIncrementM3 = 100.0
	// Storage tanks are sized and priced in blocks of this volume (m3).
	TankBlockM3 = 500.0
	// USD per tank block before inflation.
	TankBlockCostUSD = 1_500_000.0

	// Vessels below this capacity (m3) require receiving infrastructure at the terminal.
	SmallVesselThresholdM3 = 20_000.0

	// CAPEX amortisation horizon in years.
	DeliveryHorizonYears = 20.0

	// Annual ORU operating cost as a fraction of total CAPEX.
	ORUMaintenanceRatio = 0.05

	// Tolerance applied before rounding up, so values that are exact
	// multiples up to float noise are not pushed into the next increment.
	roundingEpsilon = 1e-9
)

// BBTUDToM3PerDay converts daily energy demand to LNG volume per day.
func BBTUDToM3PerDay(bbtud float64) float64 {
	return bbtud * MMBTUPerBBTU / MMBTUPerM3
}
