package domain

// Priced vessel/route pair. Produced once by the engine and never mutated.
type CandidateResult struct {
	Vessel              string  `json:"vessel"`
	Route               Route   `json:"route"`
	TotalDistanceNM     float64 `json:"total_distance_nm"`
	RoundTripDays       float64 `json:"round_trip_days"`
	BufferDays          float64 `json:"buffer_days"`
	DemandM3PerDay      float64 `json:"demand_m3_per_day"`
	DemandBBTUD         float64 `json:"demand_bbtud"`
	RequiredCapacityM3  float64 `json:"required_capacity_m3"`
	VesselCapacityM3    float64 `json:"vessel_capacity_m3"`
	TotalCapexUSD       float64 `json:"total_capex_usd"`
	CapexPerMMBTU       float64 `json:"capex_per_mmbtu"`
	TotalOpexUSDPerYear float64 `json:"total_opex_usd_per_year"`
	OpexPerMMBTU        float64 `json:"opex_per_mmbtu"`
	TotalCostPerMMBTU   float64 `json:"total_cost_per_mmbtu"`
	FuelCostMGOPerYear  float64 `json:"fuel_cost_mgo_per_year"`
}

// One slot of a twin deployment, tagged with the ratio it was evaluated under.
type TwinSlotResult struct {
	Ratio string  `json:"ratio"`
	Share float64 `json:"share"`
	CandidateResult
}

// Paired deployment: the best route of each slot for one ratio and vessel pair.
type TwinCombinedResult struct {
	Ratio               string          `json:"ratio"`
	Vessel1             CandidateResult `json:"vessel_1"`
	Vessel2             CandidateResult `json:"vessel_2"`
	SharedTerminalORU   bool            `json:"shared_terminal_oru"`
	TotalCapexUSD       float64         `json:"total_capex_usd"`
	CapexPerMMBTU       float64         `json:"capex_per_mmbtu"`
	TotalOpexUSDPerYear float64         `json:"total_opex_usd_per_year"`
	OpexPerMMBTU        float64         `json:"opex_per_mmbtu"`
	TotalCostPerMMBTU   float64         `json:"total_cost_per_mmbtu"`
}

// Three rankings produced by the twin model.
type TwinResults struct {
	Vessel1 []TwinSlotResult     `json:"kapal_1"`
	Vessel2 []TwinSlotResult     `json:"kapal_2"`
	Total   []TwinCombinedResult `json:"total"`
}
