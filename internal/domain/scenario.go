package domain

import "math"

// Location -> daily demand in BBTUD.
type Demand map[string]float64

// Numeric constants of a scenario. Every field is required at the boundary;
// the engine assumes they are present.
type ScenarioParams struct {
	SCFLNG             float64 `json:"scf_lng" yaml:"scf_lng"`
	SCFMGO             float64 `json:"scf_mgo" yaml:"scf_mgo"`
	LoadingHours       float64 `json:"loading_hours" yaml:"loading_hours"`
	MaintenanceDays    float64 `json:"maintenance_days" yaml:"maintenance_days"`
	UnpumpableFraction float64 `json:"unpumpable_fraction" yaml:"unpumpable_fraction"`
	BoilOffFraction    float64 `json:"boil_off_fraction" yaml:"boil_off_fraction"`
	FillingFraction    float64 `json:"filling_fraction" yaml:"filling_fraction"`
	GrossStorageMargin float64 `json:"gross_storage_margin" yaml:"gross_storage_margin"`
	AnalysisYear       int     `json:"analysis_year" yaml:"analysis_year"`
	BaseYear           int     `json:"base_year" yaml:"base_year"`
	InflationRate      float64 `json:"inflation_rate" yaml:"inflation_rate"`
	LNGPriceUSD        float64 `json:"lng_price_usd" yaml:"lng_price_usd"`
	DieselPriceUSD     float64 `json:"diesel_price_usd" yaml:"diesel_price_usd"`
}

// InflationFactor compounds the inflation rate from the base year to the analysis year.
func (p ScenarioParams) InflationFactor() float64 {
	return math.Pow(1+p.InflationRate, float64(p.AnalysisYear-p.BaseYear))
}

// LNGToMGORatio expresses the energy equivalence used to convert marine
// fuel consumption into an LNG fuel quantity.
func (p ScenarioParams) LNGToMGORatio() float64 {
	if p.SCFMGO == 0 {
		return 0
	}
	return p.SCFLNG / p.SCFMGO
}

// Scenario is one optimisation request after boundary validation.
type Scenario struct {
	Terminal  string         `json:"terminal"`
	Locations []string       `json:"locations"`
	Params    ScenarioParams `json:"params"`
	Demand    Demand         `json:"demand"`
	Twin      *TwinConfig    `json:"twin,omitempty"`
}
