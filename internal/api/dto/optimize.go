package dto

import (
	"lng-supply-optimizer/internal/domain"
	"time"
)

// Pointers distinguish "absent" from zero: every parameter is required,
// but zero is a legitimate value for most of them.
type ScenarioParamsRequest struct {
	SCFLNG             *float64 `json:"scf_lng" yaml:"scf_lng" validate:"required"`
	SCFMGO             *float64 `json:"scf_mgo" yaml:"scf_mgo" validate:"required"`
	LoadingHours       *float64 `json:"loading_hours" yaml:"loading_hours" validate:"required"`
	MaintenanceDays    *float64 `json:"maintenance_days" yaml:"maintenance_days" validate:"required"`
	UnpumpableFraction *float64 `json:"unpumpable_fraction" yaml:"unpumpable_fraction" validate:"required"`
	BoilOffFraction    *float64 `json:"boil_off_fraction" yaml:"boil_off_fraction" validate:"required"`
	FillingFraction    *float64 `json:"filling_fraction" yaml:"filling_fraction" validate:"required"`
	GrossStorageMargin *float64 `json:"gross_storage_margin" yaml:"gross_storage_margin" validate:"required"`
	AnalysisYear       *int     `json:"analysis_year" yaml:"analysis_year" validate:"required"`
	BaseYear           *int     `json:"base_year" yaml:"base_year" validate:"required"`
	InflationRate      *float64 `json:"inflation_rate" yaml:"inflation_rate" validate:"required"`
	LNGPriceUSD        *float64 `json:"lng_price_usd" yaml:"lng_price_usd" validate:"required"`
	DieselPriceUSD     *float64 `json:"diesel_price_usd" yaml:"diesel_price_usd" validate:"required"`
}

// ToDomain assumes the request passed validation.
func (p ScenarioParamsRequest) ToDomain() domain.ScenarioParams {
	return domain.ScenarioParams{
		SCFLNG:             *p.SCFLNG,
		SCFMGO:             *p.SCFMGO,
		LoadingHours:       *p.LoadingHours,
		MaintenanceDays:    *p.MaintenanceDays,
		UnpumpableFraction: *p.UnpumpableFraction,
		BoilOffFraction:    *p.BoilOffFraction,
		FillingFraction:    *p.FillingFraction,
		GrossStorageMargin: *p.GrossStorageMargin,
		AnalysisYear:       *p.AnalysisYear,
		BaseYear:           *p.BaseYear,
		InflationRate:      *p.InflationRate,
		LNGPriceUSD:        *p.LNGPriceUSD,
		DieselPriceUSD:     *p.DieselPriceUSD,
	}
}

type TwinRequest struct {
	Ratios            []string `json:"ratios"`
	EnforceSameVessel bool     `json:"enforceSameVessel"`
	VesselNames       []string `json:"vesselNames" validate:"omitempty,dive,required"`
	ShareTerminalORU  bool     `json:"shareTerminalORU"`
}

type OptimizeRequest struct {
	Terminal  string                 `json:"terminal" yaml:"terminal" validate:"required"`
	Locations []string               `json:"locations" validate:"required,min=1,dive,required"`
	Params    *ScenarioParamsRequest `json:"params" yaml:"params" validate:"required"`
	Demand    map[string]float64     `json:"demand" yaml:"demand" validate:"required"`
	Twin      *TwinRequest           `json:"twin,omitempty"`
}

type OptimizeResponse struct {
	RunKey     string                   `json:"run_key"`
	Reused     bool                     `json:"reused"`
	ReuseCount int                      `json:"reuse_count"`
	Results    []domain.CandidateResult `json:"results"`
	Top        *domain.CandidateResult  `json:"top"`
}

type TwinOptimizeResponse struct {
	RunKey     string                     `json:"run_key"`
	Reused     bool                       `json:"reused"`
	ReuseCount int                        `json:"reuse_count"`
	Results    *domain.TwinResults        `json:"results"`
	Top        *domain.TwinCombinedResult `json:"top"`
}

type RunResponse struct {
	RunKey     string            `json:"run_key"`
	Mode       string            `json:"mode"`
	ReuseCount int               `json:"reuse_count"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Record     *domain.RunRecord `json:"record"`
}
