package cli

import (
	"fmt"
	"lng-supply-optimizer/internal/api/dto"
	"lng-supply-optimizer/internal/config"
	"lng-supply-optimizer/internal/domain"
	"os"

	"gopkg.in/yaml.v3"
)

type twinFile struct {
	Ratios            []string `yaml:"ratios"`
	EnforceSameVessel bool     `yaml:"enforce_same_vessel"`
	VesselNames       []string `yaml:"vessel_names"`
	ShareTerminalORU  bool     `yaml:"share_terminal_oru"`
}

type scenarioFile struct {
	Terminal  string                     `yaml:"terminal"`
	Locations []string                   `yaml:"locations"`
	Params    *dto.ScenarioParamsRequest `yaml:"params" validate:"required"`
	Demand    map[string]float64         `yaml:"demand"`
	Twin      *twinFile                  `yaml:"twin"`
}

// LoadScenario reads a YAML scenario file. forceTwin enables the twin model
// with default ratios when the file has no twin block.
func LoadScenario(path string, forceTwin bool) (domain.Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("load scenario: read %q: %w", path, err)
	}

	var f scenarioFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return domain.Scenario{}, fmt.Errorf("load scenario: parse %q: %w", path, err)
	}
	if err := config.NewValidator().Validate(f); err != nil {
		return domain.Scenario{}, fmt.Errorf("load scenario: %q: %w", path, err)
	}

	sc := domain.Scenario{
		Terminal:  f.Terminal,
		Locations: f.Locations,
		Params:    f.Params.ToDomain(),
		Demand:    domain.Demand(f.Demand),
	}

	if f.Twin == nil && forceTwin {
		f.Twin = &twinFile{}
	}
	if f.Twin != nil {
		twin, err := domain.NewTwinConfig(f.Twin.Ratios, f.Twin.EnforceSameVessel, f.Twin.VesselNames, f.Twin.ShareTerminalORU)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("load scenario: %w", err)
		}
		sc.Twin = twin
	}

	return sc, nil
}
