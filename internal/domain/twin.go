package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTwinRatios is used when a twin request names no ratios.
var DefaultTwinRatios = []string{"50:50", "60:40", "70:30", "80:20", "90:10"}

// Named split of combined demand between two vessel slots.
type RatioSplit struct {
	Label  string
	Share1 float64
	Share2 float64
}

// ParseRatio parses labels of the form "70:30" into fractional shares.
func ParseRatio(label string) (RatioSplit, error) {
	parts := strings.Split(strings.TrimSpace(label), ":")
	if len(parts) != 2 {
		return RatioSplit{}, fmt.Errorf("parse ratio %q: want form a:b", label)
	}

	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return RatioSplit{}, fmt.Errorf("parse ratio %q: %w", label, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return RatioSplit{}, fmt.Errorf("parse ratio %q: %w", label, err)
	}
	if a <= 0 || b <= 0 {
		return RatioSplit{}, fmt.Errorf("parse ratio %q: both sides must be positive", label)
	}

	total := float64(a + b)
	return RatioSplit{
		Label:  fmt.Sprintf("%d:%d", a, b),
		Share1: float64(a) / total,
		Share2: float64(b) / total,
	}, nil
}

// Twin-vessel options, validated once by NewTwinConfig.
type TwinConfig struct {
	Ratios            []string `json:"ratios"`
	EnforceSameVessel bool     `json:"enforce_same_vessel"`
	VesselNames       []string `json:"vessel_names,omitempty"`
	ShareTerminalORU  bool     `json:"share_terminal_oru"`

	splits []RatioSplit
}

func NewTwinConfig(ratios []string, enforceSameVessel bool, vesselNames []string, shareTerminalORU bool) (*TwinConfig, error) {
	if len(ratios) == 0 {
		ratios = DefaultTwinRatios
	}

	seen := make(map[string]struct{}, len(ratios))
	labels := make([]string, 0, len(ratios))
	splits := make([]RatioSplit, 0, len(ratios))
	for _, r := range ratios {
		split, err := ParseRatio(r)
		if err != nil {
			return nil, fmt.Errorf("twin config: %w", err)
		}
		if _, ok := seen[split.Label]; ok {
			continue
		}
		seen[split.Label] = struct{}{}
		labels = append(labels, split.Label)
		splits = append(splits, split)
	}

	names := make([]string, 0, len(vesselNames))
	for _, n := range vesselNames {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("twin config: vessel name must be non-empty")
		}
		names = append(names, n)
	}

	return &TwinConfig{
		Ratios:            labels,
		EnforceSameVessel: enforceSameVessel,
		VesselNames:       names,
		ShareTerminalORU:  shareTerminalORU,
		splits:            splits,
	}, nil
}

// Splits returns the parsed ratios in request order.
// A TwinConfig built by hand (e.g. decoded from storage) is parsed lazily.
func (c *TwinConfig) Splits() ([]RatioSplit, error) {
	if c.splits != nil {
		return c.splits, nil
	}
	parsed, err := NewTwinConfig(c.Ratios, c.EnforceSameVessel, c.VesselNames, c.ShareTerminalORU)
	if err != nil {
		return nil, err
	}
	return parsed.splits, nil
}
