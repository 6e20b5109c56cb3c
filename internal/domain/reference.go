package domain

import (
	"fmt"
	"strings"
)

// Read-only reference datasets loaded for a single run.
// It is passed explicitly through the search and never shared between requests.
type ReferenceSnapshot struct {
	Vessels []Vessel
	Legs    []RouteLeg
	ORU     map[string]float64
}

// VesselsNamed returns the vessels whose names appear in names, in snapshot order.
// An empty names list selects every vessel.
func (s ReferenceSnapshot) VesselsNamed(names []string) []Vessel {
	if len(names) == 0 {
		return s.Vessels
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := make([]Vessel, 0, len(names))
	for _, v := range s.Vessels {
		if _, ok := want[v.Name]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Reference datasets in their list form, as held in seed and dataset files.
type ReferenceDataset struct {
	Vessels []Vessel   `json:"vessels" yaml:"vessels"`
	Routes  []RouteLeg `json:"routes" yaml:"routes"`
	ORU     []ORUCapex `json:"oru" yaml:"oru"`
}

// Validate rejects rows that could never participate in a run.
func (d ReferenceDataset) Validate() error {
	for i, v := range d.Vessels {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vessel at index %d: %w", i+1, err)
		}
	}
	for i, r := range d.Routes {
		if strings.TrimSpace(r.Origin) == "" || strings.TrimSpace(r.Destination) == "" {
			return fmt.Errorf("route at index %d: origin and destination must be non-empty", i+1)
		}
		if r.DistanceNM < 0 {
			return fmt.Errorf("route at index %d: distance must be >= 0", i+1)
		}
	}
	for i, o := range d.ORU {
		if strings.TrimSpace(o.Location) == "" {
			return fmt.Errorf("oru at index %d: location must be non-empty", i+1)
		}
	}
	return nil
}
