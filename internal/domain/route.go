package domain

// Directed distance between two locations, in nautical miles.
// A->B and B->A are independent legs.
type RouteLeg struct {
	Origin      string  `json:"origin" yaml:"origin"`
	Destination string  `json:"destination" yaml:"destination"`
	DistanceNM  float64 `json:"distance_nm" yaml:"distance_nm"`
}

// Fixed onshore receiving unit capital cost for a location.
type ORUCapex struct {
	Location string  `json:"location" yaml:"location"`
	CapexUSD float64 `json:"capex_usd" yaml:"capex_usd"`
}

// Closed tour anchored at the terminal: [terminal, p1, ..., pN, terminal].
type Route []string

// Stops returns the demand locations visited, excluding both terminal ends.
func (r Route) Stops() []string {
	if len(r) < 2 {
		return nil
	}
	return r[1 : len(r)-1]
}

// Legs returns the consecutive (origin, destination) pairs of the tour.
func (r Route) Legs() [][2]string {
	if len(r) < 2 {
		return nil
	}
	legs := make([][2]string, 0, len(r)-1)
	for i := 0; i+1 < len(r); i++ {
		legs = append(legs, [2]string{r[i], r[i+1]})
	}
	return legs
}
