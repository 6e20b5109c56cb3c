package services

import "lng-supply-optimizer/internal/domain"

// DistanceIndex is a directed lookup from "origin|destination" to nautical miles.
type DistanceIndex map[string]float64

func legKey(origin, destination string) string { return origin + "|" + destination }

// NewDistanceIndex builds the index from route legs. Later duplicates win.
func NewDistanceIndex(legs []domain.RouteLeg) DistanceIndex {
	idx := make(DistanceIndex, len(legs))
	for _, l := range legs {
		idx[legKey(l.Origin, l.Destination)] = l.DistanceNM
	}
	return idx
}

// Distance returns the leg distance and false when the leg is missing.
// Direction matters: A->B and B->A are looked up independently.
func (d DistanceIndex) Distance(origin, destination string) (float64, bool) {
	nm, ok := d[legKey(origin, destination)]
	return nm, ok
}

// RouteDistances returns every leg distance of the route in order,
// or false if any leg is absent.
func (d DistanceIndex) RouteDistances(route domain.Route) ([]float64, bool) {
	legs := route.Legs()
	out := make([]float64, 0, len(legs))
	for _, l := range legs {
		nm, ok := d.Distance(l[0], l[1])
		if !ok {
			return nil, false
		}
		out = append(out, nm)
	}
	return out, true
}
