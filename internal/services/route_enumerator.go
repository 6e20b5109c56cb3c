package services

import (
	"errors"
	"lng-supply-optimizer/internal/domain"

	"gonum.org/v1/gonum/stat/combin"
)

// EnumerateRoutes returns every ordering of locations as a closed tour
// anchored at terminal. N locations yield N! routes; the order of the
// returned slice is deterministic for a given input order.
func EnumerateRoutes(terminal string, locations []string) ([]domain.Route, error) {
	if terminal == "" {
		return nil, errors.New("enumerate routes: terminal must be non-empty")
	}

	n := len(locations)
	if n == 0 {
		return []domain.Route{}, nil
	}

	perms := combin.Permutations(n, n)
	routes := make([]domain.Route, 0, len(perms))
	for _, p := range perms {
		r := make(domain.Route, 0, n+2)
		r = append(r, terminal)
		for _, i := range p {
			r = append(r, locations[i])
		}
		r = append(r, terminal)
		routes = append(routes, r)
	}

	return routes, nil
}

// RouteCount is the number of routes EnumerateRoutes produces for n locations.
func RouteCount(n int) int {
	if n <= 0 {
		return 0
	}
	return combin.NumPermutations(n, n)
}
