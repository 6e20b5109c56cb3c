package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/obs"
)

// SQL-backed implementation of the ReferenceRepository port.
// Queries carry no placeholders, so they run unchanged on postgres and SQLite.
type SQLReferenceRepository struct{ DB *sql.DB }

func NewSQLReferenceRepository(db *sql.DB) *SQLReferenceRepository {
	return &SQLReferenceRepository{DB: db}
}

// Return all vessels ordered by name.
func (s *SQLReferenceRepository) ListVessels(ctx context.Context) (_ []domain.Vessel, err error) {
	defer obs.Time(ctx, "reference.sql.ListVessels")(&err)

	if s.DB == nil {
		return nil, errors.New("sql reference repository: DB is nil")
	}

	query := `
	SELECT
		name, capacity_m3, speed_knots, fuel_laden, fuel_ballast,
		fuel_berth, charter_rate_usd, port_cost_usd
	FROM vessels
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vessels: query vessels table: %w", err)
	}
	defer rows.Close()

	vessels := make([]domain.Vessel, 0, 16)
	for rows.Next() {
		var v domain.Vessel
		if err := rows.Scan(&v.Name, &v.CapacityM3, &v.SpeedKnots, &v.FuelLaden,
			&v.FuelBallast, &v.FuelBerth, &v.CharterRateUSD, &v.PortCostPerCall); err != nil {
			return nil, fmt.Errorf("list vessels: scan row: %w", err)
		}
		vessels = append(vessels, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vessels: row iteration: %w", err)
	}

	return vessels, nil
}

// Return every directed route leg.
func (s *SQLReferenceRepository) ListRouteLegs(ctx context.Context) (_ []domain.RouteLeg, err error) {
	defer obs.Time(ctx, "reference.sql.ListRouteLegs")(&err)

	if s.DB == nil {
		return nil, errors.New("sql reference repository: DB is nil")
	}

	query := `
	SELECT origin, destination, distance_nm
	FROM route_legs
	ORDER BY origin, destination;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list route legs: query route_legs table: %w", err)
	}
	defer rows.Close()

	legs := make([]domain.RouteLeg, 0, 64)
	for rows.Next() {
		var l domain.RouteLeg
		if err := rows.Scan(&l.Origin, &l.Destination, &l.DistanceNM); err != nil {
			return nil, fmt.Errorf("list route legs: scan row: %w", err)
		}
		legs = append(legs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list route legs: row iteration: %w", err)
	}

	return legs, nil
}

// Return ORU capex records.
func (s *SQLReferenceRepository) ListORUCapex(ctx context.Context) (_ []domain.ORUCapex, err error) {
	defer obs.Time(ctx, "reference.sql.ListORUCapex")(&err)

	if s.DB == nil {
		return nil, errors.New("sql reference repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT location, capex_usd FROM oru_capex ORDER BY location;`)
	if err != nil {
		return nil, fmt.Errorf("list oru capex: query oru_capex table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ORUCapex, 0, 16)
	for rows.Next() {
		var o domain.ORUCapex
		if err := rows.Scan(&o.Location, &o.CapexUSD); err != nil {
			return nil, fmt.Errorf("list oru capex: scan row: %w", err)
		}
		out = append(out, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list oru capex: row iteration: %w", err)
	}

	return out, nil
}
