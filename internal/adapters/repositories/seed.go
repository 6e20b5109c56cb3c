package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/db"
	"os"
)

// Populate the reference tables from a JSON file. Existing rows with the
// same key are updated.
func SeedFromJSON(conn *sql.DB, dialect db.Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed reference: read %q: %w", jsonPath, err)
	}

	var data domain.ReferenceDataset
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed reference: parse json: %w", err)
	}

	return Seed(conn, dialect, data)
}

// Seed writes the given reference datasets in one transaction.
func Seed(conn *sql.DB, dialect db.Dialect, data domain.ReferenceDataset) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("seed reference: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed reference: begin tx: %w", err)
	}
	defer tx.Rollback()

	vesselStmt, err := tx.Prepare(db.Rebind(dialect, `
	INSERT INTO vessels (
		name, capacity_m3, speed_knots, fuel_laden, fuel_ballast,
		fuel_berth, charter_rate_usd, port_cost_usd
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET
		capacity_m3 = excluded.capacity_m3,
		speed_knots = excluded.speed_knots,
		fuel_laden = excluded.fuel_laden,
		fuel_ballast = excluded.fuel_ballast,
		fuel_berth = excluded.fuel_berth,
		charter_rate_usd = excluded.charter_rate_usd,
		port_cost_usd = excluded.port_cost_usd;
	`))
	if err != nil {
		return fmt.Errorf("seed reference: prepare vessel insert: %w", err)
	}
	defer vesselStmt.Close()

	for _, v := range data.Vessels {
		if _, err := vesselStmt.Exec(v.Name, v.CapacityM3, v.SpeedKnots, v.FuelLaden,
			v.FuelBallast, v.FuelBerth, v.CharterRateUSD, v.PortCostPerCall); err != nil {
			return fmt.Errorf("seed reference: insert vessel %q: %w", v.Name, err)
		}
	}

	legStmt, err := tx.Prepare(db.Rebind(dialect, `
	INSERT INTO route_legs (origin, destination, distance_nm)
	VALUES (?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE SET
		distance_nm = excluded.distance_nm;
	`))
	if err != nil {
		return fmt.Errorf("seed reference: prepare route insert: %w", err)
	}
	defer legStmt.Close()

	for _, r := range data.Routes {
		if _, err := legStmt.Exec(r.Origin, r.Destination, r.DistanceNM); err != nil {
			return fmt.Errorf("seed reference: insert route %q -> %q: %w", r.Origin, r.Destination, err)
		}
	}

	oruStmt, err := tx.Prepare(db.Rebind(dialect, `
	INSERT INTO oru_capex (location, capex_usd)
	VALUES (?, ?)
	ON CONFLICT (location) DO UPDATE SET
		capex_usd = excluded.capex_usd;
	`))
	if err != nil {
		return fmt.Errorf("seed reference: prepare oru insert: %w", err)
	}
	defer oruStmt.Close()

	for _, o := range data.ORU {
		if _, err := oruStmt.Exec(o.Location, o.CapexUSD); err != nil {
			return fmt.Errorf("seed reference: insert oru %q: %w", o.Location, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed reference: commit tx: %w", err)
	}

	return nil
}
