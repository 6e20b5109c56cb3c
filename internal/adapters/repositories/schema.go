package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the reference and run record tables. Statements are portable
// between postgres and SQLite.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVesselsQuery := `
	CREATE TABLE IF NOT EXISTS vessels (
		name TEXT PRIMARY KEY,
		capacity_m3 DOUBLE PRECISION NOT NULL,
		speed_knots DOUBLE PRECISION NOT NULL,
		fuel_laden DOUBLE PRECISION NOT NULL,
		fuel_ballast DOUBLE PRECISION NOT NULL,
		fuel_berth DOUBLE PRECISION NOT NULL,
		charter_rate_usd DOUBLE PRECISION NOT NULL,
		port_cost_usd DOUBLE PRECISION NOT NULL
	);
	`

	createRouteLegsQuery := `
	CREATE TABLE IF NOT EXISTS route_legs (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_nm DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createORUQuery := `
	CREATE TABLE IF NOT EXISTS oru_capex (
		location TEXT PRIMARY KEY,
		capex_usd DOUBLE PRECISION NOT NULL
	);
	`

	createRunRecordsQuery := `
	CREATE TABLE IF NOT EXISTS run_records (
		run_key TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		payload TEXT NOT NULL,
		reuse_count INTEGER NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	);
	`

	statements := []string{
		createVesselsQuery,
		createRouteLegsQuery,
		createORUQuery,
		createRunRecordsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
