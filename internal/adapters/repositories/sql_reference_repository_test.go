package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/db"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitSchema(conn))
	return conn
}

func testDataset() domain.ReferenceDataset {
	return domain.ReferenceDataset{
		Vessels: []domain.Vessel{
			{Name: "Small", CapacityM3: 7500, SpeedKnots: 12, FuelLaden: 18, FuelBallast: 16, FuelBerth: 4, CharterRateUSD: 25000, PortCostPerCall: 15000},
			{Name: "Large", CapacityM3: 30000, SpeedKnots: 14, FuelLaden: 40, FuelBallast: 35, FuelBerth: 8, CharterRateUSD: 60000, PortCostPerCall: 30000},
		},
		Routes: []domain.RouteLeg{
			{Origin: "T", Destination: "A", DistanceNM: 120},
			{Origin: "A", Destination: "T", DistanceNM: 125},
		},
		ORU: []domain.ORUCapex{
			{Location: "A", CapexUSD: 4_000_000},
		},
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, InitSchema(conn))
	assert.Error(t, InitSchema(nil))
}

func TestSeedAndList(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, Seed(conn, db.SQLite, testDataset()))

	repo := NewSQLReferenceRepository(conn)
	ctx := context.Background()

	vessels, err := repo.ListVessels(ctx)
	require.NoError(t, err)
	require.Len(t, vessels, 2)
	// Ordered by name.
	assert.Equal(t, "Large", vessels[0].Name)
	assert.Equal(t, testDataset().Vessels[0], vessels[1])

	legs, err := repo.ListRouteLegs(ctx)
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, domain.RouteLeg{Origin: "A", Destination: "T", DistanceNM: 125}, legs[0])

	oru, err := repo.ListORUCapex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ORUCapex{{Location: "A", CapexUSD: 4_000_000}}, oru)
}

func TestSeedUpsertsExistingRows(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, Seed(conn, db.SQLite, testDataset()))

	updated := testDataset()
	updated.Vessels[0].CharterRateUSD = 27000
	updated.Routes[0].DistanceNM = 130
	require.NoError(t, Seed(conn, db.SQLite, updated))

	repo := NewSQLReferenceRepository(conn)
	vessels, err := repo.ListVessels(context.Background())
	require.NoError(t, err)
	require.Len(t, vessels, 2)
	assert.Equal(t, 27000.0, vessels[1].CharterRateUSD)

	legs, err := repo.ListRouteLegs(context.Background())
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, 130.0, legs[1].DistanceNM)
}

func TestSeedFromJSON(t *testing.T) {
	conn := openTestDB(t)

	raw, err := json.Marshal(testDataset())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "reference.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	require.NoError(t, SeedFromJSON(conn, db.SQLite, path))

	vessels, err := NewSQLReferenceRepository(conn).ListVessels(context.Background())
	require.NoError(t, err)
	assert.Len(t, vessels, 2)

	assert.Error(t, SeedFromJSON(conn, db.SQLite, filepath.Join(t.TempDir(), "missing.json")))
}

func TestSeedRejectsInvalidDataset(t *testing.T) {
	conn := openTestDB(t)
	bad := testDataset()
	bad.Vessels[0].SpeedKnots = 0
	assert.Error(t, Seed(conn, db.SQLite, bad))
}
