package main

import (
	"database/sql"
	"flag"
	"lng-supply-optimizer/internal/adapters/repositories"
	"lng-supply-optimizer/internal/config"
	"lng-supply-optimizer/internal/platform/db"
	"log"
)

// dbtool creates the schema and loads the reference seed into the
// configured database.
func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	seedPath := flag.String("seed", "data/seeds/reference.json", "reference seed JSON")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	dialect, err := db.ParseDialect(cfg.Database.Type)
	if err != nil {
		log.Fatal(err)
	}

	var conn *sql.DB
	if dialect == db.Postgres {
		conn, err = db.Open(cfg.Database.URL, db.PoolOptions{
			MaxOpen:     cfg.Database.Pool.MaxOpen,
			MaxIdle:     cfg.Database.Pool.MaxIdle,
			MaxLifetime: cfg.Database.Pool.MaxLifetime,
		})
	} else {
		conn, err = db.OpenSQLite(cfg.Database.Path)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	initAndSeed(conn, dialect, *seedPath)
}

func initAndSeed(conn *sql.DB, dialect db.Dialect, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding reference data from %s...", seedPath)
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
