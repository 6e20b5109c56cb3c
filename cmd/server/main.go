package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"lng-supply-optimizer/internal/adapters/cache"
	"lng-supply-optimizer/internal/adapters/reference"
	"lng-supply-optimizer/internal/adapters/repositories"
	"lng-supply-optimizer/internal/api"
	"lng-supply-optimizer/internal/config"
	"lng-supply-optimizer/internal/platform/db"
	"lng-supply-optimizer/internal/platform/metrics"
	"lng-supply-optimizer/internal/ports"
	"lng-supply-optimizer/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	configPath := flag.String("config", "", "path to config.yaml")
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
	if needsDatabase(cfg) {
		conn, err = openDB(cfg, dialect)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := initAndSeed(conn, dialect, cfg.Database.SeedPath); err != nil {
			log.Fatal(err)
		}
	}

	ref, err := newReference(cfg, conn)
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := newRunStore(cfg, conn, dialect)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	opt := &services.Optimizer{
		Reference:    ref,
		Store:        store,
		MaxLocations: cfg.Engine.MaxLocations,
	}

	routerOpts := api.RouterOptions{
		DefaultTwinRatios: cfg.Engine.TwinRatios,
		RateLimit:         cfg.Server.RateLimit,
		RateBurst:         cfg.Server.RateBurst,
		CORSOrigins:       cfg.Server.CORSOrigins,
		ReferenceSource:   cfg.Reference.Source,
		RunStoreBackend:   cfg.RunStore.Backend,
		Ping:              pingDeps(conn, store),
	}
	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector()
		opt.Metrics = collector
		routerOpts.Metrics = collector.Handler()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.NewRouter(opt, routerOpts),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Server listening addr=:%s reference=%s run_store=%s", cfg.Server.Port, cfg.Reference.Source, cfg.RunStore.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown failed: err=%v", err)
	}
}

func needsDatabase(cfg *config.Config) bool {
	return cfg.Reference.Source == "sql" || cfg.RunStore.Backend == "sql"
}

func openDB(cfg *config.Config, dialect db.Dialect) (*sql.DB, error) {
	if dialect == db.Postgres {
		return db.Open(cfg.Database.URL, db.PoolOptions{
			MaxOpen:     cfg.Database.Pool.MaxOpen,
			MaxIdle:     cfg.Database.Pool.MaxIdle,
			MaxLifetime: cfg.Database.Pool.MaxLifetime,
		})
	}
	return db.OpenSQLite(cfg.Database.Path)
}

func initAndSeed(conn *sql.DB, dialect db.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func newReference(cfg *config.Config, conn *sql.DB) (ports.ReferenceRepository, error) {
	switch cfg.Reference.Source {
	case "yaml":
		return reference.NewFileRepository(cfg.Reference.Path)
	case "http":
		return reference.NewHTTPRepository(cfg.Reference.BaseURL, cfg.Reference.APIKey, cfg.Reference.Timeout)
	default:
		return repositories.NewSQLReferenceRepository(conn), nil
	}
}

// pingDeps checks the database and the redis run store, whichever are in use.
func pingDeps(conn *sql.DB, store ports.RunStore) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if conn != nil {
			if err := conn.PingContext(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}
		}
		if rs, ok := store.(*cache.RedisRunStore); ok {
			if err := rs.Client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("ping redis: %w", err)
			}
		}
		return nil
	}
}

// newRunStore returns the configured store and a func releasing its resources.
func newRunStore(cfg *config.Config, conn *sql.DB, dialect db.Dialect) (ports.RunStore, func(), error) {
	switch cfg.RunStore.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RunStore.RedisAddr,
			DB:   cfg.RunStore.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("run store: ping redis %s: %w", cfg.RunStore.RedisAddr, err)
		}
		return cache.NewRedisRunStore(client, cfg.RunStore.RedisPrefix), func() { client.Close() }, nil
	case "memory":
		return cache.NewMemoryRunStore(), func() {}, nil
	default:
		return cache.NewSQLRunStore(conn, dialect), func() {}, nil
	}
}
