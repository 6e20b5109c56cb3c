package config

import (
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/services"
	"time"
)

// SetDefaults fills every zero-valued field.
func SetDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	// Cold runs enumerate N! routes per vessel.
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 5
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = 10
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/lngopt.db"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 10
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 30 * time.Minute
	}

	if cfg.Reference.Source == "" {
		cfg.Reference.Source = "sql"
	}
	if cfg.Reference.Timeout == 0 {
		cfg.Reference.Timeout = 10 * time.Second
	}

	if cfg.RunStore.Backend == "" {
		cfg.RunStore.Backend = "sql"
	}
	if cfg.RunStore.RedisAddr == "" {
		cfg.RunStore.RedisAddr = "localhost:6379"
	}
	if cfg.RunStore.RedisPrefix == "" {
		cfg.RunStore.RedisPrefix = "lngopt:"
	}

	if cfg.Engine.MaxLocations == 0 {
		cfg.Engine.MaxLocations = services.DefaultMaxLocations
	}
	if len(cfg.Engine.TwinRatios) == 0 {
		cfg.Engine.TwinRatios = append([]string(nil), domain.DefaultTwinRatios...)
	}
}
