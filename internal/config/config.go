package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config combines every section read from config.yaml and LNG_* variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Reference ReferenceConfig `mapstructure:"reference"`
	RunStore  RunStoreConfig  `mapstructure:"run_store"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port              string        `mapstructure:"port" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	// Optimisation requests per second across all clients; burst on top.
	RateLimit   float64  `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst   int      `mapstructure:"rate_burst" validate:"gte=0"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	// Connection type: "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	// Postgres connection URL
	URL string `mapstructure:"url"`
	// SQLite file path or ":memory:"
	Path string `mapstructure:"path"`
	// Reference seed loaded at server start when set.
	SeedPath string     `mapstructure:"seed_path"`
	Pool     PoolConfig `mapstructure:"pool"`
}

type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

type ReferenceConfig struct {
	// Where vessels, routes and ORU capex come from.
	Source  string        `mapstructure:"source" validate:"required,oneof=sql yaml http"`
	Path    string        `mapstructure:"path"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RunStoreConfig struct {
	Backend     string `mapstructure:"backend" validate:"required,oneof=sql redis memory"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisDB     int    `mapstructure:"redis_db" validate:"gte=0"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

type EngineConfig struct {
	MaxLocations int      `mapstructure:"max_locations" validate:"min=1,max=10"`
	TwinRatios   []string `mapstructure:"twin_ratios" validate:"min=1"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration with priority: environment (LNG_ prefix),
// then the config file, then defaults.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("LNG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config: read config file: %w", err)
		}
	}

	// DATABASE_URL is honoured without prefix, as most hosting platforms set it.
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("load config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

// AutomaticEnv only resolves keys viper already knows about; register every
// leaf so LNG_* variables work without a config file.
func bindEnv(v *viper.Viper) {
	keys := []string{
		"server.port", "server.read_header_timeout", "server.read_timeout",
		"server.write_timeout", "server.idle_timeout", "server.rate_limit",
		"server.rate_burst", "server.cors_origins",
		"database.type", "database.url", "database.path", "database.seed_path",
		"database.pool.max_open", "database.pool.max_idle", "database.pool.max_lifetime",
		"reference.source", "reference.path", "reference.base_url",
		"reference.api_key", "reference.timeout",
		"run_store.backend", "run_store.redis_addr", "run_store.redis_db", "run_store.redis_prefix",
		"engine.max_locations", "engine.twin_ratios",
		"metrics.enabled",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
