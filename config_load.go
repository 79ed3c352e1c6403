package wttp

import (
	"fmt"
	"os"

	"github.com/allisson/go-env"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file and default settings.
const (
	EnvDefaultChain   = "WTTP_DEFAULT_CHAIN"
	EnvStoreBackend   = "WTTP_STORE_BACKEND"
	EnvStorePrefix    = "WTTP_STORE_PREFIX"
	EnvRedisAddr      = "WTTP_REDIS_ADDR"
	EnvMetricsEnabled = "WTTP_METRICS_ENABLED"
	EnvEventsEnabled  = "WTTP_EVENTS_ENABLED"
	// EnvWriteLimit enables write limits with the given per-window budget.
	EnvWriteLimit = "WTTP_WRITE_LIMIT"
	EnvLogLevel   = "WTTP_LOG_LEVEL"
)

// LoadConfig starts from DefaultConfig, overlays the YAML file at path (when
// path is non-empty), applies environment overrides and validates the result.
// Chains in the file are merged into the built-in set by id.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if chain := env.GetInt(EnvDefaultChain, -1); chain >= 0 {
		cfg.Chains.Default = uint64(chain)
	}
	cfg.Store.Backend = env.GetString(EnvStoreBackend, cfg.Store.Backend)
	cfg.Store.Prefix = env.GetString(EnvStorePrefix, cfg.Store.Prefix)
	cfg.Store.RedisAddr = env.GetString(EnvRedisAddr, cfg.Store.RedisAddr)
	cfg.Metrics.Enabled = env.GetBool(EnvMetricsEnabled, cfg.Metrics.Enabled)
	cfg.Events.Enabled = env.GetBool(EnvEventsEnabled, cfg.Events.Enabled)
	if limit := env.GetInt(EnvWriteLimit, 0); limit > 0 {
		cfg.Limits.Enabled = true
		cfg.Limits.MaxWrites = limit
	}
	cfg.LogLevel = env.GetString(EnvLogLevel, cfg.LogLevel)
}

// MarshalConfig renders cfg as YAML, the format LoadConfig reads.
func MarshalConfig(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
