package wttp

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/MrEthical07/wttp/header"
)

// MasterChainID is the chain used when none is configured (Sepolia).
const MasterChainID uint64 = 11155111

// Config is the full site configuration. Build one with DefaultConfig or
// LoadConfig, adjust it, and hand it to Builder.WithConfig.
type Config struct {
	Chains   ChainsConfig  `yaml:"chains"`
	Store    StoreConfig   `yaml:"store"`
	Site     SiteConfig    `yaml:"site"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Events   EventsConfig  `yaml:"events"`
	Limits   LimitsConfig  `yaml:"limits"`
	LogLevel string        `yaml:"logLevel"`
}

// ChainsConfig lists the networks a site can be published to.
type ChainsConfig struct {
	Default  uint64                 `yaml:"default"`
	Networks map[uint64]ChainConfig `yaml:"networks"`
}

// ChainConfig describes one network.
type ChainConfig struct {
	Name     string   `yaml:"name"`
	Alias    string   `yaml:"alias"`
	Symbol   string   `yaml:"symbol"`
	Explorer string   `yaml:"explorer"`
	Gateway  string   `yaml:"gateway"`
	RPCs     []string `yaml:"rpcs"`
}

// Store backends.
const (
	BackendRedis     = "redis"
	BackendDatastore = "datastore"
)

// StoreConfig selects where resource records live.
type StoreConfig struct {
	Backend   string `yaml:"backend"`
	Prefix    string `yaml:"prefix"`
	RedisAddr string `yaml:"redisAddr"`
}

// SiteConfig holds site-wide defaults.
type SiteConfig struct {
	// DefaultHeader is the header preset applied to paths without a header.
	DefaultHeader string `yaml:"defaultHeader"`
	// Roles are extra role labels registered next to the four sentinels.
	Roles []string `yaml:"roles"`
}

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled                 bool `yaml:"enabled"`
	EnableLatencyHistograms bool `yaml:"enableLatencyHistograms"`
}

// EventsConfig controls the asynchronous change feed.
type EventsConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"bufferSize"`
	// DropIfFull drops events instead of blocking writers when the buffer
	// is full.
	DropIfFull bool `yaml:"dropIfFull"`
}

// LimitsConfig throttles writes per client in fixed windows. It needs the
// redis backend.
type LimitsConfig struct {
	Enabled   bool          `yaml:"enabled"`
	MaxWrites int           `yaml:"maxWrites"`
	Window    time.Duration `yaml:"window"`
}

const sepoliaGateway = "0x6A7E6a45573D9E51D53413B25399311B0df42687"

// DefaultConfig returns the built-in configuration: Sepolia, Ethereum mainnet
// and Polygon networks, an in-memory datastore and the read-only public
// default header.
func DefaultConfig() Config {
	return Config{
		Chains: ChainsConfig{
			Default: MasterChainID,
			Networks: map[uint64]ChainConfig{
				11155111: {
					Name:     "Sepolia Testnet",
					Alias:    "sepolia",
					Symbol:   "ETH",
					Explorer: "https://sepolia.etherscan.io",
					Gateway:  sepoliaGateway,
					RPCs: []string{
						"https://ethereum-sepolia-rpc.publicnode.com",
						"https://1rpc.io/sepolia",
						"https://sepolia.drpc.org",
						"https://sepolia.meowrpc.com",
					},
				},
				1: {
					Name:     "Ethereum Mainnet",
					Alias:    "mainnet",
					Symbol:   "ETH",
					Explorer: "https://etherscan.io",
					// Points at the Sepolia gateway until a mainnet gateway is deployed.
					Gateway: sepoliaGateway,
					RPCs: []string{
						"https://ethereum-rpc.publicnode.com",
						"https://eth.llamarpc.com",
						"https://1rpc.io/eth",
						"https://eth.drpc.org",
						"https://eth.meowrpc.com",
					},
				},
				137: {
					Name:     "Polygon POS",
					Alias:    "polygon",
					Symbol:   "MATIC",
					Explorer: "https://polygonscan.com",
					RPCs: []string{
						"https://1rpc.io/matic",
						"https://polygon-rpc.com",
						"https://polygon.drpc.org",
						"https://polygon.meowrpc.com",
						"https://endpoints.omniatech.io/v1/matic/mainnet/public",
						"https://polygon-pokt.nodies.app",
						"https://rpc.ankr.com/polygon",
					},
				},
			},
		},
		Store: StoreConfig{
			Backend: BackendDatastore,
			Prefix:  "wttp",
		},
		Site: SiteConfig{
			DefaultHeader: header.DefaultHeaderName,
		},
		Events: EventsConfig{
			BufferSize: 1024,
			DropIfFull: true,
		},
		Limits: LimitsConfig{
			MaxWrites: 120,
			Window:    time.Minute,
		},
		LogLevel: "info",
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Chains.Networks = make(map[uint64]ChainConfig, len(cfg.Chains.Networks))
	for id, c := range cfg.Chains.Networks {
		c.RPCs = slices.Clone(c.RPCs)
		out.Chains.Networks[id] = c
	}
	out.Site.Roles = slices.Clone(cfg.Site.Roles)
	return out
}

// Validate checks the configuration for consistency. Every problem wraps
// ErrInvalidConfig.
func (c *Config) Validate() error {
	if len(c.Chains.Networks) == 0 {
		return fmt.Errorf("%w: no chains configured", ErrInvalidConfig)
	}
	if _, ok := c.Chains.Networks[c.Chains.Default]; !ok {
		return fmt.Errorf("%w: default chain %d is not configured", ErrInvalidConfig, c.Chains.Default)
	}
	aliases := make(map[string]uint64, len(c.Chains.Networks))
	for _, id := range slices.Sorted(maps.Keys(c.Chains.Networks)) {
		chain := c.Chains.Networks[id]
		if len(chain.RPCs) == 0 {
			return fmt.Errorf("%w: chain %d has no RPC endpoints", ErrInvalidConfig, id)
		}
		if chain.Alias == "" {
			continue
		}
		key := strings.ToLower(chain.Alias)
		if prev, dup := aliases[key]; dup {
			return fmt.Errorf("%w: alias %q used by chains %d and %d", ErrInvalidConfig, chain.Alias, prev, id)
		}
		aliases[key] = id
	}

	switch c.Store.Backend {
	case BackendRedis, BackendDatastore:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Prefix) == "" {
		return fmt.Errorf("%w: store prefix cannot be empty", ErrInvalidConfig)
	}

	if _, err := header.HeaderPreset(c.Site.DefaultHeader); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	seen := make(map[string]bool, len(c.Site.Roles))
	for _, label := range c.Site.Roles {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: empty role label", ErrInvalidConfig)
		}
		if seen[label] {
			return fmt.Errorf("%w: duplicate role label %q", ErrInvalidConfig, label)
		}
		seen[label] = true
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}

	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return fmt.Errorf("%w: events buffer size must be > 0", ErrInvalidConfig)
	}

	if c.Limits.Enabled {
		if c.Store.Backend != BackendRedis {
			return fmt.Errorf("%w: write limits require the redis backend", ErrInvalidConfig)
		}
		if c.Limits.MaxWrites <= 0 || c.Limits.Window <= 0 {
			return fmt.Errorf("%w: write limits need maxWrites and window > 0", ErrInvalidConfig)
		}
	}

	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return fmt.Errorf("%w: latency histograms require metrics", ErrInvalidConfig)
	}
	return nil
}

// Chain returns the configuration of chainID.
func (c *Config) Chain(chainID uint64) (ChainConfig, error) {
	chain, ok := c.Chains.Networks[chainID]
	if !ok {
		return ChainConfig{}, fmt.Errorf("%w: chain %d", ErrChainNotFound, chainID)
	}
	return chain, nil
}

// RPCURL returns the first RPC endpoint of chainID.
func (c *Config) RPCURL(chainID uint64) (string, error) {
	chain, err := c.Chain(chainID)
	if err != nil {
		return "", err
	}
	if len(chain.RPCs) == 0 {
		return "", fmt.Errorf("%w: chain %d has no RPC endpoints", ErrChainNotFound, chainID)
	}
	return chain.RPCs[0], nil
}

// ChainByAlias looks a chain up by alias, case-insensitively.
func (c *Config) ChainByAlias(alias string) (uint64, ChainConfig, error) {
	for _, id := range slices.Sorted(maps.Keys(c.Chains.Networks)) {
		chain := c.Chains.Networks[id]
		if strings.EqualFold(chain.Alias, alias) {
			return id, chain, nil
		}
	}
	return 0, ChainConfig{}, fmt.Errorf("%w: alias %q", ErrChainNotFound, alias)
}
