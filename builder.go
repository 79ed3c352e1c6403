package wttp

import (
	"errors"
	"fmt"
	"slices"
	"time"

	ds "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	logging "github.com/ipfs/go-log"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/internal/rate"
	"github.com/MrEthical07/wttp/permission"
	"github.com/MrEthical07/wttp/store"
)

// Logging subsystems owned by this module.
var logSubsystems = []string{"wttp/site", "wttp/store", "wttp/middleware"}

// Builder assembles a Site. A Builder can be used once.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	datastore ds.Datastore
	store     store.Store
	roles     []string
	sink      EventSink

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies the client used when the store backend is redis.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithDatastore supplies the datastore used when the store backend is
// datastore. Without one Build uses a process-local map.
func (b *Builder) WithDatastore(d ds.Datastore) *Builder {
	b.datastore = d
	return b
}

// WithStore overrides backend selection entirely.
func (b *Builder) WithStore(s store.Store) *Builder {
	b.store = s
	return b
}

// WithRoles registers extra role labels in addition to Config.Site.Roles.
func (b *Builder) WithRoles(labels ...string) *Builder {
	b.roles = append(b.roles, labels...)
	return b
}

// WithEventSink enables the change feed and delivers it to sink.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	b.config.Events.Enabled = true
	return b
}

// WithWriteLimit throttles each client to maxWrites writes per window.
// Counters live in redis, so the store backend must be redis.
func (b *Builder) WithWriteLimit(maxWrites int, window time.Duration) *Builder {
	b.config.Limits = LimitsConfig{Enabled: true, MaxWrites: maxWrites, Window: window}
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready Site.
func (b *Builder) Build() (*Site, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate has checked the level; an error here only means the
	// subsystem's package is not linked into the binary.
	for _, name := range logSubsystems {
		_ = logging.SetLogLevel(name, cfg.LogLevel)
	}

	// -------- ROLE REGISTRY --------
	registry := permission.NewRegistry()
	for _, label := range slices.Concat(cfg.Site.Roles, b.roles) {
		if _, err := registry.Register(label); err != nil {
			if errors.Is(err, permission.ErrRoleAlreadyDefined) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	registry.Freeze()

	defaultHeader, err := header.HeaderPreset(cfg.Site.DefaultHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// -------- REDIS CLIENT --------
	var client redis.UniversalClient
	if (b.store == nil && cfg.Store.Backend == BackendRedis) || cfg.Limits.Enabled {
		if client, err = b.resolveRedis(cfg.Store); err != nil {
			return nil, err
		}
	}

	// -------- RESOURCE STORE --------
	st := b.resolveStore(cfg.Store, client)

	// -------- WRITE LIMITER --------
	var limiter *rate.Limiter
	if cfg.Limits.Enabled {
		limiter = rate.New(client, rate.Config{
			Prefix:    cfg.Store.Prefix,
			MaxWrites: cfg.Limits.MaxWrites,
			Window:    cfg.Limits.Window,
		})
	}

	site := &Site{
		config:        cloneConfig(cfg),
		store:         st,
		registry:      registry,
		defaultHeader: defaultHeader,
		metrics:       NewMetrics(cfg.Metrics),
		events:        newEventDispatcher(cfg.Events, b.sink),
		limiter:       limiter,
	}

	b.built = true
	siteLog.Debugf("site built: backend=%s prefix=%s roles=%d", cfg.Store.Backend, cfg.Store.Prefix, registry.Count())

	return site, nil
}

func (b *Builder) resolveRedis(cfg StoreConfig) (redis.UniversalClient, error) {
	if b.redis != nil {
		return b.redis, nil
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("%w: redis backend requires a client or redisAddr", ErrInvalidConfig)
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), nil
}

func (b *Builder) resolveStore(cfg StoreConfig, client redis.UniversalClient) store.Store {
	if b.store != nil {
		return b.store
	}

	switch cfg.Backend {
	case BackendRedis:
		return store.NewRedisStore(client, cfg.Prefix)
	default:
		d := b.datastore
		if d == nil {
			d = dssync.MutexWrap(ds.NewMapDatastore())
		}
		return store.NewDatastoreStore(d, cfg.Prefix)
	}
}
