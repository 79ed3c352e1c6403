package wttp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/internal/rate"
	"github.com/MrEthical07/wttp/permission"
	"github.com/MrEthical07/wttp/property"
	"github.com/MrEthical07/wttp/store"
)

var siteLog = logging.Logger("wttp/site")

// Site serves resource headers and metadata from a store, falling back to
// the configured default header and default metadata for unknown paths.
// A Site is safe for concurrent use.
type Site struct {
	config        Config
	store         store.Store
	registry      *permission.Registry
	defaultHeader header.Info
	metrics       *Metrics
	events        *eventDispatcher
	limiter       *rate.Limiter
}

// Resource is the effective state of one path.
type Resource struct {
	Path     string
	Header   header.Info
	Metadata property.Metadata
	// Stored is false when nothing has been written for Path.
	Stored    bool
	Revision  uuid.UUID
	UpdatedAt time.Time
}

func (s *Site) ready() error {
	if s == nil || s.store == nil {
		return ErrSiteNotReady
	}
	return nil
}

// Define stores h as the header of path.
func (s *Site) Define(ctx context.Context, path string, h header.Info) (Resource, error) {
	if err := s.ready(); err != nil {
		return Resource{}, err
	}

	start := time.Now()
	rec, err := s.store.Define(ctx, path, h)
	s.observe(start)
	if err != nil {
		err = s.storeErr("define", path, err)
		s.emit(ctx, EventHeaderDefined, path, nil, h.String(), err)
		return Resource{}, err
	}
	s.emit(ctx, EventHeaderDefined, path, &rec, h.String(), nil)

	s.metrics.Inc(MetricHeaderDefined)
	siteLog.Debugf("define %s: %s", rec.Path, h)
	return s.resource(rec), nil
}

// DefinePreset stores the named header preset as the header of path.
func (s *Site) DefinePreset(ctx context.Context, path, preset string) (Resource, error) {
	h, err := header.HeaderPreset(preset)
	if err != nil {
		return Resource{}, err
	}
	return s.Define(ctx, path, h)
}

// Describe stores m as the metadata of path.
func (s *Site) Describe(ctx context.Context, path string, m property.Metadata) (Resource, error) {
	if err := s.ready(); err != nil {
		return Resource{}, err
	}

	start := time.Now()
	rec, err := s.store.Describe(ctx, path, m)
	s.observe(start)
	if err != nil {
		err = s.storeErr("describe", path, err)
		s.emit(ctx, EventMetadataDescribed, path, nil, describeDetail(m), err)
		return Resource{}, err
	}
	s.emit(ctx, EventMetadataDescribed, path, &rec, describeDetail(m), nil)

	s.metrics.Inc(MetricMetadataDescribed)
	siteLog.Debugf("describe %s: %+v", rec.Path, m.Strings())
	return s.resource(rec), nil
}

// Head returns the effective header and metadata of path. Unknown paths
// resolve to the default header and default metadata with Stored false.
func (s *Site) Head(ctx context.Context, path string) (Resource, error) {
	if err := s.ready(); err != nil {
		return Resource{}, err
	}

	start := time.Now()
	rec, err := s.store.Get(ctx, path)
	s.observe(start)

	switch {
	case err == nil:
		s.metrics.Inc(MetricResourceHit)
		return s.resource(rec), nil
	case errors.Is(err, store.ErrNotFound):
		s.metrics.Inc(MetricResourceMiss)
		p, _ := store.NormalizePath(path)
		return Resource{
			Path:     p,
			Header:   s.defaultHeader,
			Metadata: property.DefaultMetadata(),
		}, nil
	default:
		return Resource{}, s.storeErr("head", path, err)
	}
}

// Lookup is Head without the fallback: unknown paths return
// ErrResourceNotFound.
func (s *Site) Lookup(ctx context.Context, path string) (Resource, error) {
	if err := s.ready(); err != nil {
		return Resource{}, err
	}

	start := time.Now()
	rec, err := s.store.Get(ctx, path)
	s.observe(start)
	if err != nil {
		return Resource{}, s.storeErr("lookup", path, err)
	}
	s.metrics.Inc(MetricResourceHit)
	return s.resource(rec), nil
}

// Allowed reports whether method is enabled for path.
func (s *Site) Allowed(ctx context.Context, path string, method permission.Method) (bool, error) {
	res, err := s.Head(ctx, path)
	if err != nil {
		return false, err
	}
	return res.Header.Allows(method), nil
}

// Authorize checks that method is enabled for path and that one of roles
// may invoke it. The rules are:
//
//   - a method missing from the mask fails with ErrMethodNotAllowed
//   - a blacklisted caller is always refused
//   - a method assigned to PUBLIC is open to everyone
//   - a method assigned to BLACKLIST is closed to everyone
//   - otherwise the caller needs the assigned role or ADMIN
//
// The resolved resource is returned on success and on ErrForbidden.
func (s *Site) Authorize(ctx context.Context, path string, method permission.Method, roles ...permission.Role) (Resource, error) {
	res, err := s.Head(ctx, path)
	if err != nil {
		return Resource{}, err
	}

	if !res.Header.Allows(method) {
		s.metrics.Inc(MetricMethodDenied)
		return res, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, method, res.Path)
	}

	if permitted(res.Header.RoleFor(method), roles) {
		s.metrics.Inc(MetricMethodAllowed)
		return res, nil
	}

	s.metrics.Inc(MetricRoleDenied)
	return res, fmt.Errorf("%w: %s %s", ErrForbidden, method, res.Path)
}

func permitted(required permission.Role, held []permission.Role) bool {
	admin := false
	has := false
	for _, r := range held {
		switch r {
		case permission.BlacklistRole:
			return false
		case permission.DefaultAdminRole:
			admin = true
		}
		if r == required {
			has = true
		}
	}

	switch required {
	case permission.PublicRole:
		return true
	case permission.BlacklistRole:
		return false
	}
	return has || admin
}

// Delete removes path. Deleting a missing path is not an error.
func (s *Site) Delete(ctx context.Context, path string) error {
	if err := s.ready(); err != nil {
		return err
	}

	start := time.Now()
	err := s.store.Delete(ctx, path)
	s.observe(start)
	if err != nil {
		err = s.storeErr("delete", path, err)
		s.emit(ctx, EventResourceDeleted, path, nil, "", err)
		return err
	}
	s.emit(ctx, EventResourceDeleted, path, nil, "", nil)

	s.metrics.Inc(MetricResourceDeleted)
	siteLog.Debugf("delete %s", path)
	return nil
}

// Resources lists every stored path, sorted.
func (s *Site) Resources(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	start := time.Now()
	paths, err := s.store.List(ctx)
	s.observe(start)
	if err != nil {
		return nil, s.storeErr("list", "", err)
	}
	return paths, nil
}

// Ping checks the store backend.
func (s *Site) Ping(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.Ping(ctx); err != nil {
		return s.storeErr("ping", "", err)
	}
	return nil
}

// Roles returns the frozen role registry.
func (s *Site) Roles() *permission.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// DefaultHeader returns the header applied to paths without one.
func (s *Site) DefaultHeader() header.Info {
	if s == nil {
		return header.DefaultHeader
	}
	return s.defaultHeader
}

// Config returns a copy of the site configuration.
func (s *Site) Config() Config {
	if s == nil {
		return Config{}
	}
	return cloneConfig(s.config)
}

// MetricsSnapshot returns the current counters.
func (s *Site) MetricsSnapshot() MetricsSnapshot {
	if s == nil {
		return (*Metrics)(nil).Snapshot()
	}
	return s.metrics.Snapshot()
}

// Throttle charges one write to client. It returns ErrRateLimited once the
// client's window budget is spent and nil when write limits are off.
func (s *Site) Throttle(ctx context.Context, client string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.limiter == nil {
		return nil
	}

	err := s.limiter.Allow(ctx, client)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rate.ErrRateLimited):
		s.metrics.Inc(MetricRateLimited)
		siteLog.Debugf("throttled writes from %s", client)
		return fmt.Errorf("%w: %s", ErrRateLimited, client)
	default:
		s.metrics.Inc(MetricStoreError)
		siteLog.Errorf("write limiter: %v", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

// DroppedEvents reports change events that never reached the sink: the
// buffer was full, the writer's context ended or the site was closed.
func (s *Site) DroppedEvents() uint64 {
	if s == nil {
		return 0
	}
	return s.events.Dropped()
}

// Close flushes queued change events to the sink. The store is owned by
// the caller and stays open.
func (s *Site) Close() {
	if s == nil {
		return
	}
	s.events.Close()
}

func describeDetail(m property.Metadata) string {
	ms := m.Strings()
	return fmt.Sprintf("%s charset=%s encoding=%s language=%s", ms.MimeType, ms.Charset, ms.Encoding, ms.Language)
}

func (s *Site) resource(rec store.Record) Resource {
	m := rec.Metadata
	if !rec.HasMetadata {
		m = property.DefaultMetadata()
	}
	return Resource{
		Path:      rec.Path,
		Header:    rec.EffectiveHeader(s.defaultHeader),
		Metadata:  m,
		Stored:    true,
		Revision:  rec.Revision,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (s *Site) observe(start time.Time) {
	if s.metrics.LatencyEnabled() {
		s.metrics.Observe(MetricStoreLatency, time.Since(start))
	}
}

func (s *Site) storeErr(op, path string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrResourceNotFound, path)
	case errors.Is(err, store.ErrInvalidPath):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	s.metrics.Inc(MetricStoreError)
	if errors.Is(err, store.ErrCorruptRecord) {
		siteLog.Errorf("%s %q: %v", op, path, err)
		return err
	}
	siteLog.Warnf("%s %q failed: %v", op, path, err)
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
