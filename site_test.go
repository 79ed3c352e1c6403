package wttp

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/permission"
	"github.com/MrEthical07/wttp/property"
)

func newDatastoreSite(t *testing.T) *Site {
	t.Helper()
	site, err := New().
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		WithRoles("EDITOR").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return site
}

func newRedisSite(t *testing.T) (*Site, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	cfg := DefaultConfig()
	cfg.Store.Backend = BackendRedis
	cfg.Metrics.Enabled = true
	site, err := New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return site, mr
}

// sites runs fn against a datastore-backed and a redis-backed Site.
func sites(t *testing.T, fn func(t *testing.T, s *Site)) {
	t.Run("datastore", func(t *testing.T) {
		fn(t, newDatastoreSite(t))
	})
	t.Run("redis", func(t *testing.T) {
		s, _ := newRedisSite(t)
		fn(t, s)
	})
}

func TestBuilderCannotBeReused(t *testing.T) {
	b := New()
	if _, err := b.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrBuilderUsed) {
		t.Fatalf("expected ErrBuilderUsed, got %v", err)
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Backend = BackendRedis
	if _, err := New().WithConfig(cfg).Build(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("redis backend without client: expected ErrInvalidConfig, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Site.DefaultHeader = "NOPE"
	if _, err := New().WithConfig(cfg).Build(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("bad default header: expected ErrInvalidConfig, got %v", err)
	}
}

func TestBuilderRegistersRoles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Site.Roles = []string{"EDITOR", "ADMIN"}
	site, err := New().WithConfig(cfg).WithRoles("EDITOR", "AUDITOR").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	reg := site.Roles()
	if !reg.Frozen() {
		t.Fatal("registry must be frozen after Build")
	}
	// four sentinels plus EDITOR and AUDITOR
	if reg.Count() != 6 {
		t.Fatalf("expected 6 roles, got %v", reg.Names())
	}
	editor, ok := reg.Role("EDITOR")
	if !ok || editor != permission.RoleFromLabel("EDITOR") {
		t.Fatalf("EDITOR not registered as keccak label: %s", editor)
	}
}

func TestHeadFallsBackToDefaults(t *testing.T) {
	sites(t, func(t *testing.T, s *Site) {
		res, err := s.Head(context.Background(), "missing.html")
		if err != nil {
			t.Fatalf("Head: %v", err)
		}
		if res.Stored {
			t.Fatal("missing path reported as stored")
		}
		if res.Path != "/missing.html" {
			t.Fatalf("path = %q", res.Path)
		}
		if res.Header != header.DefaultHeader {
			t.Fatalf("header = %s", res.Header)
		}
		if res.Metadata != property.DefaultMetadata() {
			t.Fatalf("metadata = %+v", res.Metadata)
		}
		if _, err := s.Lookup(context.Background(), "missing.html"); !errors.Is(err, ErrResourceNotFound) {
			t.Fatalf("Lookup: expected ErrResourceNotFound, got %v", err)
		}
	})
}

func TestDefineAndDescribeCompose(t *testing.T) {
	sites(t, func(t *testing.T, s *Site) {
		ctx := context.Background()
		meta := property.NewMetadata("text/html", "utf-8", "gzip", "en-US")

		if _, err := s.Describe(ctx, "/index.html", meta); err != nil {
			t.Fatalf("Describe: %v", err)
		}
		res, err := s.Head(ctx, "/index.html")
		if err != nil {
			t.Fatalf("Head: %v", err)
		}
		if !res.Stored || res.Metadata != meta {
			t.Fatalf("unexpected resource %+v", res)
		}
		if res.Header != header.DefaultHeader {
			t.Fatal("metadata-only record must use the default header")
		}

		first := res.Revision
		res, err = s.DefinePreset(ctx, "index.html", "api")
		if err != nil {
			t.Fatalf("DefinePreset: %v", err)
		}
		if res.Header != header.APIHeader {
			t.Fatalf("header = %s", res.Header)
		}
		if res.Metadata != meta {
			t.Fatal("Define must keep metadata")
		}
		if res.Revision == first {
			t.Fatal("revision must change on every write")
		}

		if _, err := s.DefinePreset(ctx, "index.html", "NOPE"); !errors.Is(err, header.ErrUnknownPreset) {
			t.Fatalf("expected ErrUnknownPreset, got %v", err)
		}
	})
}

func TestAuthorize(t *testing.T) {
	sites(t, func(t *testing.T, s *Site) {
		ctx := context.Background()
		editor := permission.RoleFromLabel("EDITOR")

		custom := header.CreateCustomHeader(
			header.WithMethods(permission.MethodHead, permission.MethodGet, permission.MethodPut, permission.MethodDelete),
			header.WithOrigins([]permission.Role{
				permission.PublicRole,    // HEAD
				permission.PublicRole,    // GET
				permission.PublicRole,    // POST
				editor,                   // PUT
				permission.PublicRole,    // PATCH
				permission.BlacklistRole, // DELETE
				permission.PublicRole,    // OPTIONS
				permission.PublicRole,    // LOCATE
				permission.PublicRole,    // DEFINE
			}),
		)
		if _, err := s.Define(ctx, "/doc", custom); err != nil {
			t.Fatalf("Define: %v", err)
		}

		cases := []struct {
			name   string
			method permission.Method
			roles  []permission.Role
			want   error
		}{
			{"public get anonymous", permission.MethodGet, nil, nil},
			{"method outside mask", permission.MethodPost, nil, ErrMethodNotAllowed},
			{"put without role", permission.MethodPut, nil, ErrForbidden},
			{"put with editor", permission.MethodPut, []permission.Role{editor}, nil},
			{"put with admin", permission.MethodPut, []permission.Role{permission.DefaultAdminRole}, nil},
			{"blacklisted caller", permission.MethodGet, []permission.Role{permission.BlacklistRole}, ErrForbidden},
			{"blacklisted method closed to admin", permission.MethodDelete, []permission.Role{permission.DefaultAdminRole}, ErrForbidden},
		}
		for _, tc := range cases {
			_, err := s.Authorize(ctx, "/doc", tc.method, tc.roles...)
			if tc.want == nil && err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
			}
		}

		allowed, err := s.Allowed(ctx, "/doc", permission.MethodPatch)
		if err != nil || allowed {
			t.Fatalf("Allowed(PATCH) = %v, %v", allowed, err)
		}

		snap := s.MetricsSnapshot()
		if snap.Counters[MetricMethodAllowed] != 3 || snap.Counters[MetricMethodDenied] != 1 || snap.Counters[MetricRoleDenied] != 3 {
			t.Fatalf("unexpected counters %v", snap.Counters)
		}
	})
}

func TestDefaultHeaderRestrictsWrites(t *testing.T) {
	site := newDatastoreSite(t)
	ctx := context.Background()

	if _, err := site.Authorize(ctx, "/anything", permission.MethodGet); err != nil {
		t.Fatalf("GET on default header: %v", err)
	}
	if _, err := site.Authorize(ctx, "/anything", permission.MethodPut); !errors.Is(err, ErrForbidden) {
		t.Fatalf("PUT on default header: expected ErrForbidden, got %v", err)
	}
	if _, err := site.Authorize(ctx, "/anything", permission.MethodPut, permission.DefaultAdminRole); err != nil {
		t.Fatalf("admin PUT on default header: %v", err)
	}
}

func TestResourcesAndDelete(t *testing.T) {
	sites(t, func(t *testing.T, s *Site) {
		ctx := context.Background()
		for _, p := range []string{"/b", "/a", "/"} {
			if _, err := s.Define(ctx, p, header.PublicHeader); err != nil {
				t.Fatalf("Define(%s): %v", p, err)
			}
		}

		paths, err := s.Resources(ctx)
		if err != nil {
			t.Fatalf("Resources: %v", err)
		}
		if len(paths) != 3 || paths[0] != "/" || paths[1] != "/a" || paths[2] != "/b" {
			t.Fatalf("paths = %v", paths)
		}

		if err := s.Delete(ctx, "/a"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := s.Delete(ctx, "/a"); err != nil {
			t.Fatalf("second Delete: %v", err)
		}
		if _, err := s.Lookup(ctx, "/a"); !errors.Is(err, ErrResourceNotFound) {
			t.Fatalf("expected ErrResourceNotFound, got %v", err)
		}
		if err := s.Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}

func TestStoreFailureMapsToUnavailable(t *testing.T) {
	site, mr := newRedisSite(t)
	mr.Close()

	ctx := context.Background()
	if _, err := site.Head(ctx, "/x"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Head: expected ErrStoreUnavailable, got %v", err)
	}
	if err := site.Ping(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Ping: expected ErrStoreUnavailable, got %v", err)
	}
	if got := site.MetricsSnapshot().Counters[MetricStoreError]; got < 2 {
		t.Fatalf("expected store errors counted, got %d", got)
	}
}

func TestInvalidPathIsNotAStoreFailure(t *testing.T) {
	site := newDatastoreSite(t)
	if _, err := site.Define(context.Background(), "  ", header.PublicHeader); err == nil || errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected invalid path error, got %v", err)
	}
}

func TestNilSiteNotReady(t *testing.T) {
	var s *Site
	if _, err := s.Head(context.Background(), "/"); !errors.Is(err, ErrSiteNotReady) {
		t.Fatalf("expected ErrSiteNotReady, got %v", err)
	}
	if s.DefaultHeader() != header.DefaultHeader {
		t.Fatal("nil site must report the package default header")
	}
	if len(s.MetricsSnapshot().Counters) != 0 {
		t.Fatal("nil site must have empty metrics")
	}
}
