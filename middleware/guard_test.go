package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wttp"
	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/permission"
	"github.com/MrEthical07/wttp/property"
)

func newGuardedSite(t *testing.T) (*wttp.Site, http.Handler) {
	t.Helper()
	site, err := wttp.New().WithRoles("EDITOR").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, found := ResourceFromContext(r.Context())
		if !found {
			t.Error("resource missing from context")
		}
		w.Header().Set("X-Path", res.Path)
		w.WriteHeader(http.StatusOK)
	})

	h := Guard(site, WithRoleResolver(RolesFromHeader(site.Roles(), "X-Roles")))(ok)
	return site, h
}

func serve(h http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGuardAllowsPublicRead(t *testing.T) {
	site, h := newGuardedSite(t)
	meta := property.NewMetadata("text/html", "utf-8", "gzip", "en-US")
	if _, err := site.Describe(context.Background(), "/index.html", meta); err != nil {
		t.Fatalf("Describe: %v", err)
	}

	rec := serve(h, http.MethodGet, "/index.html", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Path"); got != "/index.html" {
		t.Fatalf("X-Path = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != header.DefaultHeader.CacheControlValue() {
		t.Fatalf("Cache-Control = %q", got)
	}
}

func TestGuardUnknownVerb(t *testing.T) {
	_, h := newGuardedSite(t)
	if rec := serve(h, "BREW", "/", nil); rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGuardMethodOutsideMask(t *testing.T) {
	site, h := newGuardedSite(t)
	if _, err := site.DefinePreset(context.Background(), "/static", "STRICT_READ_ONLY"); err != nil {
		t.Fatalf("DefinePreset: %v", err)
	}

	rec := serve(h, http.MethodPost, "/static", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != "HEAD, GET, OPTIONS, LOCATE" {
		t.Fatalf("Allow = %q", got)
	}
}

func TestGuardRoles(t *testing.T) {
	site, h := newGuardedSite(t)
	editor := permission.RoleFromLabel("EDITOR")
	origins := header.CreateMixedOriginsArray(permission.PublicRole, editor)
	if _, err := site.Define(context.Background(), "/doc", header.CreateCustomHeader(
		header.WithMethods(permission.MethodGet, permission.MethodPut, permission.MethodDefine),
		header.WithOrigins(origins.Slice()),
	)); err != nil {
		t.Fatalf("Define: %v", err)
	}

	if rec := serve(h, http.MethodPut, "/doc", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous PUT status = %d", rec.Code)
	}
	if rec := serve(h, http.MethodPut, "/doc", map[string]string{"X-Roles": "EDITOR"}); rec.Code != http.StatusOK {
		t.Fatalf("editor PUT status = %d", rec.Code)
	}
	if rec := serve(h, "DEFINE", "/doc", map[string]string{"X-Roles": "nobody, " + editor.Hex()}); rec.Code != http.StatusOK {
		t.Fatalf("editor DEFINE by hex status = %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/doc", map[string]string{"X-Roles": "BLACKLIST"}); rec.Code != http.StatusForbidden {
		t.Fatalf("blacklisted GET status = %d", rec.Code)
	}
}

func TestGuardOptionsAndRedirect(t *testing.T) {
	site, h := newGuardedSite(t)
	ctx := context.Background()

	rec := serve(h, http.MethodOptions, "/", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("OPTIONS status = %d", rec.Code)
	}
	if rec.Header().Get("Allow") == "" {
		t.Fatal("OPTIONS must advertise Allow")
	}

	if _, err := site.Define(ctx, "/old", header.CreateCustomHeader(
		header.WithRedirect(http.StatusMovedPermanently, "/new"),
	)); err != nil {
		t.Fatalf("Define: %v", err)
	}
	rec = serve(h, "LOCATE", "/old", nil)
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("redirect status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/new" {
		t.Fatalf("Location = %q", got)
	}
}

func TestGuardIgnoresNonRedirectCodes(t *testing.T) {
	site, h := newGuardedSite(t)
	ctx := context.Background()

	for _, code := range []uint16{1, 200} {
		path := "/odd-" + strconv.Itoa(int(code))
		if _, err := site.Define(ctx, path, header.CreateCustomHeader(
			header.WithOrigins(header.OriginsPublic[:]),
			header.WithRedirect(code, "/x"),
		)); err != nil {
			t.Fatalf("Define: %v", err)
		}

		rec := serve(h, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("code %d: status = %d", code, rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "" {
			t.Fatalf("code %d: Location = %q", code, got)
		}
	}
}

func TestGuardNilSite(t *testing.T) {
	h := Guard(nil)(http.NotFoundHandler())
	if rec := serve(h, http.MethodGet, "/", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGuardThrottlesWrites(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	cfg := wttp.DefaultConfig()
	cfg.Store.Backend = wttp.BackendRedis
	site, err := wttp.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithWriteLimit(2, time.Minute).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := site.Define(context.Background(), "/drop", header.PublicHeader); err != nil {
		t.Fatalf("Define: %v", err)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := Guard(site, WithClientResolver(func(r *http.Request) string {
		return r.Header.Get("X-Client")
	}))(ok)

	a := map[string]string{"X-Client": "a"}
	for i := 0; i < 2; i++ {
		if rec := serve(h, http.MethodPut, "/drop", a); rec.Code != http.StatusOK {
			t.Fatalf("write %d status = %d", i, rec.Code)
		}
	}
	rec := serve(h, http.MethodPut, "/drop", a)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("Retry-After = %q", got)
	}

	// Reads are never charged.
	if rec := serve(h, http.MethodGet, "/drop", a); rec.Code != http.StatusOK {
		t.Fatalf("read status = %d", rec.Code)
	}
	if rec := serve(h, http.MethodPut, "/drop", map[string]string{"X-Client": "b"}); rec.Code != http.StatusOK {
		t.Fatalf("other client status = %d", rec.Code)
	}

	if got := site.MetricsSnapshot().Counters[wttp.MetricRateLimited]; got != 0 {
		t.Fatalf("metrics are off, counter = %d", got)
	}
}
