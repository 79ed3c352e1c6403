package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-http-utils/headers"
	logging "github.com/ipfs/go-log"

	"github.com/MrEthical07/wttp"
	"github.com/MrEthical07/wttp/permission"
)

var log = logging.Logger("wttp/middleware")

// RoleResolver returns the roles held by the caller of r.
type RoleResolver func(r *http.Request) []permission.Role

type resourceContextKey struct{}

// ResourceFromContext returns the resource resolved by Guard.
func ResourceFromContext(ctx context.Context) (wttp.Resource, bool) {
	res, ok := ctx.Value(resourceContextKey{}).(wttp.Resource)
	return res, ok
}

// ClientResolver names the caller of r for write throttling.
type ClientResolver func(r *http.Request) string

type guardOptions struct {
	roles  RoleResolver
	client ClientResolver
}

// Option configures Guard.
type Option func(*guardOptions)

// WithRoleResolver sets how caller roles are derived from the request.
func WithRoleResolver(fn RoleResolver) Option {
	return func(o *guardOptions) {
		o.roles = fn
	}
}

// WithClientResolver sets how the write limiter identifies callers. The
// default is the host part of RemoteAddr.
func WithClientResolver(fn ClientResolver) Option {
	return func(o *guardOptions) {
		o.client = fn
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RolesFromHeader resolves a comma-separated list of role names or hex
// roles from the request header name. Unknown entries are ignored. Only use
// it behind a proxy that sets the header itself.
func RolesFromHeader(registry *permission.Registry, name string) RoleResolver {
	return func(r *http.Request) []permission.Role {
		raw := r.Header.Get(name)
		if raw == "" || registry == nil {
			return nil
		}
		var out []permission.Role
		for _, part := range strings.Split(raw, ",") {
			role, err := registry.Resolve(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			out = append(out, role)
		}
		return out
	}
}

// Guard enforces the site's resource headers in front of next.
func Guard(site *wttp.Site, opts ...Option) func(http.Handler) http.Handler {
	o := guardOptions{client: remoteHost}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if site == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			method, err := permission.ParseMethod(r.Method)
			if err != nil {
				http.Error(w, "not implemented", http.StatusNotImplemented)
				return
			}

			var roles []permission.Role
			if o.roles != nil {
				roles = o.roles(r)
			}

			res, err := site.Authorize(r.Context(), r.URL.Path, method, roles...)
			switch {
			case err == nil:
			case errors.Is(err, wttp.ErrMethodNotAllowed):
				w.Header().Set(headers.Allow, res.Header.AllowValue())
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			case errors.Is(err, wttp.ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			case errors.Is(err, wttp.ErrStoreUnavailable):
				log.Warnf("%s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			default:
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}

			if !method.IsRead() {
				switch err := site.Throttle(r.Context(), o.client(r)); {
				case err == nil:
				case errors.Is(err, wttp.ErrRateLimited):
					window := site.Config().Limits.Window
					w.Header().Set(headers.RetryAfter, strconv.Itoa(int(window.Seconds())))
					http.Error(w, "too many requests", http.StatusTooManyRequests)
					return
				default:
					log.Warnf("%s %s: %v", r.Method, r.URL.Path, err)
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
			}

			res.Header.Apply(w.Header())

			if method == permission.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if status, ok := res.Header.RedirectStatus(); ok && method.IsRead() {
				http.Redirect(w, r, res.Header.Redirect.Location, status)
				return
			}

			res.Metadata.Apply(w.Header())

			ctx := context.WithValue(r.Context(), resourceContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
