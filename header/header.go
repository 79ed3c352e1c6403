package header

import (
	"fmt"
	"strings"

	"github.com/MrEthical07/wttp/permission"
)

// Cache is the cache section of a header.
type Cache struct {
	Immutable bool        `cbor:"1,keyasint"`
	Preset    CachePreset `cbor:"2,keyasint"`
	Custom    string      `cbor:"3,keyasint,omitempty"`
}

// CORS is the access section of a header: the enabled methods, the role
// allowed to invoke each one, and the CSP preset.
type CORS struct {
	Methods permission.Mask `cbor:"1,keyasint"`
	Origins Origins         `cbor:"2,keyasint"`
	Preset  CORSPreset      `cbor:"3,keyasint"`
	Custom  string          `cbor:"4,keyasint,omitempty"`
}

// Redirect is the redirect section of a header. Code 0 means no redirect.
type Redirect struct {
	Code     uint16 `cbor:"1,keyasint"`
	Location string `cbor:"2,keyasint,omitempty"`
}

// Info is a complete resource header. It is a value type: build a new one
// instead of editing a shared preset.
type Info struct {
	Cache    Cache    `cbor:"1,keyasint"`
	CORS     CORS     `cbor:"2,keyasint"`
	Redirect Redirect `cbor:"3,keyasint"`
}

// Allows reports whether method m is enabled in the CORS method mask.
func (i Info) Allows(m permission.Method) bool {
	return i.CORS.Methods.Has(m)
}

// Methods lists the enabled methods in ordinal order.
func (i Info) Methods() []permission.Method {
	return permission.BitmaskToMethods(i.CORS.Methods)
}

// RoleFor returns the role required for method m.
func (i Info) RoleFor(m permission.Method) permission.Role {
	return i.CORS.Origins.Role(m)
}

// Redirects reports whether a redirect code is set.
func (i Info) Redirects() bool {
	return i.Redirect.Code != 0
}

func preset(cache CachePreset, immutable bool, methods permission.Mask, origins Origins, cors CORSPreset) Info {
	return Info{
		Cache: Cache{Immutable: immutable, Preset: cache},
		CORS:  CORS{Methods: methods, Origins: origins, Preset: cors},
	}
}

var (
	PublicHeader          = preset(CacheDefault, false, permission.AllMethodsMask, OriginsPublic, CORSPublic)
	AdminOnlyHeader       = preset(CacheNone, false, permission.AllMethodsMask, OriginsAdminOnly, CORSPrivate)
	ReadOnlyPublicHeader  = preset(CacheShort, false, permission.AllMethodsMask, OriginsReadPublicWriteAdmin, CORSMixedAccess)
	APIHeader             = preset(CacheNoCache, false, permission.AllMethodsMask, OriginsAPIPattern, CORSAPI)
	IntraSiteHeader       = preset(CacheNoCache, false, permission.AllMethodsMask, OriginsIntraSite, CORSPrivate)
	ImmutablePublicHeader = preset(CachePermanent, true, permission.AllMethodsMask, OriginsImmutableContent, CORSPublic)
	StrictReadOnlyHeader  = preset(CacheMedium, false, permission.ReadOnlyMethodsMask, OriginsReadOnlyPublic, CORSPublic)

	// DefaultHeader is used when a resource has no header of its own.
	DefaultHeader = ReadOnlyPublicHeader
)

// DefaultHeaderName is the preset name of DefaultHeader.
const DefaultHeaderName = "READ_ONLY_PUBLIC"

var headerPresets = map[string]Info{
	"PUBLIC":           PublicHeader,
	"ADMIN_ONLY":       AdminOnlyHeader,
	"READ_ONLY_PUBLIC": ReadOnlyPublicHeader,
	"API":              APIHeader,
	"INTRA_SITE":       IntraSiteHeader,
	"IMMUTABLE_PUBLIC": ImmutablePublicHeader,
	"STRICT_READ_ONLY": StrictReadOnlyHeader,
}

// HeaderPreset returns a copy of the named header preset. Names match
// case-insensitively.
func HeaderPreset(name string) (Info, error) {
	h, ok := headerPresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Info{}, fmt.Errorf("%w: header %q", ErrUnknownPreset, name)
	}
	return h, nil
}

// HeaderPresetNames lists the header preset names, sorted.
func HeaderPresetNames() []string {
	return sortedKeys(headerPresets)
}

type customHeader struct {
	methods     []permission.Method
	origins     []permission.Role
	cachePreset CachePreset
	corsPreset  CORSPreset
	immutable   bool
	redirect    Redirect
	customCache string
	customCORS  string
}

// Option configures CreateCustomHeader.
type Option func(*customHeader)

// WithMethods sets the enabled methods. Default: HEAD, GET, OPTIONS, LOCATE.
func WithMethods(methods ...permission.Method) Option {
	return func(c *customHeader) { c.methods = methods }
}

// WithOrigins sets the per-method roles. A slice whose length is not
// MethodCount is normalized with NormalizeOrigins.
func WithOrigins(roles []permission.Role) Option {
	return func(c *customHeader) {
		if roles == nil {
			roles = []permission.Role{}
		}
		c.origins = roles
	}
}

func WithCachePreset(p CachePreset) Option {
	return func(c *customHeader) { c.cachePreset = p }
}

func WithCORSPreset(p CORSPreset) Option {
	return func(c *customHeader) { c.corsPreset = p }
}

func WithImmutable(immutable bool) Option {
	return func(c *customHeader) { c.immutable = immutable }
}

func WithRedirect(code uint16, location string) Option {
	return func(c *customHeader) { c.redirect = Redirect{Code: code, Location: location} }
}

// WithCustomCache sets a raw Cache-Control value that overrides the preset.
func WithCustomCache(directive string) Option {
	return func(c *customHeader) { c.customCache = directive }
}

// WithCustomCORS sets a raw CSP value that overrides the preset.
func WithCustomCORS(policy string) Option {
	return func(c *customHeader) { c.customCORS = policy }
}

// CreateCustomHeader builds a header from options. Unset options take the
// defaults: read methods only, read-public/write-admin origins, the DEFAULT
// cache preset, the MIXED_ACCESS CORS preset, mutable, no redirect.
func CreateCustomHeader(opts ...Option) Info {
	c := customHeader{
		methods:     []permission.Method{permission.MethodHead, permission.MethodGet, permission.MethodOptions, permission.MethodLocate},
		cachePreset: CacheDefault,
		corsPreset:  CORSMixedAccess,
	}
	for _, opt := range opts {
		opt(&c)
	}

	origins := OriginsReadPublicWriteAdmin
	if c.origins != nil {
		origins = NormalizeOrigins(c.origins)
	}

	return Info{
		Cache: Cache{
			Immutable: c.immutable,
			Preset:    c.cachePreset,
			Custom:    c.customCache,
		},
		CORS: CORS{
			Methods: permission.MethodsToBitmask(c.methods...),
			Origins: origins,
			Preset:  c.corsPreset,
			Custom:  c.customCORS,
		},
		Redirect: c.redirect,
	}
}
