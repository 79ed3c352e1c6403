package header

import (
	"fmt"
	"strings"
)

// CachePreset selects a cache policy. Values are pinned.
type CachePreset uint8

const (
	CacheNone      CachePreset = 0
	CacheNoCache   CachePreset = 1
	CacheDefault   CachePreset = 2
	CacheShort     CachePreset = 3
	CacheMedium    CachePreset = 4
	CacheLong      CachePreset = 5
	CachePermanent CachePreset = 6
)

var cachePresetNames = []string{
	CacheNone:      "NONE",
	CacheNoCache:   "NO_CACHE",
	CacheDefault:   "DEFAULT",
	CacheShort:     "SHORT",
	CacheMedium:    "MEDIUM",
	CacheLong:      "LONG",
	CachePermanent: "PERMANENT",
}

var cacheControlDirectives = []string{
	CacheNone:      "no-store",
	CacheNoCache:   "no-cache",
	CacheDefault:   "public, max-age=3600",
	CacheShort:     "public, max-age=60",
	CacheMedium:    "public, max-age=86400",
	CacheLong:      "public, max-age=604800",
	CachePermanent: "public, max-age=31536000, immutable",
}

func (p CachePreset) String() string {
	if int(p) < len(cachePresetNames) {
		return cachePresetNames[p]
	}
	return fmt.Sprintf("CachePreset(%d)", uint8(p))
}

// ParseCachePreset resolves a preset name case-insensitively.
func ParseCachePreset(name string) (CachePreset, error) {
	for i, n := range cachePresetNames {
		if strings.EqualFold(n, name) {
			return CachePreset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: cache preset %q", ErrUnknownPreset, name)
}

// CacheControl returns the Cache-Control directive for a preset, or "" for
// values outside the enum.
func CacheControl(p CachePreset) string {
	if int(p) < len(cacheControlDirectives) {
		return cacheControlDirectives[p]
	}
	return ""
}

// CORSPreset selects a CORS/CSP policy. Values are pinned.
type CORSPreset uint8

const (
	CORSNone        CORSPreset = 0
	CORSPublic      CORSPreset = 1
	CORSRestricted  CORSPreset = 2
	CORSAPI         CORSPreset = 3
	CORSMixedAccess CORSPreset = 4
	CORSPrivate     CORSPreset = 5
)

var corsPresetNames = []string{
	CORSNone:        "NONE",
	CORSPublic:      "PUBLIC",
	CORSRestricted:  "RESTRICTED",
	CORSAPI:         "API",
	CORSMixedAccess: "MIXED_ACCESS",
	CORSPrivate:     "PRIVATE",
}

func (p CORSPreset) String() string {
	if int(p) < len(corsPresetNames) {
		return corsPresetNames[p]
	}
	return fmt.Sprintf("CORSPreset(%d)", uint8(p))
}

// ParseCORSPreset resolves a preset name case-insensitively.
func ParseCORSPreset(name string) (CORSPreset, error) {
	for i, n := range corsPresetNames {
		if strings.EqualFold(n, name) {
			return CORSPreset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: cors preset %q", ErrUnknownPreset, name)
}
