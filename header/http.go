package header

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-http-utils/headers"
)

// CacheControlValue is the effective Cache-Control: the custom directive
// when set, otherwise the preset's.
func (i Info) CacheControlValue() string {
	if i.Cache.Custom != "" {
		return i.Cache.Custom
	}
	return CacheControl(i.Cache.Preset)
}

// CSP is the effective Content-Security-Policy: the custom policy when set,
// otherwise the preset's.
func (i Info) CSP() string {
	if i.CORS.Custom != "" {
		return i.CORS.Custom
	}
	return LoadCSPPreset(i.CORS.Preset)
}

// AllowValue renders the enabled methods for an Allow header.
func (i Info) AllowValue() string {
	methods := i.Methods()
	names := make([]string, len(methods))
	for n, m := range methods {
		names[n] = m.String()
	}
	return strings.Join(names, ", ")
}

// Apply projects the header onto an HTTP response header. Empty values
// remove the corresponding field.
func (i Info) Apply(h http.Header) {
	setOrDel(h, headers.CacheControl, i.CacheControlValue())
	setOrDel(h, headers.ContentSecurityPolicy, i.CSP())

	allow := i.AllowValue()
	setOrDel(h, headers.Allow, allow)
	setOrDel(h, headers.AccessControlAllowMethods, allow)

	if _, ok := i.RedirectStatus(); ok {
		setOrDel(h, headers.Location, i.Redirect.Location)
	} else {
		h.Del(headers.Location)
	}
}

// RedirectStatus returns the redirect status code and true when a 3xx
// redirect is configured. Other codes are stored as-is but never served.
func (i Info) RedirectStatus() (int, bool) {
	if i.Redirect.Code < http.StatusMultipleChoices || i.Redirect.Code > 399 {
		return 0, false
	}
	return int(i.Redirect.Code), true
}

// String is a short human form used in logs and the CLI.
func (i Info) String() string {
	var b strings.Builder
	b.WriteString("cache=")
	b.WriteString(i.Cache.Preset.String())
	if i.Cache.Immutable {
		b.WriteString("(immutable)")
	}
	b.WriteString(" cors=")
	b.WriteString(i.CORS.Preset.String())
	b.WriteString(" methods=")
	b.WriteString(i.CORS.Methods.String())
	if i.Redirects() {
		b.WriteString(" redirect=")
		b.WriteString(strconv.Itoa(int(i.Redirect.Code)))
		b.WriteString(" ")
		b.WriteString(i.Redirect.Location)
	}
	return b.String()
}

func setOrDel(h http.Header, key, value string) {
	if value == "" {
		h.Del(key)
		return
	}
	h.Set(key, value)
}
