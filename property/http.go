package property

import (
	"mime"
	"net/http"

	"github.com/go-http-utils/headers"
)

// Apply writes the representation headers described by m into h.
// Content-Encoding is omitted for identity and Content-Language for an empty
// language tag.
func (m Metadata) Apply(h http.Header) {
	s := m.Strings()

	contentType := s.MimeType
	if s.Charset != "" {
		contentType = mime.FormatMediaType(s.MimeType, map[string]string{"charset": s.Charset})
	}
	h.Set(headers.ContentType, contentType)

	if s.Encoding != DefaultEncoding {
		h.Set(headers.ContentEncoding, HTTPContentCoding(s.Encoding))
	} else {
		h.Del(headers.ContentEncoding)
	}

	if s.Language != "" {
		h.Set(headers.ContentLanguage, s.Language)
	} else {
		h.Del(headers.ContentLanguage)
	}
}

// Registered HTTP content-coding tokens that differ from the table names.
var httpContentCodings = map[string]string{
	"brotli": "br",
	"zlib":   "deflate",
}

// HTTPContentCoding maps an encoding name to its HTTP Content-Encoding token.
func HTTPContentCoding(encoding string) string {
	if token, ok := httpContentCodings[encoding]; ok {
		return token
	}
	return encoding
}
