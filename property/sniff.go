package property

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Sniff detects the MIME type and charset of data and encodes them. Types
// and charsets outside the tables degrade to the category defaults, the
// encoding is identity and no language is set.
func Sniff(data []byte) Metadata {
	m := DefaultMetadata()

	detected := mimetype.Detect(data)
	mediaType, params, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return m
	}

	m.Mime = sniffMime(detected, mediaType)
	if cs, ok := params["charset"]; ok {
		m.Charset = EncodeCharset(strings.ToLower(cs))
	}
	return m
}

// sniffMime walks up the detected type's parents until one is in the MIME
// table, so a specialised JSON or text type still encodes as its parent.
func sniffMime(detected *mimetype.MIME, mediaType string) Code {
	if code, ok := mimeTable.lookup(mediaType); ok {
		return code
	}
	for p := detected.Parent(); p != nil; p = p.Parent() {
		parentType, _, err := mime.ParseMediaType(p.String())
		if err != nil {
			continue
		}
		if code, ok := mimeTable.lookup(parentType); ok {
			return code
		}
	}
	return DefaultMimeCode
}

// DetectFile is Sniff with a filename hint: a registered extension whose
// MIME type is in the table wins over content sniffing. The charset still
// comes from the content.
func DetectFile(name string, data []byte) Metadata {
	m := Sniff(data)

	byExt := mime.TypeByExtension(filepath.Ext(name))
	if byExt == "" {
		return m
	}
	mediaType, params, err := mime.ParseMediaType(byExt)
	if err != nil {
		return m
	}
	if code, ok := mimeTable.lookup(mediaType); ok {
		m.Mime = code
	}
	if m.Charset == CodeNone {
		if cs, ok := params["charset"]; ok {
			m.Charset = EncodeCharset(strings.ToLower(cs))
		}
	}
	return m
}
