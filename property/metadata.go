package property

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidMetadata is returned when a metadata blob has the wrong size or
// schema version.
var ErrInvalidMetadata = errors.New("invalid metadata blob")

const (
	metadataFormatVersionCurrent = 1

	// MetadataSize is the encoded size of a Metadata record in bytes.
	MetadataSize = 1 + 4*2
)

// Metadata is the encoded property set attached to a stored resource.
type Metadata struct {
	Mime     Code
	Charset  Code
	Encoding Code
	Language Code
}

// NewMetadata encodes the given strings with the default-on-miss policy of
// each category.
func NewMetadata(mimeType, charset, encoding, language string) Metadata {
	return Metadata{
		Mime:     EncodeMimeType(mimeType),
		Charset:  EncodeCharset(charset),
		Encoding: EncodeEncoding(encoding),
		Language: EncodeLanguage(language),
	}
}

// DefaultMetadata is what a resource reports before it has been described.
func DefaultMetadata() Metadata {
	return Metadata{
		Mime:     DefaultMimeCode,
		Charset:  DefaultCharsetCode,
		Encoding: DefaultEncodingCode,
		Language: CodeNone,
	}
}

// MetadataStrings is the decoded form of Metadata.
type MetadataStrings struct {
	MimeType string
	Charset  string
	Encoding string
	Language string
}

// Strings decodes every field of m.
func (m Metadata) Strings() MetadataStrings {
	return MetadataStrings{
		MimeType: DecodeMimeType(m.Mime),
		Charset:  DecodeCharset(m.Charset),
		Encoding: DecodeEncoding(m.Encoding),
		Language: DecodeLanguage(m.Language),
	}
}

// EncodeMetadata writes the versioned fixed-width form of m.
func EncodeMetadata(m Metadata) []byte {
	out := make([]byte, 1, MetadataSize)
	out[0] = metadataFormatVersionCurrent
	for _, c := range [...]Code{m.Mime, m.Charset, m.Encoding, m.Language} {
		out = binary.BigEndian.AppendUint16(out, uint16(c))
	}
	return out
}

// DecodeMetadata parses a blob produced by EncodeMetadata.
func DecodeMetadata(data []byte) (Metadata, error) {
	if len(data) != MetadataSize {
		return Metadata{}, fmt.Errorf("%w: size %d", ErrInvalidMetadata, len(data))
	}
	if data[0] != metadataFormatVersionCurrent {
		return Metadata{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidMetadata, data[0])
	}

	return Metadata{
		Mime:     Code(binary.BigEndian.Uint16(data[1:3])),
		Charset:  Code(binary.BigEndian.Uint16(data[3:5])),
		Encoding: Code(binary.BigEndian.Uint16(data[5:7])),
		Language: Code(binary.BigEndian.Uint16(data[7:9])),
	}, nil
}
