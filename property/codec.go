package property

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCategory is returned by ParseCategory for unrecognized tags.
var ErrUnknownCategory = errors.New("unknown property category")

// Category selects the table pair used by Encode and Decode.
type Category uint8

const (
	CategoryMime     Category = 0
	CategoryCharset  Category = 1
	CategoryEncoding Category = 2
	CategoryLanguage Category = 3
)

// Categories lists every category in declaration order.
var Categories = []Category{CategoryMime, CategoryCharset, CategoryEncoding, CategoryLanguage}

func (c Category) String() string {
	switch c {
	case CategoryMime:
		return "mime"
	case CategoryCharset:
		return "charset"
	case CategoryEncoding:
		return "encoding"
	case CategoryLanguage:
		return "language"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseCategory parses the textual category tag used on the command line and
// in configuration files.
func ParseCategory(tag string) (Category, error) {
	switch tag {
	case "mime":
		return CategoryMime, nil
	case "charset":
		return CategoryCharset, nil
	case "encoding":
		return CategoryEncoding, nil
	case "language":
		return CategoryLanguage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, tag)
	}
}

// Encode maps value to its code in category c. Values missing from the
// table encode to the category default; an unknown category yields CodeNone.
func Encode(c Category, value string) Code {
	switch c {
	case CategoryMime:
		return EncodeMimeType(value)
	case CategoryCharset:
		return EncodeCharset(value)
	case CategoryEncoding:
		return EncodeEncoding(value)
	case CategoryLanguage:
		return EncodeLanguage(value)
	default:
		return CodeNone
	}
}

// Decode maps code back to its value in category c. Unknown codes decode to
// the category default; an unknown category yields "".
func Decode(c Category, code Code) string {
	switch c {
	case CategoryMime:
		return DecodeMimeType(code)
	case CategoryCharset:
		return DecodeCharset(code)
	case CategoryEncoding:
		return DecodeEncoding(code)
	case CategoryLanguage:
		return DecodeLanguage(code)
	default:
		return ""
	}
}

// EncodeMimeType returns the code for mimeType, or DefaultMimeCode.
func EncodeMimeType(mimeType string) Code {
	if code, ok := mimeTable.lookup(mimeType); ok {
		return code
	}
	return DefaultMimeCode
}

// DecodeMimeType returns the MIME type for code, or DefaultMimeType.
func DecodeMimeType(code Code) string {
	if v, ok := mimeTable.name(code); ok {
		return v
	}
	return DefaultMimeType
}

// EncodeCharset returns the code for charset, or CodeNone.
func EncodeCharset(charset string) Code {
	if code, ok := charsetTable.lookup(charset); ok {
		return code
	}
	return DefaultCharsetCode
}

// DecodeCharset returns the charset for code, or "".
func DecodeCharset(code Code) string {
	if v, ok := charsetTable.name(code); ok {
		return v
	}
	return DefaultCharset
}

// EncodeEncoding returns the code for a content encoding, or DefaultEncodingCode.
func EncodeEncoding(encoding string) Code {
	if code, ok := encodingTable.lookup(encoding); ok {
		return code
	}
	return DefaultEncodingCode
}

// DecodeEncoding returns the content encoding for code, or DefaultEncoding.
func DecodeEncoding(code Code) string {
	if v, ok := encodingTable.name(code); ok {
		return v
	}
	return DefaultEncoding
}

// Lookup reports the forward table entry for value without applying defaults.
// Language lookups resolve a bare language subtag; use EncodeLanguage for tags.
func Lookup(c Category, value string) (Code, bool) {
	t, ok := tableFor(c)
	if !ok {
		return CodeNone, false
	}
	return t.lookup(value)
}

// Reverse reports the reverse table entry for code without applying defaults.
func Reverse(c Category, code Code) (string, bool) {
	t, ok := tableFor(c)
	if !ok {
		return "", false
	}
	return t.name(code)
}

// Values returns the sorted forward-table keys of category c.
func Values(c Category) []string {
	t, ok := tableFor(c)
	if !ok {
		return nil
	}
	return t.values()
}

// Regions returns the sorted region subtags known to the language codec.
func Regions() []string {
	return regionTable.values()
}

func tableFor(c Category) (table, bool) {
	switch c {
	case CategoryMime:
		return mimeTable, true
	case CategoryCharset:
		return charsetTable, true
	case CategoryEncoding:
		return encodingTable, true
	case CategoryLanguage:
		return languageTable, true
	default:
		return table{}, false
	}
}

// String renders a code as 0x-prefixed lowercase hex, the form used by the
// contract tooling.
func (c Code) String() string {
	return fmt.Sprintf("0x%04x", uint16(c))
}

// ParseCode parses a 0x-prefixed or bare 4-digit hex code.
func ParseCode(s string) (Code, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(raw, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid property code %q: %w", s, err)
	}
	return Code(v), nil
}
