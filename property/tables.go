package property

import "sort"

// Code is a 2-byte property code as stored by the site contracts.
type Code uint16

// Reserved and default codes.
const (
	CodeNone Code = 0x0000

	DefaultMimeCode     Code = 0x6273
	DefaultCharsetCode  Code = CodeNone
	DefaultEncodingCode Code = 0x6964

	DefaultMimeType = "application/octet-stream"
	DefaultCharset  = ""
	DefaultEncoding = "identity"
)

// table holds one category's forward and reverse mappings.
type table struct {
	forward map[string]Code
	reverse map[Code]string
}

func (t table) lookup(value string) (Code, bool) {
	code, ok := t.forward[value]
	return code, ok
}

func (t table) name(code Code) (string, bool) {
	value, ok := t.reverse[code]
	return value, ok
}

func (t table) values() []string {
	out := make([]string, 0, len(t.forward))
	for v := range t.forward {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

var mimeTable = table{
	forward: map[string]Code{
		"text/html":                0x7468, // th
		"text/javascript":          0x616a, // aj, decodes as application/javascript
		"text/css":                 0x7463, // tc
		"text/markdown":            0x746d, // tm
		"text/plain":               0x7470, // tp
		"application/javascript":   0x616a, // aj
		"application/xml":          0x6178, // ax
		"application/pdf":          0x6170, // ap
		"application/json":         0x616f, // ao
		"image/png":                0x6970, // ip
		"image/jpeg":               0x696a, // ij
		"image/gif":                0x6967, // ig
		"image/svg+xml":            0x6973, // is
		"image/webp":               0x6977, // iw
		"image/x-icon":             0x6969, // ii
		"font/ttf":                 0x6674, // ft
		"font/otf":                 0x666f, // fo
		"font/woff":                0x6677, // fw
		"font/woff2":               0x6632, // f2
		"application/octet-stream": 0x6273, // bs
	},
	reverse: map[Code]string{
		0x7468: "text/html",
		0x7463: "text/css",
		0x746d: "text/markdown",
		0x7470: "text/plain",
		0x616a: "application/javascript",
		0x6178: "application/xml",
		0x6170: "application/pdf",
		0x616f: "application/json",
		0x6970: "image/png",
		0x696a: "image/jpeg",
		0x6967: "image/gif",
		0x6973: "image/svg+xml",
		0x6977: "image/webp",
		0x6969: "image/x-icon",
		0x6674: "font/ttf",
		0x666f: "font/otf",
		0x6677: "font/woff",
		0x6632: "font/woff2",
		0x6273: "application/octet-stream",
		0x0000: "application/octet-stream",
	},
}

var charsetTable = table{
	forward: map[string]Code{
		"utf-8":        0x7508,
		"utf-16":       0x7510,
		"utf-32":       0x7520,
		"utf-16le":     0x106c,
		"utf-16be":     0x1062,
		"utf-32le":     0x206c,
		"utf-32be":     0x2062,
		"us-ascii":     0x7561,
		"unicode":      0x7563,
		"iso-8859-1":   0x6901,
		"iso-8859-2":   0x6902,
		"iso-8859-3":   0x6903,
		"iso-8859-4":   0x6904,
		"iso-8859-5":   0x6905,
		"iso-8859-6":   0x6906,
		"iso-8859-7":   0x6907,
		"iso-8859-8":   0x6908,
		"iso-8859-9":   0x6909,
		"iso-8859-10":  0x690a,
		"iso-8859-11":  0x690b,
		"iso-8859-13":  0x690d,
		"iso-8859-14":  0x690e,
		"iso-8859-15":  0x690f,
		"iso-8859-16":  0x6910,
		"windows-1250": 0x7732,
		"windows-1251": 0x7733,
		"windows-1252": 0x7734,
		"windows-1253": 0x7735,
		"windows-1254": 0x7736,
		"windows-1255": 0x7737,
		"windows-1256": 0x7738,
		"windows-1257": 0x7739,
		"windows-1258": 0x773a,
		"big5":         0x6205,
		// Unassigned: these collide with "no charset".
		"shift_jis": CodeNone,
		"euc-jp":    CodeNone,
		"euc-kr":    CodeNone,
		"gbk":       CodeNone,
		"gb18030":   CodeNone,
		"gb2312":    CodeNone,
		"gb2312-80": CodeNone,
		"gb2312-90": CodeNone,
		"gb2312-95": CodeNone,
		"gb2312-00": CodeNone,
	},
	reverse: map[Code]string{
		0x7508: "utf-8",
		0x7510: "utf-16",
		0x7520: "utf-32",
		0x106c: "utf-16le",
		0x1062: "utf-16be",
		0x206c: "utf-32le",
		0x2062: "utf-32be",
		0x7561: "us-ascii",
		0x7563: "unicode",
		0x6901: "iso-8859-1",
		0x6902: "iso-8859-2",
		0x6903: "iso-8859-3",
		0x6904: "iso-8859-4",
		0x6905: "iso-8859-5",
		0x6906: "iso-8859-6",
		0x6907: "iso-8859-7",
		0x6908: "iso-8859-8",
		0x6909: "iso-8859-9",
		0x690a: "iso-8859-10",
		0x690b: "iso-8859-11",
		0x690d: "iso-8859-13",
		0x690e: "iso-8859-14",
		0x690f: "iso-8859-15",
		0x6910: "iso-8859-16",
		0x7732: "windows-1250",
		0x7733: "windows-1251",
		0x7734: "windows-1252",
		0x7735: "windows-1253",
		0x7736: "windows-1254",
		0x7737: "windows-1255",
		0x7738: "windows-1256",
		0x7739: "windows-1257",
		0x773a: "windows-1258",
		0x6205: "big5",
		0x0000: "",
	},
}

var encodingTable = table{
	forward: map[string]Code{
		"gzip":     0x677a, // gz
		"identity": 0x6964, // id
		"zstd":     0x7a73, // zs
		"zlib":     0x7a6c, // zl
		"brotli":   0x6272, // br
		"lz4":      0x6c34, // l4
		"snappy":   0x736e, // sn
		"lzma":     0x6c6d, // lm
	},
	reverse: map[Code]string{
		0x677a: "gzip",
		0x6964: "identity",
		0x7a73: "zstd",
		0x7a6c: "zlib",
		0x6272: "brotli",
		0x6c34: "lz4",
		0x736e: "snappy",
		0x6c6d: "lzma",
		0x0000: "identity",
	},
}

// Language sub-codes occupy the high byte.
var languageTable = table{
	forward: map[string]Code{
		"en": 0x6500,
		"fr": 0x6600,
		"de": 0x6400,
		"es": 0x7300,
		"it": 0x6900,
		"ja": 0x6a00,
		"ko": 0x6b00,
		"ru": 0x7200,
	},
	reverse: map[Code]string{
		0x6500: "en",
		0x6600: "fr",
		0x6400: "de",
		0x7300: "es",
		0x6900: "it",
		0x6a00: "ja",
		0x6b00: "ko",
		0x7200: "ru",
		0x0000: "",
	},
}

// Region sub-codes occupy the low byte.
var regionTable = table{
	forward: map[string]Code{
		"US": 0x0075,
		"GB": 0x0067,
		"CA": 0x0063,
		"AU": 0x0061,
		"NZ": 0x006e,
	},
	reverse: map[Code]string{
		0x0075: "US",
		0x0067: "GB",
		0x0063: "CA",
		0x0061: "AU",
		0x006e: "NZ",
		0x0000: "",
	},
}
