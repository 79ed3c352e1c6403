package property

import "strings"

const (
	languageMask Code = 0xff00
	regionMask   Code = 0x00ff
)

// EncodeLanguage packs a "language[-REGION]" tag into one code: the high byte
// of the language sub-code and the low byte of the region sub-code. A part
// missing from its table contributes zero. Only the first two dash-separated
// subtags are considered.
func EncodeLanguage(tag string) Code {
	lang, region, _ := strings.Cut(tag, "-")
	region, _, _ = strings.Cut(region, "-")

	langCode, _ := languageTable.lookup(lang)
	regionCode, _ := regionTable.lookup(region)

	return langCode&languageMask | regionCode&regionMask
}

// DecodeLanguage unpacks a code produced by EncodeLanguage. The result is
// "language" or "language-REGION"; it is "" whenever the language half is
// unknown, even if the region half is valid.
func DecodeLanguage(code Code) string {
	lang, _ := languageTable.name(code & languageMask)
	if lang == "" {
		return ""
	}
	region, _ := regionTable.name(code & regionMask)
	if region == "" {
		return lang
	}
	return lang + "-" + region
}
