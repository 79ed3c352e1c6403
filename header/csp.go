package header

var cspPresets = map[CORSPreset]string{
	CORSNone: "default-src 'none';",
	CORSPublic: "default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval'; " +
		"style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; " +
		"connect-src 'self'; object-src 'none'; frame-src 'none';",
	CORSRestricted: "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self'; " +
		"font-src 'self'; connect-src 'self'; object-src 'none'; frame-src 'none';",
	CORSAPI: "default-src 'none'; connect-src 'self'; frame-ancestors 'none';",
	CORSMixedAccess: "default-src 'self'; script-src 'self' https:; style-src 'self' https: 'unsafe-inline'; " +
		"img-src 'self' https: data:; font-src 'self' https:; connect-src 'self' https:; " +
		"object-src 'none'; frame-src 'self' https:;",
	CORSPrivate: "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self'; " +
		"font-src 'self'; connect-src 'self'; object-src 'none'; frame-src 'none'; " +
		"frame-ancestors 'none'; form-action 'self';",
}

// LoadCSPPreset returns the Content-Security-Policy text for a CORS preset,
// or "" when the preset is unknown.
func LoadCSPPreset(p CORSPreset) string {
	return cspPresets[p]
}
