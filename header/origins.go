package header

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MrEthical07/wttp/permission"
)

// Origins assigns one role per method, indexed by method ordinal.
type Origins [permission.MethodCount]permission.Role

// CreateOriginsArray assigns role to every method.
func CreateOriginsArray(role permission.Role) Origins {
	var o Origins
	for i := range o {
		o[i] = role
	}
	return o
}

// CreateMixedOriginsArray assigns read to HEAD, GET, OPTIONS and LOCATE and
// write to POST, PUT, PATCH, DELETE and DEFINE.
func CreateMixedOriginsArray(read, write permission.Role) Origins {
	var o Origins
	for i := range o {
		if permission.Method(i).IsRead() {
			o[i] = read
		} else {
			o[i] = write
		}
	}
	return o
}

// NormalizeOrigins converts a slice to Origins. A slice of exactly
// MethodCount roles is copied; any other length is replaced by its first
// element broadcast to every method, or PublicRole when empty.
func NormalizeOrigins(roles []permission.Role) Origins {
	if len(roles) == permission.MethodCount {
		var o Origins
		copy(o[:], roles)
		return o
	}
	if len(roles) == 0 {
		return CreateOriginsArray(permission.PublicRole)
	}
	return CreateOriginsArray(roles[0])
}

// Role returns the role assigned to method m. Out-of-range methods get the
// blacklist role.
func (o Origins) Role(m permission.Method) permission.Role {
	if !m.Valid() {
		return permission.BlacklistRole
	}
	return o[m]
}

// Slice returns the roles as a fresh slice.
func (o Origins) Slice() []permission.Role {
	out := make([]permission.Role, len(o))
	copy(out, o[:])
	return out
}

var (
	OriginsPublic               = CreateOriginsArray(permission.PublicRole)
	OriginsAdminOnly            = CreateOriginsArray(permission.DefaultAdminRole)
	OriginsBlacklisted          = CreateOriginsArray(permission.BlacklistRole)
	OriginsIntraSite            = CreateOriginsArray(permission.IntraSiteRole)
	OriginsReadPublicWriteAdmin = CreateMixedOriginsArray(permission.PublicRole, permission.DefaultAdminRole)
	OriginsReadPublicWriteIntra = CreateMixedOriginsArray(permission.PublicRole, permission.IntraSiteRole)
	OriginsReadOnlyPublic       = CreateMixedOriginsArray(permission.PublicRole, permission.BlacklistRole)

	// OriginsAPIPattern: reads public, POST and PATCH intra-site, PUT, DELETE
	// and DEFINE admin.
	OriginsAPIPattern = func() Origins {
		o := CreateOriginsArray(permission.PublicRole)
		o[permission.MethodPost] = permission.IntraSiteRole
		o[permission.MethodPatch] = permission.IntraSiteRole
		o[permission.MethodPut] = permission.DefaultAdminRole
		o[permission.MethodDelete] = permission.DefaultAdminRole
		o[permission.MethodDefine] = permission.DefaultAdminRole
		return o
	}()

	// OriginsImmutableContent: reads public, PATCH and DELETE blacklisted,
	// POST, PUT and DEFINE admin.
	OriginsImmutableContent = func() Origins {
		o := CreateOriginsArray(permission.PublicRole)
		o[permission.MethodPost] = permission.DefaultAdminRole
		o[permission.MethodPut] = permission.DefaultAdminRole
		o[permission.MethodDefine] = permission.DefaultAdminRole
		o[permission.MethodPatch] = permission.BlacklistRole
		o[permission.MethodDelete] = permission.BlacklistRole
		return o
	}()
)

var originsPresets = map[string]Origins{
	"PUBLIC":                  OriginsPublic,
	"ADMIN_ONLY":              OriginsAdminOnly,
	"BLACKLISTED":             OriginsBlacklisted,
	"INTRA_SITE":              OriginsIntraSite,
	"READ_PUBLIC_WRITE_ADMIN": OriginsReadPublicWriteAdmin,
	"READ_PUBLIC_WRITE_INTRA": OriginsReadPublicWriteIntra,
	"READ_ONLY_PUBLIC":        OriginsReadOnlyPublic,
	"API_PATTERN":             OriginsAPIPattern,
	"IMMUTABLE_CONTENT":       OriginsImmutableContent,
}

// OriginsPreset returns a copy of the named origins preset.
func OriginsPreset(name string) (Origins, error) {
	o, ok := originsPresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Origins{}, fmt.Errorf("%w: origins %q", ErrUnknownPreset, name)
	}
	return o, nil
}

// OriginsPresetNames lists the origins preset names, sorted.
func OriginsPresetNames() []string {
	return sortedKeys(originsPresets)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
