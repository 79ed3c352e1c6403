package permission

import (
	"fmt"
	"sort"
	"sync"
)

// Names of the sentinel roles every registry starts with.
const (
	RoleNameAdmin     = "ADMIN"
	RoleNameBlacklist = "BLACKLIST"
	RoleNamePublic    = "PUBLIC"
	RoleNameIntraSite = "INTRA_SITE"
)

// Registry maps role names to role identifiers. It is seeded with the four
// sentinel roles; custom roles are derived from their label with keccak256.
//
// Register during initialization, then Freeze. Lookups are safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	nameToRole map[string]Role
	roleToName map[Role]string
	frozen     bool
}

// NewRegistry creates a [Registry] containing ADMIN, BLACKLIST, PUBLIC and
// INTRA_SITE.
func NewRegistry() *Registry {
	r := &Registry{
		nameToRole: make(map[string]Role),
		roleToName: make(map[Role]string),
	}
	r.put(RoleNameAdmin, DefaultAdminRole)
	r.put(RoleNameBlacklist, BlacklistRole)
	r.put(RoleNamePublic, PublicRole)
	r.put(RoleNameIntraSite, IntraSiteRole)
	return r
}

func (r *Registry) put(name string, role Role) {
	r.nameToRole[name] = role
	r.roleToName[role] = name
}

// Register derives keccak256(label) and records it under label. Must be
// called before [Registry.Freeze].
func (r *Registry) Register(label string) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return Role{}, ErrRegistryFrozen
	}
	if label == "" {
		return Role{}, ErrEmptyRoleName
	}
	if _, exists := r.nameToRole[label]; exists {
		return Role{}, fmt.Errorf("%w: %s", ErrRoleAlreadyDefined, label)
	}

	role := RoleFromLabel(label)
	if prev, clash := r.roleToName[role]; clash {
		return Role{}, fmt.Errorf("%w: %s hashes to %s", ErrRoleAlreadyDefined, label, prev)
	}
	r.put(label, role)
	return role, nil
}

// Role returns the role registered under name.
func (r *Registry) Role(name string) (Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.nameToRole[name]
	return role, ok
}

// Name returns the name a role was registered under.
func (r *Registry) Name(role Role) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.roleToName[role]
	return name, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.nameToRole))
	for name := range r.nameToRole {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve accepts either a registered name or a hex role.
func (r *Registry) Resolve(nameOrHex string) (Role, error) {
	if role, ok := r.Role(nameOrHex); ok {
		return role, nil
	}
	return ParseRole(nameOrHex)
}

// Freeze prevents further registrations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Count returns the number of registered roles, sentinels included.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nameToRole)
}
