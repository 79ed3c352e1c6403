package permission

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// RoleSize is the length of a role identifier in bytes.
const RoleSize = 32

// Role is a 32-byte role identifier, the same shape as an on-chain bytes32.
type Role [RoleSize]byte

const (
	blacklistLabel = "BLACKLIST_ROLE"
	intraSiteLabel = "INTRA_SITE_COMMUNICATION"
)

var (
	// DefaultAdminRole is the all-zero role.
	DefaultAdminRole Role
	// PublicRole is the all-0xff role; it admits any caller.
	PublicRole = func() Role {
		var r Role
		for i := range r {
			r[i] = 0xff
		}
		return r
	}()
	// BlacklistRole is keccak256("BLACKLIST_ROLE").
	BlacklistRole = RoleFromLabel(blacklistLabel)
	// IntraSiteRole is keccak256("INTRA_SITE_COMMUNICATION").
	IntraSiteRole = RoleFromLabel(intraSiteLabel)
)

// RoleFromLabel derives a role as the legacy Keccak-256 hash of label.
func RoleFromLabel(label string) Role {
	var r Role
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(label))
	h.Sum(r[:0])
	return r
}

// Hex returns the role as 0x-prefixed lowercase hex.
func (r Role) Hex() string {
	return "0x" + hex.EncodeToString(r[:])
}

func (r Role) String() string {
	return r.Hex()
}

// IsZero reports whether r is the default admin role.
func (r Role) IsZero() bool {
	return r == DefaultAdminRole
}

// ParseRole decodes a 64-digit hex role, with or without a 0x prefix.
func ParseRole(s string) (Role, error) {
	var r Role
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(raw) != hex.EncodedLen(RoleSize) {
		return r, fmt.Errorf("%w: expected %d hex digits, got %d", ErrInvalidRole, hex.EncodedLen(RoleSize), len(raw))
	}
	if _, err := hex.Decode(r[:], []byte(raw)); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}
	return r, nil
}
