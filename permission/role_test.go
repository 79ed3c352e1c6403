package permission

import (
	"errors"
	"strings"
	"testing"
)

func TestRoleSentinels(t *testing.T) {
	if DefaultAdminRole.Hex() != "0x"+strings.Repeat("00", RoleSize) {
		t.Fatalf("admin = %s", DefaultAdminRole)
	}
	if PublicRole.Hex() != "0x"+strings.Repeat("ff", RoleSize) {
		t.Fatalf("public = %s", PublicRole)
	}
	const (
		blacklistHex = "0x22435ed027edf5f902dc0093fbc24cdb50c05b5fd5f311b78c67c1cbaff60e13"
		intraSiteHex = "0x7c680450737cdb367765daa80c51abca3640884a0b1365f0b0361c5d13914989"
	)
	if got := BlacklistRole.Hex(); got != blacklistHex {
		t.Fatalf("blacklist = %s, want %s", got, blacklistHex)
	}
	if got := IntraSiteRole.Hex(); got != intraSiteHex {
		t.Fatalf("intra-site = %s, want %s", got, intraSiteHex)
	}

	seen := map[Role]bool{}
	for _, r := range []Role{DefaultAdminRole, PublicRole, BlacklistRole, IntraSiteRole} {
		if seen[r] {
			t.Fatalf("duplicate sentinel %s", r)
		}
		seen[r] = true
	}
}

func TestRoleFromLabelIsLegacyKeccak(t *testing.T) {
	const emptyKeccak = "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := RoleFromLabel("").Hex(); got != emptyKeccak {
		t.Fatalf("keccak256(\"\") = %s", got)
	}
	const adminLabelKeccak = "0x1effbbff9c66c5e59634f24fe842750c60d18891155c32dd155fc2d661a4c86d"
	if got := RoleFromLabel("DEFAULT_ADMIN_ROLE").Hex(); got != adminLabelKeccak {
		t.Fatalf("keccak256(\"DEFAULT_ADMIN_ROLE\") = %s", got)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{DefaultAdminRole, PublicRole, BlacklistRole, IntraSiteRole} {
		got, err := ParseRole(r.Hex())
		if err != nil {
			t.Fatalf("ParseRole(%s): %v", r, err)
		}
		if got != r {
			t.Fatalf("got %s, want %s", got, r)
		}
		if got, err := ParseRole(strings.ToUpper(r.Hex()[2:])); err != nil || got != r {
			t.Fatalf("unprefixed upper-case parse failed: %v", err)
		}
	}

	for _, bad := range []string{"", "0x1234", strings.Repeat("g", 64)} {
		if _, err := ParseRole(bad); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("ParseRole(%q): expected ErrInvalidRole, got %v", bad, err)
		}
	}
}
