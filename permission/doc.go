// Package permission provides the WTTP method enum, the 16-bit method bitmask,
// 32-byte role identifiers and a role registry.
//
// # Method ordinals
//
// HEAD=0, GET=1, POST=2, PUT=3, PATCH=4, DELETE=5, OPTIONS=6, LOCATE=7,
// DEFINE=8. The ordinals are a wire contract shared with on-chain storage:
// bit i of a [Mask] means [Method] i is permitted. Do not reorder.
//
// # Roles
//
// A [Role] is a 32-byte identifier. Four sentinels are computed at package
// initialization: [DefaultAdminRole] (all zero), [PublicRole] (all 0xff),
// [BlacklistRole] and [IntraSiteRole] (keccak256 of fixed labels). Custom
// roles are derived the same way through [RoleFromLabel] or a [Registry].
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. It provides the
// mask codec (EncodeMask/DecodeMask) used by the header wire form.
//
// # What this package must NOT do
//
//   - Access Redis, databases, or the network.
//   - Import wttp, header, or store.
//   - Assign ordinals beyond DEFINE without a matching on-chain change.
package permission
