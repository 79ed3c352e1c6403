// Package header models WTTP resource headers: cache policy, the per-method
// CORS/origins policy and redirects, together with the preset collections
// sites start from.
//
// # Origins
//
// An [Origins] value holds one [permission.Role] per method, indexed by
// method ordinal. The array type fixes its length; slices of any other length
// are normalized by [NormalizeOrigins].
//
// # Wire form
//
// [Marshal] and [Unmarshal] encode an [Info] with CBOR Core Deterministic
// Encoding, so equal headers always produce equal bytes.
//
// # What this package must NOT do
//
//   - Depend on property; content metadata is a separate concern.
//   - Mutate preset values. Every constructor returns a fresh value.
package header
