// Package rate provides the Redis-backed fixed-window counter that throttles
// writes per client.
//
// # Window semantics
//
// INCR plus EXPIRE on the first hit of a window. Keys are
// <prefix>:rw:<client>, so a hash-tagged prefix keeps a site's counters on
// one cluster slot.
//
// # What this package must NOT do
//
//   - Decide which methods or clients are throttled (the site and the
//     middleware do).
//   - Be imported outside the wttp module.
package rate
