// Package store persists WTTP resource records: the header and content
// metadata defined for each path.
//
// # Backends
//
// [RedisStore] keeps one binary record per path under "<prefix>:res:<path>"
// plus an index set "<prefix>:paths". [DatastoreStore] keeps records in any
// go-datastore under "/<prefix>/res/<escaped path>".
//
// # Record format
//
// Records are versioned binary blobs (see [EncodeRecord]). Every Define or
// Describe writes a complete new record with a fresh revision id; records are
// never edited in place.
//
// # What this package must NOT do
//
//   - Evaluate method permissions. That belongs to the site facade.
//   - Transcode content bodies.
package store
