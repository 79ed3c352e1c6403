// Package wttp serves web resources published through the Web3 Transfer
// Protocol: per-path headers (cache policy, method mask, per-method roles,
// redirects) and compact resource metadata, persisted in Redis or any
// go-datastore.
//
// A [Site] is built once through [Builder.Build] and is safe to call from
// multiple goroutines afterwards. Writes can be published as [ChangeEvent]
// values to an [EventSink] and throttled per client with Redis counters.
//
// # Architecture boundaries
//
// wttp is the public surface. It exposes [Site], [Builder], [Config] and the
// metrics types. The wire codecs live in property, permission and header;
// persistence lives in store; HTTP integration lives in middleware.
//
// # What this package must NOT do
//
//   - Perform I/O outside of Site methods and the change feed worker.
//     Build only allocates; Redis clients connect lazily.
//   - Talk to a chain. Chain configuration is data for callers that do.
//   - Import any sub-package that re-imports wttp (no import cycles).
package wttp
