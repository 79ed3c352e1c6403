// Package property encodes web resource metadata (MIME type, charset, content
// encoding, language/region tag) into 2-byte codes and back.
//
// # Tables
//
// Every category owns a forward (value -> code) and a reverse (code -> value)
// table. Both are built during package initialization and never mutated, so
// every function in this package is safe for concurrent use without locking.
//
// # Defaults
//
// Encoding and decoding never fail. A value missing from a table encodes to
// the category default code, and an unknown code decodes to the category
// default value:
//
//	mime      0x6273  application/octet-stream
//	charset   0x0000  ""
//	encoding  0x6964  identity
//	language  0x0000  ""
//
// # Language tags
//
// A language tag packs two sub-codes into one [Code]: the high byte comes from
// the language table and the low byte from the region table. Sub-codes that do
// not fit their half are truncated, which is a deliberate limit of the format.
//
// # What this package must NOT do
//
//   - Perform I/O or logging on the encode/decode path.
//   - Mutate the tables after initialization.
//   - Import header or permission.
package property
