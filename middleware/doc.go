// Package middleware adapts a [wttp.Site] to net/http.
//
// [Guard] maps the request verb (including the LOCATE and DEFINE extension
// verbs) to a permission.Method, authorizes it against the resource header
// stored for the request path and projects the header and metadata onto the
// response before calling the next handler.
//
// Status mapping:
//
//	unknown verb                 501 Not Implemented
//	method outside the mask      405 Method Not Allowed, with Allow
//	caller lacks the role        403 Forbidden
//	write budget spent           429 Too Many Requests, with Retry-After
//	store unavailable            503 Service Unavailable
//	malformed path               400 Bad Request
//
// # Architecture boundaries
//
// Callers decide who the caller is. A [RoleResolver] turns the request into
// the roles it holds; without one every request is anonymous. A
// [ClientResolver] names the caller for write throttling, which only runs
// when the site has write limits configured.
//
// # What this package must NOT do
//
//   - Authenticate callers itself.
//   - Access the store directly (Site handles I/O).
package middleware
