package wttp

import "errors"

var (
	// ErrChainNotFound is returned when a chain id or alias is not configured.
	ErrChainNotFound = errors.New("chain not found in config")
	// ErrInvalidConfig is returned by Config.Validate and the Builder.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrResourceNotFound is returned when a path has no stored record.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrMethodNotAllowed is returned when a method is excluded by the resource's method mask.
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrForbidden is returned when the caller lacks the role a method requires.
	ErrForbidden = errors.New("forbidden")
	// ErrRateLimited is returned when a client exceeds its write budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrStoreUnavailable wraps backend failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrSiteNotReady is returned by methods called on a nil or unbuilt Site.
	ErrSiteNotReady = errors.New("site not initialized")
	// ErrBuilderUsed is returned by a second call to Builder.Build.
	ErrBuilderUsed = errors.New("builder already used")
)
