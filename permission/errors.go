package permission

import "errors"

var (
	// ErrUnknownMethod is returned when a method name or ordinal is not one of
	// the nine WTTP methods.
	ErrUnknownMethod = errors.New("permission: unknown method")
	// ErrInvalidRole is returned when a role cannot be parsed from hex.
	ErrInvalidRole = errors.New("permission: invalid role")
	// ErrInvalidMaskSize is returned by DecodeMask for inputs that are not 2 bytes.
	ErrInvalidMaskSize = errors.New("permission: invalid mask size")

	ErrRegistryFrozen     = errors.New("permission: registry frozen")
	ErrEmptyRoleName      = errors.New("permission: role name cannot be empty")
	ErrRoleAlreadyDefined = errors.New("permission: role already registered")
)
