package header

import "errors"

var (
	ErrUnknownPreset     = errors.New("header: unknown preset")
	ErrInvalidHeaderBlob = errors.New("header: invalid header blob")
)
