package permission

import (
	"fmt"
	"strings"
)

// Method is a WTTP request method. The numeric value is the bit position in
// a [Mask].
type Method uint8

const (
	MethodHead    Method = 0
	MethodGet     Method = 1
	MethodPost    Method = 2
	MethodPut     Method = 3
	MethodPatch   Method = 4
	MethodDelete  Method = 5
	MethodOptions Method = 6
	MethodLocate  Method = 7
	MethodDefine  Method = 8
)

// MethodCount is the number of defined methods and the length of an origins array.
const MethodCount = 9

var methodNames = [MethodCount]string{
	MethodHead:    "HEAD",
	MethodGet:     "GET",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodPatch:   "PATCH",
	MethodDelete:  "DELETE",
	MethodOptions: "OPTIONS",
	MethodLocate:  "LOCATE",
	MethodDefine:  "DEFINE",
}

// Methods returns every method in ascending ordinal order.
func Methods() []Method {
	out := make([]Method, MethodCount)
	for i := range out {
		out[i] = Method(i)
	}
	return out
}

// Valid reports whether m is one of the nine defined methods.
func (m Method) Valid() bool {
	return m < MethodCount
}

func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
	return methodNames[m]
}

// IsRead reports whether m belongs to the read-only set
// (HEAD, GET, OPTIONS, LOCATE).
func (m Method) IsRead() bool {
	switch m {
	case MethodHead, MethodGet, MethodOptions, MethodLocate:
		return true
	}
	return false
}

// ParseMethod resolves a method name case-insensitively.
func ParseMethod(name string) (Method, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range methodNames {
		if n == upper {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// ParseMethods resolves each name with ParseMethod and stops at the first error.
func ParseMethods(names ...string) ([]Method, error) {
	out := make([]Method, 0, len(names))
	for _, n := range names {
		m, err := ParseMethod(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
