package permission

import "strings"

// Mask is a method bitmask: bit i set means Method i is permitted. Only the
// low MethodCount bits are meaningful.
type Mask uint16

const maskValidBits Mask = 1<<MethodCount - 1

var (
	AllMethodsMask      = MethodsToBitmask(Methods()...)
	ReadOnlyMethodsMask = MethodsToBitmask(MethodHead, MethodGet, MethodOptions, MethodLocate)
	WriteMethodsMask    = MethodsToBitmask(MethodPost, MethodPut, MethodPatch, MethodDelete, MethodDefine)
)

// MethodsToBitmask ORs 1<<m for every method. Duplicates are idempotent and
// order does not matter. Out-of-range methods are ignored.
func MethodsToBitmask(methods ...Method) Mask {
	var m Mask
	for _, method := range methods {
		m.Set(method)
	}
	return m
}

// BitmaskToMethods lists the methods whose bit is set, in ascending ordinal
// order. Bits above DEFINE are ignored.
func BitmaskToMethods(mask Mask) []Method {
	out := make([]Method, 0, MethodCount)
	for i := 0; i < MethodCount; i++ {
		if mask&(1<<i) != 0 {
			out = append(out, Method(i))
		}
	}
	return out
}

func (m *Mask) Has(method Method) bool {
	if !method.Valid() {
		return false
	}
	return (*m & (1 << method)) != 0
}

func (m *Mask) Set(method Method) {
	if !method.Valid() {
		return
	}
	*m |= (1 << method)
}

func (m *Mask) Clear(method Method) {
	if !method.Valid() {
		return
	}
	*m &^= (1 << method)
}

func (m *Mask) Raw() uint16 {
	return uint16(*m)
}

// String renders the mask as a comma-separated method list, e.g. "GET,PUT".
func (m Mask) String() string {
	methods := BitmaskToMethods(m)
	names := make([]string, len(methods))
	for i, method := range methods {
		names[i] = method.String()
	}
	return strings.Join(names, ",")
}
