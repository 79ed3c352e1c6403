package permission

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestMethodsToBitmask(t *testing.T) {
	if got := MethodsToBitmask(MethodGet, MethodPut); got != 10 {
		t.Fatalf("[GET, PUT] = %d, want 10", got)
	}
	if got := MethodsToBitmask(MethodPut, MethodGet, MethodGet); got != 10 {
		t.Fatalf("order/duplicates changed mask: %d", got)
	}
	if got := MethodsToBitmask(); got != 0 {
		t.Fatalf("empty = %d", got)
	}
	if got := MethodsToBitmask(Method(12)); got != 0 {
		t.Fatalf("out-of-range method set a bit: %d", got)
	}
}

func TestBitmaskRoundTripIsSortedUnique(t *testing.T) {
	in := []Method{MethodDefine, MethodGet, MethodHead, MethodGet, MethodPatch}
	want := []Method{MethodHead, MethodGet, MethodPatch, MethodDefine}

	got := BitmaskToMethods(MethodsToBitmask(in...))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got := BitmaskToMethods(0); len(got) != 0 {
		t.Fatalf("empty mask produced %v", got)
	}
}

func TestBitmaskRoundTripAllSubsets(t *testing.T) {
	for raw := 0; raw < 1<<MethodCount; raw++ {
		mask := Mask(raw)
		methods := BitmaskToMethods(mask)

		for i := 1; i < len(methods); i++ {
			if methods[i-1] >= methods[i] {
				t.Fatalf("mask %#x: methods not strictly ascending: %v", raw, methods)
			}
		}
		for m := Method(0); m < MethodCount; m++ {
			listed := slices.Contains(methods, m)
			if listed != mask.Has(m) {
				t.Fatalf("mask %#x: method %v listed=%v has=%v", raw, m, listed, mask.Has(m))
			}
		}
		if got := MethodsToBitmask(methods...); got != mask {
			t.Fatalf("mask %#x: round trip gave %#x", raw, got)
		}
	}
}

func TestBitmaskIgnoresHighBits(t *testing.T) {
	got := BitmaskToMethods(Mask(0xfe00 | 1))
	if !reflect.DeepEqual(got, []Method{MethodHead}) {
		t.Fatalf("got %v", got)
	}
}

func TestDerivedMasks(t *testing.T) {
	if AllMethodsMask != 0x01ff {
		t.Fatalf("AllMethodsMask = %#x", AllMethodsMask)
	}
	if ReadOnlyMethodsMask != 0x00c3 {
		t.Fatalf("ReadOnlyMethodsMask = %#x", ReadOnlyMethodsMask)
	}
	if WriteMethodsMask != 0x013c {
		t.Fatalf("WriteMethodsMask = %#x", WriteMethodsMask)
	}
	if ReadOnlyMethodsMask|WriteMethodsMask != AllMethodsMask || ReadOnlyMethodsMask&WriteMethodsMask != 0 {
		t.Fatal("read and write masks must partition the method set")
	}
}

func TestMaskSetClearHas(t *testing.T) {
	var m Mask
	m.Set(MethodDelete)
	if !m.Has(MethodDelete) || m.Raw() != 1<<5 {
		t.Fatalf("unexpected mask %#x", m.Raw())
	}
	m.Clear(MethodDelete)
	if m.Has(MethodDelete) || m.Raw() != 0 {
		t.Fatalf("unexpected mask %#x", m.Raw())
	}
	if m.Has(Method(200)) {
		t.Fatal("out-of-range method must not be reported")
	}
}

func TestMaskString(t *testing.T) {
	if got := MethodsToBitmask(MethodGet, MethodPut).String(); got != "GET,PUT" {
		t.Fatalf("got %q", got)
	}
}

func TestMaskCodec(t *testing.T) {
	data := EncodeMask(MethodsToBitmask(MethodGet, MethodDefine))
	if len(data) != MaskSize || data[0] != 0x01 || data[1] != 0x02 {
		t.Fatalf("unexpected encoding %x", data)
	}

	got, err := DecodeMask(data)
	if err != nil {
		t.Fatalf("DecodeMask: %v", err)
	}
	if got != MethodsToBitmask(MethodGet, MethodDefine) {
		t.Fatalf("got %v", got)
	}

	got, err = DecodeMask([]byte{0xff, 0xff})
	if err != nil || got != AllMethodsMask {
		t.Fatalf("high bits must be dropped: %#x %v", got, err)
	}

	if _, err := DecodeMask([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidMaskSize) {
		t.Fatalf("expected ErrInvalidMaskSize, got %v", err)
	}
}
