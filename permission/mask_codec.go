package permission

import (
	"encoding/binary"
	"fmt"
)

// MaskSize is the encoded length of a Mask.
const MaskSize = 2

// EncodeMask writes the mask as a big-endian uint16.
func EncodeMask(mask Mask) []byte {
	b := make([]byte, MaskSize)
	binary.BigEndian.PutUint16(b, uint16(mask))
	return b
}

// DecodeMask reads a big-endian uint16 mask. Bits above DEFINE are dropped.
func DecodeMask(data []byte) (Mask, error) {
	if len(data) != MaskSize {
		return 0, fmt.Errorf("%w: got %d bytes", ErrInvalidMaskSize, len(data))
	}
	return Mask(binary.BigEndian.Uint16(data)) & maskValidBits, nil
}
