package header

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/MrEthical07/wttp/permission"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("header: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Unknown keys are a newer writer's fields; a header must still load.
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic("header: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes h deterministically.
func Marshal(h Info) ([]byte, error) {
	return encMode.Marshal(h)
}

// Unmarshal decodes a header produced by Marshal. Method bits above DEFINE
// are dropped.
func Unmarshal(data []byte) (Info, error) {
	var h Info
	if len(data) == 0 {
		return h, fmt.Errorf("%w: empty input", ErrInvalidHeaderBlob)
	}
	if err := decMode.Unmarshal(data, &h); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidHeaderBlob, err)
	}
	h.CORS.Methods = h.CORS.Methods & permission.AllMethodsMask
	return h, nil
}
