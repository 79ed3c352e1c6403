package contentcoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/MrEthical07/wttp/property"
)

// ErrUnsupportedEncoding is returned for encoding codes without a codec.
var ErrUnsupportedEncoding = errors.New("contentcoding: unsupported encoding")

type codec struct {
	encode func([]byte) ([]byte, error)
	decode func([]byte) ([]byte, error)
}

var codecs map[property.Code]codec

// zstd.Encoder and zstd.Decoder are safe for concurrent use through
// EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("contentcoding: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("contentcoding: zstd decoder initialization failed: " + err.Error())
	}

	codecs = map[property.Code]codec{
		property.EncodeEncoding("identity"): {encode: identity, decode: identity},
		property.EncodeEncoding("gzip"):     {encode: encodeGzip, decode: decodeGzip},
		property.EncodeEncoding("zlib"):     {encode: encodeZlib, decode: decodeZlib},
		property.EncodeEncoding("zstd"):     {encode: encodeZstd, decode: decodeZstd},
		property.EncodeEncoding("brotli"):   {encode: encodeBrotli, decode: decodeBrotli},
		property.EncodeEncoding("lz4"):      {encode: encodeLZ4, decode: decodeLZ4},
		property.EncodeEncoding("snappy"):   {encode: encodeSnappy, decode: decodeSnappy},
	}
}

// Supported reports whether code has a codec. The reserved zero code is
// treated as identity.
func Supported(code property.Code) bool {
	_, ok := lookup(code)
	return ok
}

// Encode compresses data with the algorithm named by code.
func Encode(code property.Code, data []byte) ([]byte, error) {
	c, ok := lookup(code)
	if !ok {
		return nil, unsupported(code)
	}
	return c.encode(data)
}

// Decode reverses Encode.
func Decode(code property.Code, data []byte) ([]byte, error) {
	c, ok := lookup(code)
	if !ok {
		return nil, unsupported(code)
	}
	return c.decode(data)
}

func lookup(code property.Code) (codec, bool) {
	if code == property.CodeNone {
		code = property.DefaultEncodingCode
	}
	c, ok := codecs[code]
	return c, ok
}

func unsupported(code property.Code) error {
	return fmt.Errorf("%w: %s (%s)", ErrUnsupportedEncoding, code, property.DecodeEncoding(code))
}

func identity(data []byte) ([]byte, error) {
	return data, nil
}

// streamEncode runs data through a compressing writer.
func streamEncode(name string, data []byte, newWriter func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	var buf bytes.Buffer
	w, err := newWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%s compress: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%s compress: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s compress: %w", name, err)
	}
	return buf.Bytes(), nil
}

func readAll(name string, r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", name, err)
	}
	return out, nil
}

func encodeGzip(data []byte) ([]byte, error) {
	return streamEncode("gzip", data, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
}

func decodeGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer r.Close()
	return readAll("gzip", r)
}

func encodeZlib(data []byte) ([]byte, error) {
	return streamEncode("zlib", data, func(w io.Writer) (io.WriteCloser, error) {
		return zlib.NewWriter(w), nil
	})
}

func decodeZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	defer r.Close()
	return readAll("zlib", r)
}

func encodeZstd(data []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(data, nil), nil
}

func decodeZstd(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

func encodeBrotli(data []byte) ([]byte, error) {
	return streamEncode("brotli", data, func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	})
}

func decodeBrotli(data []byte) ([]byte, error) {
	return readAll("brotli", brotli.NewReader(bytes.NewReader(data)))
}

func encodeLZ4(data []byte) ([]byte, error) {
	return streamEncode("lz4", data, func(w io.Writer) (io.WriteCloser, error) {
		return lz4.NewWriter(w), nil
	})
}

func decodeLZ4(data []byte) ([]byte, error) {
	return readAll("lz4", lz4.NewReader(bytes.NewReader(data)))
}

func encodeSnappy(data []byte) ([]byte, error) {
	return s2.EncodeSnappy(nil, data), nil
}

func decodeSnappy(data []byte) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompress: %w", err)
	}
	return out, nil
}
