// Package contentcoding compresses and decompresses resource bodies according
// to the encoding code stored in their metadata.
//
// Supported codes: identity, gzip, zlib, zstd, brotli, lz4 (frame format)
// and snappy (block format). lzma has a table entry but no codec here;
// it and any unknown code return [ErrUnsupportedEncoding].
package contentcoding
