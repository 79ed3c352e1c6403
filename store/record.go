package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/property"
)

// Record is the stored state of one resource.
type Record struct {
	Path        string
	Header      header.Info
	HasHeader   bool
	Metadata    property.Metadata
	HasMetadata bool
	Revision    uuid.UUID
	UpdatedAt   time.Time
}

const (
	recordFormatVersionCurrent = 1

	flagHeader   = 1 << 0
	flagMetadata = 1 << 1

	// version, flags, revision, updated-at, path length
	recordFixedSize = 1 + 1 + 16 + 8 + 2
	maxPathLength   = 1<<16 - 1
)

// next returns a copy of r with a new revision stamped at now.
func (r Record) next(now time.Time) Record {
	r.Revision = uuid.New()
	r.UpdatedAt = now.UTC()
	return r
}

// EncodeRecord serializes r as: version byte, flags byte, 16-byte revision,
// big-endian unix-nano timestamp, length-prefixed path, 9-byte metadata and,
// when present, the CBOR header.
func EncodeRecord(r Record) ([]byte, error) {
	if len(r.Path) > maxPathLength {
		return nil, fmt.Errorf("%w: path too long", ErrInvalidPath)
	}

	var buf bytes.Buffer
	buf.WriteByte(recordFormatVersionCurrent)

	var flags byte
	if r.HasHeader {
		flags |= flagHeader
	}
	if r.HasMetadata {
		flags |= flagMetadata
	}
	buf.WriteByte(flags)
	buf.Write(r.Revision[:])

	if err := binary.Write(&buf, binary.BigEndian, r.UpdatedAt.UnixNano()); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(r.Path))); err != nil {
		return nil, err
	}
	buf.WriteString(r.Path)
	buf.Write(property.EncodeMetadata(r.Metadata))

	if r.HasHeader {
		blob, err := header.Marshal(r.Header)
		if err != nil {
			return nil, err
		}
		buf.Write(blob)
	}
	return buf.Bytes(), nil
}

// DecodeRecord parses a blob produced by EncodeRecord.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if len(data) < recordFixedSize {
		return r, fmt.Errorf("%w: short record", ErrCorruptRecord)
	}
	if data[0] != recordFormatVersionCurrent {
		return r, fmt.Errorf("%w: unsupported version %d", ErrCorruptRecord, data[0])
	}

	flags := data[1]
	r.HasHeader = flags&flagHeader != 0
	r.HasMetadata = flags&flagMetadata != 0
	copy(r.Revision[:], data[2:18])
	r.UpdatedAt = time.Unix(0, int64(binary.BigEndian.Uint64(data[18:26]))).UTC()

	pathLen := int(binary.BigEndian.Uint16(data[26:28]))
	rest := data[recordFixedSize:]
	if len(rest) < pathLen+property.MetadataSize {
		return Record{}, fmt.Errorf("%w: truncated record", ErrCorruptRecord)
	}
	r.Path = string(rest[:pathLen])
	rest = rest[pathLen:]

	m, err := property.DecodeMetadata(rest[:property.MetadataSize])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	r.Metadata = m
	rest = rest[property.MetadataSize:]

	if r.HasHeader {
		h, err := header.Unmarshal(rest)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		r.Header = h
	} else if len(rest) != 0 {
		return Record{}, fmt.Errorf("%w: trailing bytes", ErrCorruptRecord)
	}
	return r, nil
}

// EffectiveHeader returns the record's header, or fallback when none was defined.
func (r Record) EffectiveHeader(fallback header.Info) header.Info {
	if r.HasHeader {
		return r.Header
	}
	return fallback
}
