package store

import (
	"encoding/binary"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/klauspost/compress/zstd"

	"voxmesh/internal/world"
)

const (
	ErrTypeCorrupt  = "store_corrupt"
	ErrTypeNotFound = "store_not_found"
	ErrTypeDB       = "store_db"
)

// codecVersion is the first byte of every uncompressed column payload.
const codecVersion = 1

// headerSize is version (1) + section mask (2).
const headerSize = 3

var (
	encoder = mustEncoder(zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder = mustDecoder()
)

// mustEncoder returns a zstd encoder for EncodeAll. It panics on invalid
// options.
func mustEncoder(opts ...zstd.EOption) *zstd.Encoder {
	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		panic(errors.New("could not create zstd encoder").Wrap(err))
	}
	return enc
}

// mustDecoder returns a zstd decoder for DecodeAll. It panics on invalid
// options.
func mustDecoder(opts ...zstd.DOption) *zstd.Decoder {
	dec, err := zstd.NewReader(nil, opts...)
	if err != nil {
		panic(errors.New("could not create zstd decoder").Wrap(err))
	}
	return dec
}

// EncodeColumn serializes the present sections of col: a version byte, a
// little-endian bitmask of present sections, then SectionVolume
// little-endian uint16 ids per present section. The result is zstd
// compressed.
func EncodeColumn(col *world.BlockColumn) []byte {
	var mask uint16
	n := 0
	for i := 0; i < world.NumSections; i++ {
		if col.HasSection(i) {
			mask |= 1 << i
			n++
		}
	}

	raw := make([]byte, headerSize, headerSize+n*world.SectionVolume*2)
	raw[0] = codecVersion
	binary.LittleEndian.PutUint16(raw[1:], mask)
	for i := 0; i < world.NumSections; i++ {
		for _, id := range col.SectionIDs(i) {
			raw = binary.LittleEndian.AppendUint16(raw, uint16(id))
		}
	}
	return encoder.EncodeAll(raw, nil)
}

// DecodeColumn parses a payload produced by EncodeColumn into a column
// resolving shapes through shapes.
func DecodeColumn(data []byte, shapes world.ShapeSource) (*world.BlockColumn, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.New("could not decompress column").
			WithType(ErrTypeCorrupt).
			Wrap(err)
	}
	if len(raw) < headerSize {
		return nil, errors.New("column payload too short").
			WithType(ErrTypeCorrupt).
			WithTag("size", len(raw))
	}
	if raw[0] != codecVersion {
		return nil, errors.New("unsupported column version").
			WithType(ErrTypeCorrupt).
			WithTag("version", raw[0])
	}

	mask := binary.LittleEndian.Uint16(raw[1:])
	body := raw[headerSize:]
	sectionBytes := world.SectionVolume * 2

	col := world.NewBlockColumn(shapes)
	for i := 0; i < world.NumSections; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		if len(body) < sectionBytes {
			return nil, errors.New("column payload truncated").
				WithType(ErrTypeCorrupt).
				WithTag("section", i)
		}
		ids := make([]world.BlockID, world.SectionVolume)
		for j := range ids {
			ids[j] = world.BlockID(binary.LittleEndian.Uint16(body[j*2:]))
		}
		col.SetSection(i, ids)
		body = body[sectionBytes:]
	}
	if len(body) != 0 {
		return nil, errors.New("column payload has trailing bytes").
			WithType(ErrTypeCorrupt).
			WithTag("trailing", len(body))
	}
	return col, nil
}
