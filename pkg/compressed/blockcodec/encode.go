package blockcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Format constants.
const (
	// Magic starts every block.
	Magic = "GKBC"

	// FormatVersion is the block layout version.
	FormatVersion = 1

	headerSize          = 12
	attributeHeaderSize = 12

	// MaxAttributeSize is the largest decoded attribute stream in bytes.
	MaxAttributeSize = 256 << 20

	// lz4MaxRatio is the largest expansion of an LZ4 block.
	lz4MaxRatio = 255
)

// Attribute is one attribute stream to encode.
type Attribute struct {
	// ID is the attribute's unique id within the block.
	ID int

	// Components per point.
	Components int

	// Values holds points×components values.
	Values []float32

	// Compression requested for the stream. Streams that do not shrink
	// are stored uncompressed.
	Compression Compression
}

// Encode builds a block holding points points and the given attributes.
func Encode(points int, attrs []Attribute) ([]byte, error) {
	if points < 0 || uint64(points) > math.MaxUint32 {
		return nil, fmt.Errorf("point count %d out of range", points)
	}
	if len(attrs) > math.MaxUint16 {
		return nil, fmt.Errorf("%d attributes exceed the block limit", len(attrs))
	}

	out := make([]byte, headerSize)
	copy(out, Magic)
	out[4] = FormatVersion
	binary.LittleEndian.PutUint16(out[6:], uint16(len(attrs)))
	binary.LittleEndian.PutUint32(out[8:], uint32(points))

	seen := make(map[int]bool, len(attrs))
	for _, a := range attrs {
		if a.ID < 0 || a.ID > math.MaxUint16 || seen[a.ID] {
			return nil, fmt.Errorf("attribute id %d invalid or repeated", a.ID)
		}
		seen[a.ID] = true
		if a.Components <= 0 || a.Components > math.MaxUint8 {
			return nil, fmt.Errorf("attribute %d: %d components", a.ID, a.Components)
		}
		if len(a.Values) != points*a.Components {
			return nil, fmt.Errorf("attribute %d: %d values, want %d", a.ID, len(a.Values), points*a.Components)
		}

		if 4*len(a.Values) > MaxAttributeSize {
			return nil, fmt.Errorf("attribute %d: %d values exceed the %d byte stream limit", a.ID, len(a.Values), MaxAttributeSize)
		}

		raw := make([]byte, 4*len(a.Values))
		for i, v := range a.Values {
			binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
		}
		comp := a.Compression
		stored, err := compress(raw, comp)
		if errors.Is(err, errIncompressible) {
			comp, stored = CompressionNone, raw
		} else if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", a.ID, err)
		}

		var hdr [attributeHeaderSize]byte
		binary.LittleEndian.PutUint16(hdr[0:], uint16(a.ID))
		hdr[2] = uint8(a.Components)
		hdr[3] = uint8(comp)
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(raw)))
		binary.LittleEndian.PutUint32(hdr[8:], uint32(len(stored)))
		out = append(out, hdr[:]...)
		out = append(out, stored...)
	}
	return out, nil
}
