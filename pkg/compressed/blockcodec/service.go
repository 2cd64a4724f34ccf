package blockcodec

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gltfkit/gltfkit-go/pkg/compressed"
)

// Errors.
var (
	// ErrFormat indicates a malformed block.
	ErrFormat = errors.New("malformed geometry block")

	// ErrReleased indicates use of an object after Release.
	ErrReleased = errors.New("object already released")

	// ErrNoAttribute indicates an attribute id missing from the block.
	ErrNoAttribute = errors.New("attribute not in block")
)

// Service decodes blocks in process.
type Service struct{}

// New returns a Service.
func New() *Service {
	return &Service{}
}

// Load is a compressed.Loader for the in-process codec.
func Load(ctx context.Context) (compressed.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return New(), nil
}

// NewDecoder returns a decoder.
func (s *Service) NewDecoder() (compressed.Decoder, error) {
	return &decoder{}, nil
}

type decoder struct {
	released bool
}

func (d *decoder) Release() { d.released = true }

type stream struct {
	components  int
	compression Compression
	size        int
	stored      []byte
}

// Decode parses the block header and attribute table. Streams are
// decompressed lazily by Attribute.
func (d *decoder) Decode(block []byte) (compressed.Geometry, error) {
	if d.released {
		return nil, ErrReleased
	}
	if len(block) < headerSize || string(block[:4]) != Magic {
		return nil, fmt.Errorf("%w: bad header", ErrFormat)
	}
	if block[4] != FormatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrFormat, block[4])
	}
	count := int(binary.LittleEndian.Uint16(block[6:]))
	points := int(binary.LittleEndian.Uint32(block[8:]))

	g := &geometry{points: points, streams: make(map[int]stream, count)}
	off := headerSize
	for i := range count {
		if len(block)-off < attributeHeaderSize {
			return nil, fmt.Errorf("%w: attribute %d header truncated", ErrFormat, i)
		}
		h := block[off : off+attributeHeaderSize]
		id := int(binary.LittleEndian.Uint16(h[0:]))
		s := stream{
			components:  int(h[2]),
			compression: Compression(h[3]),
			size:        int(binary.LittleEndian.Uint32(h[4:])),
		}
		storedLen := int(binary.LittleEndian.Uint32(h[8:]))
		off += attributeHeaderSize
		if storedLen > len(block)-off {
			return nil, fmt.Errorf("%w: attribute %d data truncated", ErrFormat, id)
		}
		if s.components == 0 || s.size != 4*points*s.components {
			return nil, fmt.Errorf("%w: attribute %d size %d for %d points of %d components",
				ErrFormat, id, s.size, points, s.components)
		}
		if err := checkExpansion(s, storedLen); err != nil {
			return nil, fmt.Errorf("%w: attribute %d: %v", ErrFormat, id, err)
		}
		s.stored = block[off : off+storedLen]
		off += storedLen
		g.streams[id] = s
	}
	if off != len(block) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrFormat, len(block)-off)
	}
	return g, nil
}

// checkExpansion bounds the decoded size of a stream before anything is
// allocated for it.
func checkExpansion(s stream, storedLen int) error {
	if s.size > MaxAttributeSize {
		return fmt.Errorf("decoded size %d exceeds limit %d", s.size, MaxAttributeSize)
	}
	switch s.compression {
	case CompressionNone:
		if storedLen != s.size {
			return fmt.Errorf("uncompressed stream of %d bytes, want %d", storedLen, s.size)
		}
	case CompressionLZ4, CompressionBG4LZ4:
		if s.size/lz4MaxRatio > storedLen {
			return fmt.Errorf("%d lz4 bytes cannot expand to %d", storedLen, s.size)
		}
	case CompressionZstd:
	default:
		return fmt.Errorf("unsupported compression: %s", s.compression)
	}
	return nil
}

type geometry struct {
	points   int
	streams  map[int]stream
	released bool
}

func (g *geometry) NumPoints() int { return g.points }

func (g *geometry) Release() { g.released = true }

func (g *geometry) Attribute(id int) (compressed.FloatArray, error) {
	if g.released {
		return nil, ErrReleased
	}
	s, ok := g.streams[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNoAttribute, id)
	}
	raw, err := decompress(s.stored, s.compression, s.size)
	if err != nil {
		return nil, fmt.Errorf("attribute %d: %w", id, err)
	}
	values := make([]float32, len(raw)/4)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return &floatArray{values: values}, nil
}

type floatArray struct {
	values []float32
}

func (a *floatArray) Values() []float32 { return a.values }

func (a *floatArray) Release() { a.values = nil }

// Compile-time interface satisfaction checks.
var (
	_ compressed.Service    = (*Service)(nil)
	_ compressed.Decoder    = (*decoder)(nil)
	_ compressed.Geometry   = (*geometry)(nil)
	_ compressed.FloatArray = (*floatArray)(nil)
)
