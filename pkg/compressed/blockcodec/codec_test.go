package blockcodec

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smoothValues(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(float64(i) / 50))
	}
	return out
}

func decodeAttr(t *testing.T, block []byte, id int) []float32 {
	t.Helper()
	dec, err := New().NewDecoder()
	require.NoError(t, err)
	defer dec.Release()

	geom, err := dec.Decode(block)
	require.NoError(t, err)
	defer geom.Release()

	arr, err := geom.Attribute(id)
	require.NoError(t, err)
	defer arr.Release()
	return append([]float32(nil), arr.Values()...)
}

func TestRoundTripAllCompressions(t *testing.T) {
	const points = 300
	values := smoothValues(points * 3)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd, CompressionBG4LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			block, err := Encode(points, []Attribute{{ID: 4, Components: 3, Values: values, Compression: c}})
			require.NoError(t, err)
			assert.Equal(t, values, decodeAttr(t, block, 4))
		})
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	block, err := Encode(1, []Attribute{{ID: 0, Components: 2, Values: []float32{1, 2}, Compression: CompressionZstd}})
	require.NoError(t, err)
	assert.Equal(t, uint8(CompressionNone), block[headerSize+3])
	assert.Equal(t, []float32{1, 2}, decodeAttr(t, block, 0))
}

func TestMultipleAttributes(t *testing.T) {
	block, err := Encode(2, []Attribute{
		{ID: 0, Components: 3, Values: []float32{0, 0, 0, 1, 1, 1}},
		{ID: 1, Components: 2, Values: []float32{0.5, 0.5, 1, 0}, Compression: CompressionLZ4},
	})
	require.NoError(t, err)

	dec, _ := New().NewDecoder()
	geom, err := dec.Decode(block)
	require.NoError(t, err)
	assert.Equal(t, 2, geom.NumPoints())
	assert.Equal(t, []float32{0.5, 0.5, 1, 0}, decodeAttr(t, block, 1))

	_, err = geom.Attribute(9)
	assert.True(t, errors.Is(err, ErrNoAttribute))
}

func TestEncodeRejectsBadInput(t *testing.T) {
	_, err := Encode(2, []Attribute{{ID: 0, Components: 3, Values: []float32{1}}})
	assert.Error(t, err)
	_, err = Encode(1, []Attribute{{ID: 0, Components: 1, Values: []float32{1}}, {ID: 0, Components: 1, Values: []float32{1}}})
	assert.Error(t, err)
	_, err = Encode(1, []Attribute{{ID: 0, Components: 0}})
	assert.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	good, err := Encode(1, []Attribute{{ID: 0, Components: 1, Values: []float32{1}}})
	require.NoError(t, err)

	badVersion := append([]byte(nil), good...)
	badVersion[4] = 9

	tests := map[string][]byte{
		"short":     good[:4],
		"magic":     append([]byte("XXXX"), good[4:]...),
		"version":   badVersion,
		"truncated": good[:len(good)-1],
		"trailing":  append(append([]byte(nil), good...), 0),
	}
	for name, block := range tests {
		t.Run(name, func(t *testing.T) {
			dec, _ := New().NewDecoder()
			_, err := dec.Decode(block)
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
		})
	}
}

// rawBlock builds a block with a single attribute header, bypassing the
// encoder's checks.
func rawBlock(points uint32, components uint8, comp Compression, size uint32, stored []byte) []byte {
	out := make([]byte, headerSize+attributeHeaderSize, headerSize+attributeHeaderSize+len(stored))
	copy(out, Magic)
	out[4] = FormatVersion
	binary.LittleEndian.PutUint16(out[6:], 1)
	binary.LittleEndian.PutUint32(out[8:], points)
	h := out[headerSize:]
	h[2] = components
	h[3] = uint8(comp)
	binary.LittleEndian.PutUint32(h[4:], size)
	binary.LittleEndian.PutUint32(h[8:], uint32(len(stored)))
	return append(out, stored...)
}

func TestDecodeRejectsOversizedStreams(t *testing.T) {
	tests := map[string][]byte{
		"above limit":         rawBlock(1<<26, 4, CompressionZstd, 1<<30, []byte{1, 2, 3, 4}),
		"lz4 ratio":           rawBlock(1024, 1, CompressionLZ4, 4096, []byte{1, 2, 3, 4}),
		"bg4 ratio":           rawBlock(1024, 1, CompressionBG4LZ4, 4096, []byte{1, 2, 3, 4}),
		"uncompressed length": rawBlock(1024, 1, CompressionNone, 4096, []byte{1, 2, 3, 4}),
		"unknown compression": rawBlock(1, 1, Compression(9), 4, []byte{1, 2, 3, 4}),
	}
	for name, block := range tests {
		t.Run(name, func(t *testing.T) {
			dec, _ := New().NewDecoder()
			defer dec.Release()
			_, err := dec.Decode(block)
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
		})
	}
}

func TestReleasedObjectsRefuseWork(t *testing.T) {
	block, err := Encode(1, []Attribute{{ID: 0, Components: 1, Values: []float32{1}}})
	require.NoError(t, err)

	dec, _ := New().NewDecoder()
	geom, err := dec.Decode(block)
	require.NoError(t, err)

	geom.Release()
	_, err = geom.Attribute(0)
	assert.True(t, errors.Is(err, ErrReleased))

	dec.Release()
	_, err = dec.Decode(block)
	assert.True(t, errors.Is(err, ErrReleased))
}

func TestLoad(t *testing.T) {
	svc, err := Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBG4TransposeRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	grouped := bg4Transpose(data)
	assert.Equal(t, []byte{1, 5, 2, 6, 3, 7, 4, 8, 9, 10}, grouped)
	assert.Equal(t, data, bg4Untranspose(grouped))
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd, CompressionBG4LZ4} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.Error(t, err)
}
