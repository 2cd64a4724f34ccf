package glb

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gltfkit/gltfkit-go/pkg/log"
)

type recordLogger struct{ events []log.Event }

func (r *recordLogger) Log(e log.Event) { r.events = append(r.events, e) }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := &Container{
		JSON:  []byte(`{"asset":{"version":"2.0"}}`),
		BIN:   []byte{1, 2, 3, 4, 5},
		Extra: []Chunk{{Type: 0x58545845, Data: []byte{7, 7}}},
	}
	out, err := Encode(in, nil)
	require.NoError(t, err)
	assert.Equal(t, in.Size(), len(out))
	assert.Equal(t, 0, len(out)%Alignment)

	got, err := Decode(out, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"asset":{"version":"2.0"}} `, string(got.JSON)) // 27 bytes + 1 space pad
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0, 0, 0}, got.BIN)
	require.Len(t, got.Extra, 1)
	assert.Equal(t, []byte{7, 7, 0, 0}, got.Extra[0].Data)
	assert.Equal(t, "EXTX", got.Extra[0].Tag())
}

func TestEncodeWithoutBIN(t *testing.T) {
	out, err := Encode(&Container{JSON: []byte("{}")}, nil)
	require.NoError(t, err)
	assert.Len(t, out, HeaderSize+ChunkHeaderSize+4)

	got, err := Decode(out, nil)
	require.NoError(t, err)
	assert.Nil(t, got.BIN)
	assert.Equal(t, "{}  ", string(got.JSON))
}

func TestEncodeTracesChunks(t *testing.T) {
	rec := &recordLogger{}
	_, err := Encode(&Container{JSON: []byte("{}"), BIN: []byte{1}}, log.NewSession(rec, "x.glb"))
	require.NoError(t, err)

	require.Len(t, rec.events, 2)
	assert.Equal(t, "JSON", rec.events[0].Chunk.Tag)
	assert.Equal(t, HeaderSize, rec.events[0].Chunk.Offset)
	assert.Equal(t, "BIN", rec.events[1].Chunk.Tag)
	assert.Equal(t, HeaderSize+ChunkHeaderSize+4, rec.events[1].Chunk.Offset)
	assert.Equal(t, log.DirectionOut, rec.events[1].Direction)
}

func header(magic, version, length uint32) []byte {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:], magic)
	binary.LittleEndian.PutUint32(b[4:], version)
	binary.LittleEndian.PutUint32(b[8:], length)
	return b
}

func chunkBytes(typ uint32, data []byte) []byte {
	b := make([]byte, ChunkHeaderSize, ChunkHeaderSize+len(data))
	binary.LittleEndian.PutUint32(b[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(b[4:], typ)
	return append(b, data...)
}

func TestDecodeBadMagic(t *testing.T) {
	data := make([]byte, 16)
	copy(data, "abcd")

	_, err := Decode(data, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadMagic))

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, uint32(0x64636261), ferr.Value)
	assert.Contains(t, err.Error(), "0x64636261")
}

func TestDecodeMalformed(t *testing.T) {
	json := chunkBytes(ChunkJSON, []byte("{}  "))
	bin := chunkBytes(ChunkBIN, []byte{1, 2, 3, 4})

	join := func(parts ...[]byte) []byte {
		var out []byte
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	withHeader := func(body []byte) []byte {
		return join(header(Magic, Version, uint32(HeaderSize+len(body))), body)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", header(Magic, Version, 12)[:8], ErrChunkLayout},
		{"version 1", header(Magic, 1, 12), ErrBadVersion},
		{"length beyond data", header(Magic, Version, 100), ErrChunkLayout},
		{"no chunks", header(Magic, Version, 12), ErrChunkLayout},
		{"bin first", withHeader(join(bin, json)), ErrChunkLayout},
		{"two bin", withHeader(join(json, bin, bin)), ErrChunkLayout},
		{"two json", withHeader(join(json, json)), ErrChunkLayout},
		{"chunk overruns total", withHeader(join(json, bin[:8])), ErrChunkLayout},
		{"trailing bytes", withHeader(join(json, []byte{0, 0, 0})), ErrChunkLayout},
		{"unaligned json chunk", withHeader(join(chunkBytes(ChunkJSON, []byte(`{"a":1234567}`)), []byte{0, 0, 0}, bin)), ErrChunkLayout},
		{"unaligned total", join(header(Magic, Version, 49), chunkBytes(ChunkJSON, []byte(`{"a":1234567}`)), bin, []byte{0, 0, 0, 0}), ErrChunkLayout},
		{"unaligned bin chunk", withHeader(join(json, chunkBytes(ChunkBIN, []byte{1, 2, 3, 4, 5, 6}), []byte{0, 0})), ErrChunkLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, nil)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecodeNamesUnpaddedChunk(t *testing.T) {
	body := append(chunkBytes(ChunkJSON, []byte(`{"a":1234567}`)), 0, 0, 0)
	data := append(header(Magic, Version, uint32(HeaderSize+len(body))), body...)

	_, err := Decode(data, nil)
	var ferr *FormatError
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, "chunkLength", ferr.Field)
	assert.Equal(t, HeaderSize, ferr.Offset)
}

func TestDecodeIgnoresBytesPastDeclaredLength(t *testing.T) {
	body := chunkBytes(ChunkJSON, []byte("{}  "))
	data := append(header(Magic, Version, uint32(HeaderSize+len(body))), body...)
	data = append(data, 0xFF, 0xFF)

	got, err := Decode(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "{}  ", string(got.JSON))
}

func TestChunkTag(t *testing.T) {
	assert.Equal(t, "JSON", Chunk{Type: ChunkJSON}.Tag())
	assert.Equal(t, "BIN", Chunk{Type: ChunkBIN}.Tag())
	assert.Equal(t, "0x00000001", Chunk{Type: 1}.Tag())
	assert.False(t, Chunk{Type: 1}.Known())
}

func TestPad(t *testing.T) {
	for in, want := range map[int]int{0: 0, 1: 4, 4: 4, 5: 8, 27: 28} {
		assert.Equal(t, want, Pad(in), "Pad(%d)", in)
	}
}
