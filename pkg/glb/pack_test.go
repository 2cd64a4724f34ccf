package glb

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0}

const eightByteDoc = `{
  "asset": {"version": "2.0"},
  "buffers": [{"uri": "data:application/octet-stream;base64,AQIDBAUGBwg=", "byteLength": 8}],
  "bufferViews": [{"buffer": 0, "byteLength": 8}],
  "accessors": [{"bufferView": 0, "componentType": 5121, "count": 8, "type": "SCALAR"}]
}`

func TestPackEightByteBuffer(t *testing.T) {
	doc, err := gltf.Parse([]byte(eightByteDoc))
	require.NoError(t, err)

	out, err := Pack(doc, "", DefaultPackOptions())
	require.NoError(t, err)

	assert.Equal(t, Magic, binary.LittleEndian.Uint32(out[0:4]))
	assert.Equal(t, Version, binary.LittleEndian.Uint32(out[4:8]))
	assert.Equal(t, uint32(len(out)), binary.LittleEndian.Uint32(out[8:12]))

	jsonLen := int(binary.LittleEndian.Uint32(out[12:16]))
	assert.Equal(t, ChunkJSON, binary.LittleEndian.Uint32(out[16:20]))
	assert.Equal(t, 0, jsonLen%Alignment)
	assert.Equal(t, 12+8+jsonLen+8+8, len(out))

	binHeader := 20 + jsonLen
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(out[binHeader:]))
	assert.Equal(t, ChunkBIN, binary.LittleEndian.Uint32(out[binHeader+4:]))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, out[binHeader+8:])

	u, err := Unpack(out)
	require.NoError(t, err)
	require.Len(t, u.Document.Buffers, 1)
	assert.Empty(t, u.Document.Buffers[0].URI)
	assert.Equal(t, 8, u.Document.Buffers[0].ByteLength)
}

func writeFixture(t *testing.T) (string, *gltf.Document) {
	t.Helper()
	dir := t.TempDir()

	positions := make([]byte, 0, 36)
	for _, v := range []uint32{0, 0, 0, 0x3F800000, 0, 0, 0, 0x3F800000, 0} {
		positions = binary.LittleEndian.AppendUint32(positions, v)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "positions.bin"), positions, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tex.png"), pngHeader, 0o644))

	text := `{
	  "asset": {"version": "2.0"},
	  "buffers": [
	    {"uri": "positions.bin", "byteLength": 36},
	    {"uri": "data:application/octet-stream;base64,AAABAAIA", "byteLength": 6}
	  ],
	  "bufferViews": [
	    {"buffer": 0, "byteLength": 36},
	    {"buffer": 1, "byteLength": 6}
	  ],
	  "accessors": [
	    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
	    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
	  ],
	  "images": [{"uri": "tex.png"}],
	  "shaders": [{"uri": "data:text/plain,void%20main(){}"}]
	}`
	path := filepath.Join(dir, "scene.gltf")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	doc, err := gltf.Parse([]byte(text))
	require.NoError(t, err)
	return path, doc
}

func readAll(t *testing.T, doc *gltf.Document, src accessor.BufferSource) [][]accessor.Element {
	t.Helper()
	r := accessor.NewReader(doc, src, nil)
	var out [][]accessor.Element
	for i := range doc.Accessors {
		elems, err := r.Read(i)
		require.NoError(t, err)
		out = append(out, elems)
	}
	return out
}

func TestPackUnpackRoundTrip(t *testing.T) {
	path, doc := writeFixture(t)
	want := readAll(t, doc, resolve.NewSession(doc, resolve.Config{DocumentPath: path}))

	out, err := Pack(doc, path, DefaultPackOptions())
	require.NoError(t, err)

	u, err := Unpack(out)
	require.NoError(t, err)
	got := readAll(t, u.Document, u.Session(resolve.Config{}))
	assert.Equal(t, want, got)

	// Alignment: every buffer view starts on a 4-byte boundary of the payload.
	for i, v := range u.Document.BufferViews {
		assert.Equal(t, 0, v.Buffer, "view %d", i)
		assert.Equal(t, 0, v.ByteOffset%Alignment, "view %d offset %d", i, v.ByteOffset)
	}

	// Image and shader moved into the payload.
	require.Len(t, u.Document.Images, 1)
	img := u.Document.Images[0]
	assert.Empty(t, img.URI)
	require.NotNil(t, img.BufferView)
	assert.Equal(t, "image/png", img.MimeType)

	s := u.Session(resolve.Config{})
	data, err := s.Image(0)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	sh, err := s.Shader(0)
	require.NoError(t, err)
	assert.Equal(t, "void main(){}", string(sh))

	// Source document left alone.
	assert.Equal(t, "tex.png", doc.Images[0].URI)
	assert.Len(t, doc.Buffers, 2)
}

func TestPackWithoutEmbedding(t *testing.T) {
	path, doc := writeFixture(t)
	out, err := Pack(doc, path, PackOptions{})
	require.NoError(t, err)

	u, err := Unpack(out)
	require.NoError(t, err)
	assert.Equal(t, "tex.png", u.Document.Images[0].URI)
	assert.Len(t, u.Document.BufferViews, 2)
}

func TestRepackUnpacked(t *testing.T) {
	path, doc := writeFixture(t)
	first, err := Pack(doc, path, DefaultPackOptions())
	require.NoError(t, err)

	u, err := Unpack(first)
	require.NoError(t, err)
	second, err := Pack(u.Document, "", PackOptions{Payload: u.Payload})
	require.NoError(t, err)

	u2, err := Unpack(second)
	require.NoError(t, err)
	assert.Equal(t, readAll(t, u.Document, u.Session(resolve.Config{})),
		readAll(t, u2.Document, u2.Session(resolve.Config{})))
}

func TestPackMissingResource(t *testing.T) {
	path, doc := writeFixture(t)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(path), "positions.bin")))

	_, err := Pack(doc, path, DefaultPackOptions())
	var nf *resolve.NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, filepath.Join(filepath.Dir(path), "positions.bin"), nf.Path)
}

func TestUnbundle(t *testing.T) {
	path, doc := writeFixture(t)
	out, err := Pack(doc, path, DefaultPackOptions())
	require.NoError(t, err)
	u, err := Unpack(out)
	require.NoError(t, err)

	dir := t.TempDir()
	target := filepath.Join(dir, "copy.gltf")
	require.NoError(t, Unbundle(u, target))

	text, err := os.ReadFile(target)
	require.NoError(t, err)
	doc2, err := gltf.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "copy.bin", doc2.Buffers[0].URI)

	bin, err := os.ReadFile(filepath.Join(dir, "copy.bin"))
	require.NoError(t, err)
	assert.Len(t, bin, doc2.Buffers[0].ByteLength)

	assert.Equal(t, readAll(t, u.Document, u.Session(resolve.Config{})),
		readAll(t, doc2, resolve.NewSession(doc2, resolve.Config{DocumentPath: target})))
}

func TestUnpackKeepsUnknownChunks(t *testing.T) {
	out, err := Encode(&Container{
		JSON:  []byte(`{"asset":{"version":"2.0"}}`),
		Extra: []Chunk{{Type: 0x12345678, Data: []byte{1, 2, 3, 4}}},
	}, nil)
	require.NoError(t, err)

	u, err := Unpack(out)
	require.NoError(t, err)
	require.Len(t, u.Extra, 1)
	assert.Equal(t, uint32(0x12345678), u.Extra[0].Type)
	assert.Nil(t, u.Payload)
}

func TestUnpackBadJSON(t *testing.T) {
	out, err := Encode(&Container{JSON: []byte(`{"asset":`)}, nil)
	require.NoError(t, err)
	_, err = Unpack(out)
	assert.Error(t, err)
}
