package preview

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gltfkit/gltfkit-go/internal/testdoc"
	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
)

func buildTriangle(t *testing.T) *Bundle {
	t.Helper()
	path := testdoc.WriteTriangle(t, t.TempDir())
	text, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := gltf.Parse(text)
	require.NoError(t, err)

	b, err := Build(doc, resolve.NewSession(doc, resolve.Config{DocumentPath: path}))
	require.NoError(t, err)
	return b
}

func TestBuild(t *testing.T) {
	b := buildTriangle(t)

	assert.Equal(t, uint8(FormatVersion), b.Version)
	assert.NotEmpty(t, b.SessionID)
	require.Len(t, b.Buffers, 2)
	assert.Equal(t, testdoc.Float32Bytes(testdoc.Positions...), b.Buffers[0].Data)
	assert.Equal(t, []byte{0, 0, 1, 0, 2, 0}, b.Buffers[1].Data)

	img, ok := b.Image(0)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, testdoc.PNG, img.Data)

	_, ok = b.Shader(0)
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	b := buildTriangle(t)

	data, err := Encode(b)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	again, err := Encode(got)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")
}

func TestStreamRoundTrip(t *testing.T) {
	b := buildTriangle(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b))
	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, b.Size(), got.Size())
}

func TestBundleDecodesAccessors(t *testing.T) {
	b := buildTriangle(t)
	data, err := Encode(b)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	doc, err := got.Open()
	require.NoError(t, err)
	r := accessor.NewReader(doc, got, nil)

	positions, err := r.Read(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}, accessor.Flatten(positions))

	indices, err := r.Read(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, accessor.Flatten(indices))
}

func TestBuildMissingResource(t *testing.T) {
	dir := t.TempDir()
	path := testdoc.WriteTriangle(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "tex.png")))

	text, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := gltf.Parse(text)
	require.NoError(t, err)

	_, err = Build(doc, resolve.NewSession(doc, resolve.Config{DocumentPath: path}))
	var nf *resolve.NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestValidate(t *testing.T) {
	valid := func() *Bundle {
		return &Bundle{
			Version:  FormatVersion,
			Document: []byte(`{"asset":{"version":"2.0"}}`),
			Buffers:  []Resource{{Index: 0, Data: []byte{1}}, {Index: 1, Data: []byte{2}}},
			Images:   []Resource{{Index: 0}, {Index: 3}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Bundle)
		want   error
	}{
		{"valid", func(*Bundle) {}, nil},
		{"version", func(b *Bundle) { b.Version = 9 }, ErrVersion},
		{"no document", func(b *Bundle) { b.Document = nil }, ErrInvalid},
		{"buffer gap", func(b *Bundle) { b.Buffers[1].Index = 2 }, ErrInvalid},
		{"images out of order", func(b *Bundle) { b.Images[1].Index = 0 }, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			err := b.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode([]byte{0xff, 0x00})
	assert.Error(t, err)

	data, err := encMode.Marshal(&Bundle{Version: 2, Document: []byte("{}")})
	require.NoError(t, err)
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrVersion)
}

func TestBufferOutOfRange(t *testing.T) {
	b := &Bundle{Version: FormatVersion, Document: []byte("{}")}
	_, err := b.Buffer(0)
	assert.ErrorIs(t, err, gltf.ErrIndexOutOfRange)
}
