package resolve

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
)

type recordLogger struct{ events []log.Event }

func (r *recordLogger) Log(e log.Event) { r.events = append(r.events, e) }

func writeDoc(t *testing.T, dir, text string) (*gltf.Document, string) {
	t.Helper()
	path := filepath.Join(dir, "scene.gltf")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	doc, err := gltf.Parse([]byte(text))
	require.NoError(t, err)
	return doc, path
}

func TestBufferFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "mesh bin.bin"), []byte{1, 2, 3, 4, 5, 6}, 0o644))

	doc, path := writeDoc(t, dir, `{"asset":{"version":"2.0"},"buffers":[{"uri":"data/mesh%20bin.bin","byteLength":4}]}`)

	rec := &recordLogger{}
	s := NewSession(doc, Config{DocumentPath: path, Trace: rec})
	data, err := s.Buffer(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	// Second read is served from the cache.
	_, err = s.Buffer(0)
	require.NoError(t, err)
	require.Len(t, rec.events, 2)
	assert.Equal(t, log.ResourceFile, rec.events[0].Resource.Kind)
	assert.Equal(t, s.ID, rec.events[0].SessionID)
	assert.True(t, rec.events[1].Resource.Cached)
}

func TestBufferFromDataURI(t *testing.T) {
	uri := EncodeDataURI("application/octet-stream", []byte{9, 8, 7})
	doc, err := gltf.Parse([]byte(`{"asset":{"version":"2.0"},"buffers":[{"uri":"` + uri + `","byteLength":3}]}`))
	require.NoError(t, err)

	data, err := NewSession(doc, Config{}).Buffer(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, data)
}

func TestBufferFromPayload(t *testing.T) {
	doc, err := gltf.Parse([]byte(`{"asset":{"version":"2.0"},"buffers":[{"byteLength":3},{"byteLength":1}]}`))
	require.NoError(t, err)

	s := NewSession(doc, Config{Payload: []byte{1, 2, 3, 0}})
	data, err := s.Buffer(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, err = s.Buffer(1)
	assert.True(t, errors.Is(err, ErrNoSource))

	_, err = NewSession(doc, Config{Payload: []byte{1}}).Buffer(0)
	assert.True(t, errors.Is(err, ErrShortPayload))
}

func TestMissingFileIsNotFound(t *testing.T) {
	dir := t.TempDir()
	doc, path := writeDoc(t, dir, `{"asset":{"version":"2.0"},"buffers":[{"uri":"gone.bin","byteLength":4}]}`)

	s := NewSession(doc, Config{DocumentPath: path})
	data, err := s.Buffer(0)
	assert.Nil(t, data)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, filepath.Join(dir, "gone.bin"), nf.Path)
	assert.Equal(t, "gone.bin", nf.URI)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	// Not cached: creating the file makes the next call succeed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gone.bin"), []byte{1, 2, 3, 4}, 0o644))
	data, err = s.Buffer(0)
	require.NoError(t, err)
	assert.Len(t, data, 4)
}

func TestSessionsStartCold(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(bin, []byte{1, 1}, 0o644))
	doc, path := writeDoc(t, dir, `{"asset":{"version":"2.0"},"buffers":[{"uri":"a.bin","byteLength":2}]}`)

	first, err := NewSession(doc, Config{DocumentPath: path}).Buffer(0)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(bin, []byte{2, 2}, 0o644))
	second, err := NewSession(doc, Config{DocumentPath: path}).Buffer(0)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 1}, first)
	assert.Equal(t, []byte{2, 2}, second)
}

func TestResolveEmbeddedImageAndShader(t *testing.T) {
	doc, err := gltf.Parse([]byte(`{
	  "asset": {"version": "2.0"},
	  "buffers": [{"byteLength": 8}],
	  "bufferViews": [{"buffer": 0, "byteOffset": 4, "byteLength": 4}],
	  "images": [{"bufferView": 0, "mimeType": "image/png"}, {}],
	  "shaders": [{"uri": "data:text/plain,void%20main()"}]
	}`))
	require.NoError(t, err)

	s := NewSession(doc, Config{Payload: []byte{0, 0, 0, 0, 'a', 'b', 'c', 'd'}})
	img, err := s.Image(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), img)

	_, err = s.Image(1)
	assert.True(t, errors.Is(err, ErrNoSource))

	_, err = s.Image(5)
	assert.True(t, errors.Is(err, gltf.ErrIndexOutOfRange))

	sh, err := s.Shader(0)
	require.NoError(t, err)
	assert.Equal(t, "void main()", string(sh))
}
