package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectMIME(t *testing.T) {
	mime, ok := DetectMIME(pngHeader)
	assert.True(t, ok)
	assert.Equal(t, "image/png", mime)

	_, ok = DetectMIME([]byte("plain words"))
	assert.False(t, ok)
}

func TestImageMIME(t *testing.T) {
	assert.Equal(t, "image/png", ImageMIME(pngHeader, "image/jpeg", "x.jpg"))
	assert.Equal(t, "image/jpeg", ImageMIME([]byte("??"), "image/jpeg", "x.png"))
	assert.Equal(t, "image/webp", ImageMIME([]byte("??"), "", "tex/a.WEBP"))
	assert.Equal(t, "application/octet-stream", ImageMIME(nil, "", "blob"))
}
