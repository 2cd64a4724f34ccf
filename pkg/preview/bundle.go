package preview

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
)

// FormatVersion is the bundle layout version written by this package.
const FormatVersion = 1

// Bundle errors.
var (
	ErrVersion  = errors.New("unsupported bundle version")
	ErrInvalid  = errors.New("malformed bundle")
	ErrNoSource = errors.New("document has no source tree")
)

// Resource is one resolved resource.
type Resource struct {
	Index int    `cbor:"1,keyasint"`
	MIME  string `cbor:"2,keyasint,omitempty"`
	Data  []byte `cbor:"3,keyasint"`
}

// Bundle is a document together with all bytes it references.
type Bundle struct {
	Version   uint8      `cbor:"1,keyasint"`
	SessionID string     `cbor:"2,keyasint,omitempty"`
	Document  []byte     `cbor:"3,keyasint"`
	Buffers   []Resource `cbor:"4,keyasint"`
	Images    []Resource `cbor:"5,keyasint,omitempty"`
	Shaders   []Resource `cbor:"6,keyasint,omitempty"`
}

// Build resolves every resource of doc through session. Images stored
// inside buffers are carried by their buffer and not repeated.
func Build(doc *gltf.Document, session *resolve.Session) (*Bundle, error) {
	if doc.Source == nil {
		return nil, ErrNoSource
	}
	text, err := json.Marshal(doc.Source.Root)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	b := &Bundle{
		Version:   FormatVersion,
		SessionID: session.ID,
		Document:  text,
		Buffers:   make([]Resource, 0, len(doc.Buffers)),
	}
	for i := range doc.Buffers {
		data, err := session.Buffer(i)
		if err != nil {
			return nil, err
		}
		b.Buffers = append(b.Buffers, Resource{Index: i, MIME: "application/octet-stream", Data: data})
	}
	for i, img := range doc.Images {
		if img.BufferView != nil {
			continue
		}
		data, err := session.Image(i)
		if err != nil {
			return nil, err
		}
		b.Images = append(b.Images, Resource{Index: i, MIME: resolve.ImageMIME(data, img.MimeType, img.URI), Data: data})
	}
	for i, sh := range doc.Shaders {
		if sh.BufferView != nil {
			continue
		}
		data, err := session.Shader(i)
		if err != nil {
			return nil, err
		}
		b.Shaders = append(b.Shaders, Resource{Index: i, MIME: "text/plain", Data: data})
	}
	return b, nil
}

// Validate checks the version and that buffers are listed in index order
// without gaps.
func (b *Bundle) Validate() error {
	if b.Version != FormatVersion {
		return fmt.Errorf("%w: %d", ErrVersion, b.Version)
	}
	if len(b.Document) == 0 {
		return fmt.Errorf("%w: empty document", ErrInvalid)
	}
	for i, r := range b.Buffers {
		if r.Index != i {
			return fmt.Errorf("%w: buffer entry %d has index %d", ErrInvalid, i, r.Index)
		}
	}
	if err := ascending("image", b.Images); err != nil {
		return err
	}
	return ascending("shader", b.Shaders)
}

func ascending(what string, rs []Resource) error {
	last := -1
	for _, r := range rs {
		if r.Index <= last {
			return fmt.Errorf("%w: %s index %d out of order", ErrInvalid, what, r.Index)
		}
		last = r.Index
	}
	return nil
}

// Open parses the bundled document.
func (b *Bundle) Open() (*gltf.Document, error) {
	return gltf.Parse(b.Document)
}

// Buffer returns the bytes of buffer i.
func (b *Bundle) Buffer(i int) ([]byte, error) {
	if i < 0 || i >= len(b.Buffers) {
		return nil, fmt.Errorf("buffer %d of %d: %w", i, len(b.Buffers), gltf.ErrIndexOutOfRange)
	}
	return b.Buffers[i].Data, nil
}

// Image returns the bundled resource for image i.
func (b *Bundle) Image(i int) (Resource, bool) {
	return find(b.Images, i)
}

// Shader returns the bundled resource for shader i.
func (b *Bundle) Shader(i int) (Resource, bool) {
	return find(b.Shaders, i)
}

func find(rs []Resource, i int) (Resource, bool) {
	for _, r := range rs {
		if r.Index == i {
			return r, true
		}
	}
	return Resource{}, false
}

// Size returns the number of payload bytes carried.
func (b *Bundle) Size() int {
	n := len(b.Document)
	for _, group := range [][]Resource{b.Buffers, b.Images, b.Shaders} {
		for _, r := range group {
			n += len(r.Data)
		}
	}
	return n
}

var _ accessor.BufferSource = (*Bundle)(nil)
