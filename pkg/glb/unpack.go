package glb

import (
	"fmt"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
	"github.com/gltfkit/gltfkit-go/pkg/sourcemap"
)

// Unpacked is a decoded container.
type Unpacked struct {
	// Document is the parsed JSON chunk, with its source index.
	Document *gltf.Document

	// Payload is the BIN chunk, backing the first buffer. Nil when the
	// container has no BIN chunk.
	Payload []byte

	// Extra holds chunks of unknown type.
	Extra []Chunk
}

// Session starts a resolve session whose URI-less first buffer is the
// container payload.
func (u *Unpacked) Session(cfg resolve.Config) *resolve.Session {
	cfg.Payload = u.Payload
	return resolve.NewSession(u.Document, cfg)
}

// Unpack decodes a container using the zero Codec.
func Unpack(data []byte) (*Unpacked, error) {
	return (&Codec{}).Unpack(data)
}

// Unpack decodes a container, parses its JSON chunk and indexes it.
func (c *Codec) Unpack(data []byte) (*Unpacked, error) {
	trace := log.NewSession(c.Trace, "")

	container, err := Decode(data, trace)
	if err != nil {
		return nil, err
	}

	src, err := sourcemap.Parse(container.JSON)
	if err != nil {
		trace.Error(log.DirectionIn, log.LayerIndex, err, "json chunk")
		return nil, fmt.Errorf("glb: json chunk: %w", err)
	}
	trace.Index(log.IndexEvent{Entries: src.Map.Len(), Size: len(container.JSON)})

	doc, err := gltf.FromSource(src)
	if err != nil {
		return nil, fmt.Errorf("glb: json chunk: %w", err)
	}

	c.debugLog("unpacked container",
		"size", len(data),
		"json", len(container.JSON),
		"payload", len(container.BIN),
		"extra", len(container.Extra))
	return &Unpacked{Document: doc, Payload: container.BIN, Extra: container.Extra}, nil
}
