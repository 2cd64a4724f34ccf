package glb

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
)

// ErrNoSource indicates a document without source text to pack.
var ErrNoSource = errors.New("document has no source tree")

// PackOptions configures Pack.
type PackOptions struct {
	// EmbedImages moves image files and data URIs into the payload.
	EmbedImages bool

	// EmbedShaders moves shader files and data URIs into the payload.
	EmbedShaders bool

	// Payload backs a URI-less first buffer, for re-packing an unpacked
	// document.
	Payload []byte
}

// DefaultPackOptions embeds everything.
func DefaultPackOptions() PackOptions {
	return PackOptions{EmbedImages: true, EmbedShaders: true}
}

// Codec packs and unpacks containers with optional logging and tracing.
// The zero value is ready to use.
type Codec struct {
	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives codec trace events. May be nil.
	Trace log.Logger
}

// Pack builds a self-contained container from doc using the zero Codec.
func Pack(doc *gltf.Document, docPath string, opts PackOptions) ([]byte, error) {
	return (&Codec{}).Pack(doc, docPath, opts)
}

// Pack builds a self-contained container from doc. Every buffer (and,
// per opts, every image and shader) is resolved relative to docPath and
// appended to a single payload with 4-byte alignment. Buffer views are
// rewritten to address the payload, URIs are removed and the single
// remaining buffer gets the payload length. doc is not modified.
func (c *Codec) Pack(doc *gltf.Document, docPath string, opts PackOptions) ([]byte, error) {
	out, err := c.pack(doc, docPath, opts)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", docPath, err)
	}
	return out, nil
}

type payloadBuilder struct {
	data []byte
}

// add appends b at the next aligned offset and returns that offset.
func (p *payloadBuilder) add(b []byte) int {
	for len(p.data)%Alignment != 0 {
		p.data = append(p.data, 0)
	}
	off := len(p.data)
	p.data = append(p.data, b...)
	return off
}

func (c *Codec) pack(doc *gltf.Document, docPath string, opts PackOptions) ([]byte, error) {
	if doc.Source == nil {
		return nil, ErrNoSource
	}
	root, ok := cloneTree(doc.Source.Root).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is not an object", ErrNoSource)
	}

	session := resolve.NewSession(doc, resolve.Config{
		DocumentPath: docPath,
		Payload:      opts.Payload,
		Logger:       c.Logger,
		Trace:        c.Trace,
	})
	trace := session.Trace()

	var payload payloadBuilder
	bufferOffsets := make([]int, len(doc.Buffers))
	for i := range doc.Buffers {
		data, err := session.Buffer(i)
		if err != nil {
			return nil, err
		}
		bufferOffsets[i] = payload.add(data)
	}

	views := objects(root, "bufferViews")
	for i, v := range views {
		b, _ := intField(v, "buffer")
		if b < 0 || b >= len(bufferOffsets) {
			return nil, fmt.Errorf("bufferView %d: buffer %d of %d: %w", i, b, len(bufferOffsets), gltf.ErrIndexOutOfRange)
		}
		off, _ := intField(v, "byteOffset")
		v["buffer"] = 0
		v["byteOffset"] = bufferOffsets[b] + off
	}

	addView := func(data []byte) int {
		off := payload.add(data)
		views = append(views, map[string]any{
			"buffer":     0,
			"byteOffset": off,
			"byteLength": len(data),
		})
		return len(views) - 1
	}

	if opts.EmbedImages {
		for i, img := range objects(root, "images") {
			uri := stringField(img, "uri")
			if uri == "" {
				continue
			}
			data, err := session.Image(i)
			if err != nil {
				return nil, err
			}
			img["bufferView"] = addView(data)
			img["mimeType"] = resolve.ImageMIME(data, stringField(img, "mimeType"), uri)
			delete(img, "uri")
		}
	}
	if opts.EmbedShaders {
		for i, sh := range objects(root, "shaders") {
			if stringField(sh, "uri") == "" {
				continue
			}
			data, err := session.Shader(i)
			if err != nil {
				return nil, err
			}
			sh["bufferView"] = addView(data)
			delete(sh, "uri")
		}
	}

	if len(views) > 0 {
		list := make([]any, len(views))
		for i, v := range views {
			list[i] = v
		}
		root["bufferViews"] = list
	}

	var bin []byte
	if len(doc.Buffers) > 0 || len(payload.data) > 0 {
		buffer := map[string]any{"byteLength": len(payload.data)}
		if bufs := objects(root, "buffers"); len(bufs) > 0 {
			buffer = bufs[0]
			delete(buffer, "uri")
			buffer["byteLength"] = len(payload.data)
		}
		root["buffers"] = []any{buffer}
		bin = payload.data
		if bin == nil {
			bin = []byte{}
		}
	}

	text, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	out, err := Encode(&Container{JSON: text, BIN: bin}, trace)
	if err != nil {
		return nil, err
	}
	c.debugLog("packed container",
		"session", session.ID,
		"document", docPath,
		"json", len(text),
		"payload", len(bin),
		"size", len(out))
	return out, nil
}

// debugLog logs a debug message if logging is enabled.
func (c *Codec) debugLog(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, args...)
	}
}
