package log

import (
	"time"
)

// Event represents a codec trace event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the pack, unpack or decode run (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates data flow. IN is reading, OUT is writing.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Document is the path of the document being processed, if known.
	Document string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Chunk    *ChunkEvent     `cbor:"10,keyasint,omitempty"` // Container layer
	Resource *ResourceEvent  `cbor:"11,keyasint,omitempty"` // Resource layer
	Decode   *DecodeEvent    `cbor:"12,keyasint,omitempty"` // Accessor and service layers
	Index    *IndexEvent     `cbor:"13,keyasint,omitempty"` // Source index
	Error    *ErrorEventData `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates data being read or decoded.
	DirectionIn Direction = 0
	// DirectionOut indicates data being written or encoded.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which codec layer captured the event.
type Layer uint8

const (
	// LayerContainer is the binary container framing.
	LayerContainer Layer = 0
	// LayerResource is external and embedded resource resolution.
	LayerResource Layer = 1
	// LayerAccessor is typed element decoding.
	LayerAccessor Layer = 2
	// LayerIndex is source text indexing.
	LayerIndex Layer = 3
	// LayerService is the compressed geometry decode service.
	LayerService Layer = 4
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerContainer:
		return "CONTAINER"
	case LayerResource:
		return "RESOURCE"
	case LayerAccessor:
		return "ACCESSOR"
	case LayerIndex:
		return "INDEX"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryChunk indicates a container chunk.
	CategoryChunk Category = 0
	// CategoryResource indicates resolved resource bytes.
	CategoryResource Category = 1
	// CategoryDecode indicates decoded elements.
	CategoryDecode Category = 2
	// CategoryIndex indicates a built source index.
	CategoryIndex Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryChunk:
		return "CHUNK"
	case CategoryResource:
		return "RESOURCE"
	case CategoryDecode:
		return "DECODE"
	case CategoryIndex:
		return "INDEX"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ChunkEvent captures one chunk read from or written to a container.
type ChunkEvent struct {
	// Type is the chunk's four byte tag as a little-endian integer.
	Type uint32 `cbor:"1,keyasint"`

	// Tag is the printable form of Type ("JSON", "BIN").
	Tag string `cbor:"2,keyasint,omitempty"`

	// Offset of the chunk header within the container.
	Offset int `cbor:"3,keyasint"`

	// Length of the chunk data including padding.
	Length int `cbor:"4,keyasint"`

	// Known is false for chunks that are carried through uninterpreted.
	Known bool `cbor:"5,keyasint,omitempty"`
}

// ResourceKind distinguishes where resource bytes came from.
type ResourceKind uint8

const (
	// ResourceFile is a file relative to the document.
	ResourceFile ResourceKind = 0
	// ResourceDataURI is an inline base64 data URI.
	ResourceDataURI ResourceKind = 1
	// ResourceEmbedded is a slice of the container's binary payload.
	ResourceEmbedded ResourceKind = 2
)

// String returns the resource kind name.
func (k ResourceKind) String() string {
	switch k {
	case ResourceFile:
		return "FILE"
	case ResourceDataURI:
		return "DATA_URI"
	case ResourceEmbedded:
		return "EMBEDDED"
	default:
		return "UNKNOWN"
	}
}

// ResourceEvent captures one resolved resource.
type ResourceEvent struct {
	// Kind is the resource origin.
	Kind ResourceKind `cbor:"1,keyasint"`

	// URI as written in the document (data URIs are not recorded).
	URI string `cbor:"2,keyasint,omitempty"`

	// Path is the resolved file path for file resources.
	Path string `cbor:"3,keyasint,omitempty"`

	// Index is the buffer, image or shader index.
	Index int `cbor:"4,keyasint"`

	// Size is the number of bytes produced.
	Size int `cbor:"5,keyasint"`

	// Cached indicates the bytes came from the session cache.
	Cached bool `cbor:"6,keyasint,omitempty"`
}

// DecodeEvent captures one decoded accessor or compressed attribute.
type DecodeEvent struct {
	// Accessor is the accessor index, -1 for compressed attributes.
	Accessor int `cbor:"1,keyasint"`

	// Pointer is the document location that requested the decode.
	Pointer string `cbor:"2,keyasint,omitempty"`

	// Count is the number of elements produced.
	Count int `cbor:"3,keyasint"`

	// Components is the number of components per element.
	Components int `cbor:"4,keyasint"`

	// ComponentType is the numeric component code, 0 if not applicable.
	ComponentType uint32 `cbor:"5,keyasint,omitempty"`

	// Sparse indicates sparse substitution was applied.
	Sparse bool `cbor:"6,keyasint,omitempty"`
}

// IndexEvent captures a source index build.
type IndexEvent struct {
	// Entries is the number of indexed values.
	Entries int `cbor:"1,keyasint"`

	// Size is the length of the indexed text in bytes.
	Size int `cbor:"2,keyasint"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
