package gltf

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/gltfkit/gltfkit-go/pkg/sourcemap"
	"github.com/gltfkit/gltfkit-go/pkg/version"
)

// Document is the typed view of a glTF document.
//
// Only the parts this module reads are modelled. The untyped tree in Source
// remains the authority for everything else and is what gets re-encoded.
type Document struct {
	Asset              Asset        `json:"asset"`
	ExtensionsUsed     []string     `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string     `json:"extensionsRequired,omitempty"`
	Scene              *int         `json:"scene,omitempty"`
	Scenes             []Scene      `json:"scenes,omitempty"`
	Nodes              []Node       `json:"nodes,omitempty"`
	Meshes             []Mesh       `json:"meshes,omitempty"`
	Skins              []Skin       `json:"skins,omitempty"`
	Animations         []Animation  `json:"animations,omitempty"`
	Accessors          []Accessor   `json:"accessors,omitempty"`
	BufferViews        []BufferView `json:"bufferViews,omitempty"`
	Buffers            []Buffer     `json:"buffers,omitempty"`
	Images             []Image      `json:"images,omitempty"`
	Shaders            []Shader     `json:"shaders,omitempty"`

	// Source is the parsed text the typed view was read from.
	Source *sourcemap.Document `json:"-"`
}

// Asset is the document's asset block.
type Asset struct {
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
	Generator  string `json:"generator,omitempty"`
	Copyright  string `json:"copyright,omitempty"`
}

// Scene lists root nodes.
type Scene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// Node is one element of the flat node arena. Children are indices into
// the same arena.
type Node struct {
	Name     string `json:"name,omitempty"`
	Children []int  `json:"children,omitempty"`
	Mesh     *int   `json:"mesh,omitempty"`
	Skin     *int   `json:"skin,omitempty"`
	Camera   *int   `json:"camera,omitempty"`
}

// Mesh is a set of primitives.
type Mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive is drawable geometry.
type Primitive struct {
	Attributes map[string]int             `json:"attributes"`
	Indices    *int                       `json:"indices,omitempty"`
	Material   *int                       `json:"material,omitempty"`
	Mode       *int                       `json:"mode,omitempty"`
	Targets    []map[string]int           `json:"targets,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

// Skin binds joints to a mesh.
type Skin struct {
	Name                string `json:"name,omitempty"`
	InverseBindMatrices *int   `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int   `json:"skeleton,omitempty"`
	Joints              []int  `json:"joints"`
}

// Animation holds keyframe samplers.
type Animation struct {
	Name     string             `json:"name,omitempty"`
	Samplers []AnimationSampler `json:"samplers"`
}

// AnimationSampler pairs a keyframe time accessor with a value accessor.
type AnimationSampler struct {
	Input         int    `json:"input"`
	Output        int    `json:"output"`
	Interpolation string `json:"interpolation,omitempty"`
}

// Accessor describes how to read typed elements out of a buffer view.
type Accessor struct {
	Name          string        `json:"name,omitempty"`
	BufferView    *int          `json:"bufferView,omitempty"`
	ByteOffset    int           `json:"byteOffset,omitempty"`
	ComponentType ComponentType `json:"componentType"`
	Normalized    bool          `json:"normalized,omitempty"`
	Count         int           `json:"count"`
	Type          AccessorType  `json:"type"`
	Min           []float64     `json:"min,omitempty"`
	Max           []float64     `json:"max,omitempty"`
	Sparse        *Sparse       `json:"sparse,omitempty"`
}

// Sparse substitutes a subset of an accessor's elements.
type Sparse struct {
	Count   int           `json:"count"`
	Indices SparseIndices `json:"indices"`
	Values  SparseValues  `json:"values"`
}

// SparseIndices locates the substituted element indices.
type SparseIndices struct {
	BufferView    int           `json:"bufferView"`
	ByteOffset    int           `json:"byteOffset,omitempty"`
	ComponentType ComponentType `json:"componentType"`
}

// SparseValues locates the substituted element values.
type SparseValues struct {
	BufferView int `json:"bufferView"`
	ByteOffset int `json:"byteOffset,omitempty"`
}

// BufferView is a byte range of a buffer. ByteStride 0 means tightly packed.
type BufferView struct {
	Name       string `json:"name,omitempty"`
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset,omitempty"`
	ByteLength int    `json:"byteLength"`
	ByteStride int    `json:"byteStride,omitempty"`
	Target     int    `json:"target,omitempty"`
}

// End returns the offset just past the view in its buffer, saturating at
// math.MaxInt.
func (v BufferView) End() int {
	if v.ByteOffset > 0 && v.ByteLength > math.MaxInt-v.ByteOffset {
		return math.MaxInt
	}
	return v.ByteOffset + v.ByteLength
}

// Within reports whether the view lies inside the first n bytes of its
// buffer.
func (v BufferView) Within(n int) bool {
	return v.ByteOffset >= 0 && v.ByteLength >= 0 && v.ByteOffset <= n && v.ByteLength <= n-v.ByteOffset
}

// Buffer is a source of raw bytes. An empty URI means the bytes live in the
// binary container the document came from.
type Buffer struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
}

// Image is a texture source, either a URI or a buffer view.
type Image struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
}

// Shader is a text resource of technique-based materials.
type Shader struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	Type       int    `json:"type,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
}

// Parse parses document text and reads its typed view.
func Parse(text []byte) (*Document, error) {
	src, err := sourcemap.Parse(text)
	if err != nil {
		return nil, err
	}
	return FromSource(src)
}

// FromSource reads the typed view of already parsed text.
func FromSource(src *sourcemap.Document) (*Document, error) {
	data, err := json.Marshal(src.Root)
	if err != nil {
		return nil, fmt.Errorf("re-encoding document tree: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("reading document structure: %w", err)
	}
	doc.Source = src
	return &doc, nil
}

// Accessor returns accessor i.
func (d *Document) Accessor(i int) (Accessor, error) {
	if i < 0 || i >= len(d.Accessors) {
		return Accessor{}, indexError("accessor", i, len(d.Accessors))
	}
	return d.Accessors[i], nil
}

// BufferView returns buffer view i after checking that it lies within its
// buffer.
func (d *Document) BufferView(i int) (BufferView, error) {
	if i < 0 || i >= len(d.BufferViews) {
		return BufferView{}, indexError("bufferView", i, len(d.BufferViews))
	}
	v := d.BufferViews[i]
	if v.Buffer < 0 || v.Buffer >= len(d.Buffers) {
		return BufferView{}, fmt.Errorf("bufferView %d: %w", i, indexError("buffer", v.Buffer, len(d.Buffers)))
	}
	if !v.Within(d.Buffers[v.Buffer].ByteLength) {
		return BufferView{}, fmt.Errorf("bufferView %d: %w: bytes [%d, %d) exceed buffer %d length %d",
			i, ErrIndexOutOfRange, v.ByteOffset, v.End(), v.Buffer, d.Buffers[v.Buffer].ByteLength)
	}
	return v, nil
}

// Buffer returns buffer i.
func (d *Document) Buffer(i int) (Buffer, error) {
	if i < 0 || i >= len(d.Buffers) {
		return Buffer{}, indexError("buffer", i, len(d.Buffers))
	}
	return d.Buffers[i], nil
}

// CheckVersion reports whether the asset version can be read.
func (d *Document) CheckVersion() error {
	if err := version.Check(d.Asset.Version, d.Asset.MinVersion); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedVersion, err)
	}
	return nil
}
