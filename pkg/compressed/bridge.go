package compressed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
	"github.com/gltfkit/gltfkit-go/pkg/pointer"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
)

// ExtensionName is the extension holding compressed geometry.
const ExtensionName = "KHR_draco_mesh_compression"

// Extension is the body of the compressed geometry extension.
type Extension struct {
	BufferView int            `json:"bufferView"`
	Attributes map[string]int `json:"attributes"`
}

// Attribute is a decoded compressed attribute.
type Attribute struct {
	// Name is the attribute semantic, e.g. POSITION.
	Name string

	// Accessor is the index of the accessor describing the attribute.
	Accessor int

	// Type is the accessor's structural type.
	Type gltf.AccessorType

	// Pointer is the extension block the attribute was found in.
	Pointer string

	// Elements holds one group of values per point.
	Elements []accessor.Element
}

// Format renders the attribute with f.
func (a *Attribute) Format(f *accessor.Formatter) string {
	return fmt.Sprintf("%s (accessor %d, %d x %s)\n%s",
		a.Name, a.Accessor, len(a.Elements), a.Type, f.FormatElements(a.Elements, a.Type))
}

// target is the primitive and attribute a pointer resolves to.
type target struct {
	mesh, prim int
	attr       string
	block      string
}

// locate finds the compressed block that owns ptr. ptr must be indexed
// and lie within a mesh primitive. The attribute is the last segment of
// ptr when ptr sits under an attributes object; otherwise name is used.
func locate(doc *gltf.Document, ptr, name string) (target, error) {
	if doc.Source == nil {
		return target{}, fmt.Errorf("%w: document has no source index", ErrPointer)
	}
	if _, ok := doc.Source.Map.RangeFor(ptr); !ok {
		return target{}, fmt.Errorf("%w: %q is not indexed", ErrPointer, ptr)
	}
	segs, err := pointer.Parse(ptr)
	if err != nil {
		return target{}, fmt.Errorf("%w: %v", ErrPointer, err)
	}
	if len(segs) < 4 || segs[0] != "meshes" || segs[2] != "primitives" {
		return target{}, fmt.Errorf("%w: %q", ErrPointer, ptr)
	}
	mesh, err1 := pointer.Index(segs[1])
	prim, err2 := pointer.Index(segs[3])
	if err1 != nil || err2 != nil {
		return target{}, fmt.Errorf("%w: %q", ErrPointer, ptr)
	}

	t := target{mesh: mesh, prim: prim, attr: name}
	for i := 4; i+1 < len(segs); i++ {
		if segs[i] == "attributes" {
			t.attr = segs[i+1]
		}
	}

	primPtr := pointer.Join(segs[:4]...)
	t.block = pointer.Join(append(segs[:4:4], "extensions", ExtensionName)...)
	if _, ok := doc.Source.Map.RangeFor(t.block); !ok {
		return target{}, fmt.Errorf("%w: %s", ErrNotCompressed, primPtr)
	}
	if t.attr == "" {
		return target{}, fmt.Errorf("%w: no attribute named at %q", ErrNoAttribute, ptr)
	}
	return t, nil
}

// DecodeAttribute decodes one attribute of a compressed primitive.
//
// ptr is any indexed pointer inside the primitive. When it addresses an
// entry of an attributes object (the primitive's or the extension's) that
// entry names the attribute. Other pointers decode POSITION.
//
// The block bytes are resolved through session, handed to the service
// together with the attribute's unique id, and the flat output is grouped
// by the attribute accessor's component count.
func DecodeAttribute(ctx context.Context, h *Handle, doc *gltf.Document, ptr string, session *resolve.Session) (*Attribute, error) {
	attr, err := decodeAttribute(ctx, h, doc, ptr, session)
	if err != nil {
		session.Trace().Error(log.DirectionIn, log.LayerService, err, ptr)
		return nil, err
	}
	session.Trace().Decode(log.LayerService, log.DecodeEvent{
		Accessor:   attr.Accessor,
		Pointer:    ptr,
		Count:      len(attr.Elements),
		Components: len(firstOrEmpty(attr.Elements)),
	})
	return attr, nil
}

func decodeAttribute(ctx context.Context, h *Handle, doc *gltf.Document, ptr string, session *resolve.Session) (*Attribute, error) {
	t, err := locate(doc, ptr, "POSITION")
	if err != nil {
		return nil, err
	}

	raw, _ := doc.Source.Value(t.block)
	ext, err := readExtension(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.block, err)
	}
	id, ok := ext.Attributes[t.attr]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoAttribute, t.attr, t.block)
	}

	if t.mesh >= len(doc.Meshes) || t.prim >= len(doc.Meshes[t.mesh].Primitives) {
		return nil, fmt.Errorf("%w: %q", ErrPointer, ptr)
	}
	accIndex, ok := doc.Meshes[t.mesh].Primitives[t.prim].Attributes[t.attr]
	if !ok {
		return nil, fmt.Errorf("%w: primitive has no accessor for %s", ErrNoAttribute, t.attr)
	}
	acc, err := doc.Accessor(accIndex)
	if err != nil {
		return nil, err
	}
	n, err := acc.Type.NumComponents()
	if err != nil {
		return nil, err
	}

	block, err := session.Resolve(accIndex, resolve.Ref{BufferView: &ext.BufferView})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.block, err)
	}

	svc, err := h.Service(ctx)
	if err != nil {
		return nil, err
	}
	values, err := run(svc, block, id)
	if err != nil {
		return nil, err
	}

	if len(values)%n != 0 {
		return nil, &ServiceError{Op: "attribute", Err: fmt.Errorf(
			"%d values do not split into %s elements", len(values), acc.Type)}
	}
	if acc.Count > 0 && len(values)/n != acc.Count {
		return nil, &ServiceError{Op: "attribute", Err: fmt.Errorf(
			"decoded %d elements, accessor %d declares %d", len(values)/n, accIndex, acc.Count)}
	}

	return &Attribute{
		Name:     t.attr,
		Accessor: accIndex,
		Type:     acc.Type,
		Pointer:  t.block,
		Elements: accessor.Group(values, n),
	}, nil
}

// run drives the service and copies its output. Every object the service
// hands out is released before run returns.
func run(svc Service, block []byte, id int) ([]float64, error) {
	dec, err := svc.NewDecoder()
	if err != nil {
		return nil, &ServiceError{Op: "new decoder", Err: err}
	}
	defer dec.Release()

	geom, err := dec.Decode(block)
	if err != nil {
		return nil, &ServiceError{Op: "decode", Err: err}
	}
	defer geom.Release()

	arr, err := geom.Attribute(id)
	if err != nil {
		return nil, &ServiceError{Op: "attribute " + strconv.Itoa(id), Err: err}
	}
	defer arr.Release()

	src := arr.Values()
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out, nil
}

func readExtension(v any) (Extension, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Extension{}, err
	}
	var ext Extension
	if err := json.Unmarshal(data, &ext); err != nil {
		return Extension{}, fmt.Errorf("reading %s: %w", ExtensionName, err)
	}
	return ext, nil
}

func firstOrEmpty(elems []accessor.Element) accessor.Element {
	if len(elems) == 0 {
		return nil
	}
	return elems[0]
}
