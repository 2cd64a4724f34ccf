package rules

import (
	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/validate"
)

// RegisterStructureRules registers the byte range and hierarchy rules.
func RegisterStructureRules(registry *validate.RuleRegistry) {
	registry.Register(NewSTR001())
	registry.Register(NewSTR002())
	registry.Register(NewSTR003())
	registry.Register(NewSTR004())
	registry.Register(NewSTR005())
}

// Byte stride limits of a buffer view.
const (
	minStride = 4
	maxStride = 252
)

// STR001 checks that buffer views lie within their buffer and have a
// usable stride.
type STR001 struct {
	*validate.BaseRule
}

func NewSTR001() *STR001 {
	return &STR001{
		BaseRule: validate.NewBaseRule("STR-001", "Buffer view range", "structure", validate.SeverityError),
	}
}

func (r *STR001) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, v := range doc.BufferViews {
		if v.ByteStride != 0 && (v.ByteStride < minStride || v.ByteStride > maxStride || v.ByteStride%4 != 0) {
			out = append(out, r.At(at("bufferViews", i, "byteStride"),
				"bufferView %d byteStride %d is not a multiple of 4 in [%d, %d]", i, v.ByteStride, minStride, maxStride))
		}
		if !inRange(v.Buffer, len(doc.Buffers)) {
			continue
		}
		if _, err := doc.BufferView(i); err != nil {
			out = append(out, r.At(at("bufferViews", i, "byteLength"), "%v", err))
		}
	}
	return out
}

// STR002 checks that accessors have known types and that their elements
// fit inside their buffer view.
type STR002 struct {
	*validate.BaseRule
}

func NewSTR002() *STR002 {
	return &STR002{
		BaseRule: validate.NewBaseRule("STR-002", "Accessor range", "structure", validate.SeverityError),
	}
}

func (r *STR002) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, a := range doc.Accessors {
		if a.Count < 1 {
			out = append(out, r.At(at("accessors", i, "count"), "accessor %d count %d is less than 1", i, a.Count))
			continue
		}
		size, err := gltf.ElementSize(a.Type, a.ComponentType)
		if err != nil {
			field := "type"
			if !a.ComponentType.Valid() {
				field = "componentType"
			}
			out = append(out, r.At(at("accessors", i, field), "accessor %d: %v", i, err))
			continue
		}
		if a.BufferView == nil || !inRange(*a.BufferView, len(doc.BufferViews)) {
			continue
		}
		view := doc.BufferViews[*a.BufferView]
		stride := size
		if view.ByteStride != 0 {
			stride = view.ByteStride
		}
		if stride < size {
			out = append(out, r.At(at("accessors", i), "accessor %d elements of %d bytes overlap at bufferView %d stride %d",
				i, size, *a.BufferView, stride))
			continue
		}
		if !accessor.Fits(a.ByteOffset, a.Count, stride, size, view.ByteLength) {
			out = append(out, r.At(at("accessors", i, "count"), "accessor %d needs %d bytes, bufferView %d has %d",
				i, accessor.End(a.ByteOffset, a.Count, stride, size), *a.BufferView, view.ByteLength))
		}
	}
	return out
}

// STR003 checks that nodes form a forest: no node has two parents and no
// node is its own ancestor.
type STR003 struct {
	*validate.BaseRule
}

func NewSTR003() *STR003 {
	return &STR003{
		BaseRule: validate.NewBaseRule("STR-003", "Node hierarchy", "structure", validate.SeverityError),
	}
}

func (r *STR003) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation

	parent := make([]int, len(doc.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i, n := range doc.Nodes {
		for j, c := range n.Children {
			if !inRange(c, len(doc.Nodes)) {
				continue
			}
			if parent[c] >= 0 {
				out = append(out, r.At(at("nodes", i, "children", j), "node %d is a child of both node %d and node %d", c, parent[c], i))
				continue
			}
			parent[c] = i
		}
	}
	if len(out) > 0 {
		return out
	}

	// With single parents, a cycle is a parent chain that never ends.
	state := make([]int, len(doc.Nodes)) // 0 unseen, 1 on the current chain, 2 done
	for start := range doc.Nodes {
		var chain []int
		n := start
		for n >= 0 && state[n] == 0 {
			state[n] = 1
			chain = append(chain, n)
			n = parent[n]
		}
		if n >= 0 && state[n] == 1 {
			out = append(out, r.At(at("nodes", n, "children"), "node %d is its own ancestor", n))
		}
		for _, c := range chain {
			state[c] = 2
		}
	}
	return out
}

// STR004 checks that all attributes of a primitive have the same count.
type STR004 struct {
	*validate.BaseRule
}

func NewSTR004() *STR004 {
	return &STR004{
		BaseRule: validate.NewBaseRule("STR-004", "Primitive attribute counts", "structure", validate.SeverityWarning),
	}
}

func (r *STR004) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, m := range doc.Meshes {
		for j, p := range m.Primitives {
			first, count := "", -1
			for _, name := range sortedKeys(p.Attributes) {
				idx := p.Attributes[name]
				if !inRange(idx, len(doc.Accessors)) {
					continue
				}
				c := doc.Accessors[idx].Count
				if count < 0 {
					first, count = name, c
					continue
				}
				if c != count {
					out = append(out, r.At(at("meshes", i, "primitives", j, "attributes", name),
						"%s has %d elements, %s has %d", name, c, first, count))
				}
			}
		}
	}
	return out
}

// STR005 checks that declared min and max have one value per component.
type STR005 struct {
	*validate.BaseRule
}

func NewSTR005() *STR005 {
	return &STR005{
		BaseRule: validate.NewBaseRule("STR-005", "Bounds shape", "structure", validate.SeverityError),
	}
}

func (r *STR005) Check(in *validate.Input) []validate.Violation {
	var out []validate.Violation
	for i, a := range in.Document.Accessors {
		n, err := a.Type.NumComponents()
		if err != nil {
			continue
		}
		if a.Min != nil && len(a.Min) != n {
			out = append(out, r.At(at("accessors", i, "min"), "accessor %d min has %d values, %s needs %d", i, len(a.Min), a.Type, n))
		}
		if a.Max != nil && len(a.Max) != n {
			out = append(out, r.At(at("accessors", i, "max"), "accessor %d max has %d values, %s needs %d", i, len(a.Max), a.Type, n))
		}
	}
	return out
}
