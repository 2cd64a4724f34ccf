package rules

import (
	"strconv"
	"strings"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/validate"
)

// RegisterDataRules registers the rules that decode accessor data. They
// report nothing for inputs without a buffer source.
func RegisterDataRules(registry *validate.RuleRegistry) {
	registry.Register(NewDATA001())
	registry.Register(NewDATA002())
	registry.Register(NewDATA003())
}

// DATA001 checks that every accessor decodes.
type DATA001 struct {
	*validate.BaseRule
}

func NewDATA001() *DATA001 {
	return &DATA001{
		BaseRule: validate.NewBaseRule("DATA-001", "Accessor decodes", "data", validate.SeverityError),
	}
}

func (r *DATA001) Check(in *validate.Input) []validate.Violation {
	if in.Source == nil {
		return nil
	}
	var out []validate.Violation
	for i := range in.Document.Accessors {
		if _, err := in.Decode(i); err != nil {
			out = append(out, r.At(at("accessors", i), "%v", err))
		}
	}
	return out
}

// DATA002 checks decoded values against the declared min and max.
type DATA002 struct {
	*validate.BaseRule
}

func NewDATA002() *DATA002 {
	return &DATA002{
		BaseRule: validate.NewBaseRule("DATA-002", "Declared bounds", "data", validate.SeverityError),
	}
}

func (r *DATA002) Check(in *validate.Input) []validate.Violation {
	if in.Source == nil {
		return nil
	}
	var out []validate.Violation
	for i, a := range in.Document.Accessors {
		if a.Min == nil && a.Max == nil {
			continue
		}
		elems, err := in.Decode(i)
		if err != nil {
			continue
		}
		if err := accessor.CheckBounds(a, elems); err != nil {
			v := r.At(at("accessors", i), "accessor %d: %v", i, err)
			lo, hi := accessor.Bounds(elems)
			v.Suggestion = "set min to " + jsonArray(lo) + " and max to " + jsonArray(hi)
			out = append(out, v)
		}
	}
	return out
}

// DATA003 checks that primitive indices are unsigned scalars addressing
// existing vertices.
type DATA003 struct {
	*validate.BaseRule
}

func NewDATA003() *DATA003 {
	return &DATA003{
		BaseRule: validate.NewBaseRule("DATA-003", "Index range", "data", validate.SeverityError),
	}
}

func (r *DATA003) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, m := range doc.Meshes {
		for j, p := range m.Primitives {
			if p.Indices == nil || !inRange(*p.Indices, len(doc.Accessors)) {
				continue
			}
			ptr := at("meshes", i, "primitives", j, "indices")
			idx := doc.Accessors[*p.Indices]
			if idx.Type != gltf.TypeScalar || idx.ComponentType.Float() || idx.ComponentType.Signed() {
				out = append(out, r.At(ptr, "indices accessor %d is %s/%s, want an unsigned SCALAR", *p.Indices, idx.Type, idx.ComponentType))
				continue
			}
			if in.Source == nil {
				continue
			}
			vertices := vertexCount(doc, p)
			if vertices < 0 {
				continue
			}
			elems, err := in.Decode(*p.Indices)
			if err != nil {
				continue
			}
			for k, e := range elems {
				if int(e[0]) >= vertices {
					out = append(out, r.At(ptr, "index %d at element %d exceeds %d vertices", int(e[0]), k, vertices))
					break
				}
			}
		}
	}
	return out
}

// vertexCount is the smallest attribute count of p, or -1 when no
// attribute resolves.
func vertexCount(doc *gltf.Document, p gltf.Primitive) int {
	n := -1
	for _, idx := range p.Attributes {
		if !inRange(idx, len(doc.Accessors)) {
			continue
		}
		if c := doc.Accessors[idx].Count; n < 0 || c < n {
			n = c
		}
	}
	return n
}

func jsonArray(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
