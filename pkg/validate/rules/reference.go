package rules

import (
	"sort"

	"github.com/gltfkit/gltfkit-go/pkg/validate"
)

// RegisterReferenceRules registers the index reference rules.
func RegisterReferenceRules(registry *validate.RuleRegistry) {
	registry.Register(NewREF001())
	registry.Register(NewREF002())
	registry.Register(NewREF003())
	registry.Register(NewREF004())
	registry.Register(NewREF005())
	registry.Register(NewREF006())
}

// REF001 checks the default scene and scene root nodes.
type REF001 struct {
	*validate.BaseRule
}

func NewREF001() *REF001 {
	return &REF001{
		BaseRule: validate.NewBaseRule("REF-001", "Scene references", "reference", validate.SeverityError),
	}
}

func (r *REF001) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	if doc.Scene != nil && !inRange(*doc.Scene, len(doc.Scenes)) {
		out = append(out, r.At(at("scene"), "default scene %d of %d", *doc.Scene, len(doc.Scenes)))
	}
	for i, s := range doc.Scenes {
		for j, n := range s.Nodes {
			if !inRange(n, len(doc.Nodes)) {
				out = append(out, r.At(at("scenes", i, "nodes", j), "scene %d references node %d of %d", i, n, len(doc.Nodes)))
			}
		}
	}
	return out
}

// REF002 checks node children, meshes and skins.
type REF002 struct {
	*validate.BaseRule
}

func NewREF002() *REF002 {
	return &REF002{
		BaseRule: validate.NewBaseRule("REF-002", "Node references", "reference", validate.SeverityError),
	}
}

func (r *REF002) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, n := range doc.Nodes {
		for j, c := range n.Children {
			if !inRange(c, len(doc.Nodes)) {
				out = append(out, r.At(at("nodes", i, "children", j), "node %d references child %d of %d", i, c, len(doc.Nodes)))
			}
		}
		if n.Mesh != nil && !inRange(*n.Mesh, len(doc.Meshes)) {
			out = append(out, r.At(at("nodes", i, "mesh"), "node %d references mesh %d of %d", i, *n.Mesh, len(doc.Meshes)))
		}
		if n.Skin != nil && !inRange(*n.Skin, len(doc.Skins)) {
			out = append(out, r.At(at("nodes", i, "skin"), "node %d references skin %d of %d", i, *n.Skin, len(doc.Skins)))
		}
	}
	return out
}

// REF003 checks every accessor reference: primitive attributes, indices
// and morph targets, inverse bind matrices and animation samplers.
type REF003 struct {
	*validate.BaseRule
}

func NewREF003() *REF003 {
	return &REF003{
		BaseRule: validate.NewBaseRule("REF-003", "Accessor references", "reference", validate.SeverityError),
	}
}

func (r *REF003) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	n := len(doc.Accessors)
	var out []validate.Violation
	check := func(idx int, ptr string) {
		if !inRange(idx, n) {
			out = append(out, r.At(ptr, "accessor %d of %d", idx, n))
		}
	}

	for i, m := range doc.Meshes {
		for j, p := range m.Primitives {
			for _, name := range sortedKeys(p.Attributes) {
				check(p.Attributes[name], at("meshes", i, "primitives", j, "attributes", name))
			}
			if p.Indices != nil {
				check(*p.Indices, at("meshes", i, "primitives", j, "indices"))
			}
			for k, target := range p.Targets {
				for _, name := range sortedKeys(target) {
					check(target[name], at("meshes", i, "primitives", j, "targets", k, name))
				}
			}
		}
	}
	for i, s := range doc.Skins {
		if s.InverseBindMatrices != nil {
			check(*s.InverseBindMatrices, at("skins", i, "inverseBindMatrices"))
		}
	}
	for i, a := range doc.Animations {
		for j, s := range a.Samplers {
			check(s.Input, at("animations", i, "samplers", j, "input"))
			check(s.Output, at("animations", i, "samplers", j, "output"))
		}
	}
	return out
}

// REF004 checks buffer view references of accessors, sparse substitutions,
// images and shaders.
type REF004 struct {
	*validate.BaseRule
}

func NewREF004() *REF004 {
	return &REF004{
		BaseRule: validate.NewBaseRule("REF-004", "Buffer view references", "reference", validate.SeverityError),
	}
}

func (r *REF004) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	n := len(doc.BufferViews)
	var out []validate.Violation
	check := func(idx int, ptr string) {
		if !inRange(idx, n) {
			out = append(out, r.At(ptr, "bufferView %d of %d", idx, n))
		}
	}

	for i, a := range doc.Accessors {
		if a.BufferView != nil {
			check(*a.BufferView, at("accessors", i, "bufferView"))
		}
		if a.Sparse != nil {
			check(a.Sparse.Indices.BufferView, at("accessors", i, "sparse", "indices", "bufferView"))
			check(a.Sparse.Values.BufferView, at("accessors", i, "sparse", "values", "bufferView"))
		}
	}
	for i, img := range doc.Images {
		if img.BufferView != nil {
			check(*img.BufferView, at("images", i, "bufferView"))
		}
	}
	for i, sh := range doc.Shaders {
		if sh.BufferView != nil {
			check(*sh.BufferView, at("shaders", i, "bufferView"))
		}
	}
	return out
}

// REF005 checks that buffer views name an existing buffer.
type REF005 struct {
	*validate.BaseRule
}

func NewREF005() *REF005 {
	return &REF005{
		BaseRule: validate.NewBaseRule("REF-005", "Buffer references", "reference", validate.SeverityError),
	}
}

func (r *REF005) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, v := range doc.BufferViews {
		if !inRange(v.Buffer, len(doc.Buffers)) {
			out = append(out, r.At(at("bufferViews", i, "buffer"), "bufferView %d references buffer %d of %d", i, v.Buffer, len(doc.Buffers)))
		}
	}
	return out
}

// REF006 checks skin joints and skeleton roots.
type REF006 struct {
	*validate.BaseRule
}

func NewREF006() *REF006 {
	return &REF006{
		BaseRule: validate.NewBaseRule("REF-006", "Skin joint references", "reference", validate.SeverityError),
	}
}

func (r *REF006) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, s := range doc.Skins {
		if s.Skeleton != nil && !inRange(*s.Skeleton, len(doc.Nodes)) {
			out = append(out, r.At(at("skins", i, "skeleton"), "skin %d skeleton node %d of %d", i, *s.Skeleton, len(doc.Nodes)))
		}
		for j, joint := range s.Joints {
			if !inRange(joint, len(doc.Nodes)) {
				out = append(out, r.At(at("skins", i, "joints", j), "skin %d joint node %d of %d", i, joint, len(doc.Nodes)))
			}
		}
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
