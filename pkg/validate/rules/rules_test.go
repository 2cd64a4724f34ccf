package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gltfkit/gltfkit-go/internal/testdoc"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
	"github.com/gltfkit/gltfkit-go/pkg/validate"
)

func parse(t *testing.T, text string) *validate.Input {
	t.Helper()
	doc, err := gltf.Parse([]byte(text))
	require.NoError(t, err)
	return &validate.Input{Document: doc}
}

func pointers(vs []validate.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Pointer
	}
	return out
}

func TestRuleChecks(t *testing.T) {
	tests := []struct {
		name  string
		rule  validate.Rule
		input string
		want  []string
	}{
		{
			name:  "ASSET-001 old version",
			rule:  NewASSET001(),
			input: `{"asset": {"version": "1.0"}}`,
			want:  []string{"/asset/version"},
		},
		{
			name:  "ASSET-001 current version",
			rule:  NewASSET001(),
			input: `{"asset": {"version": "2.0"}}`,
		},
		{
			name:  "ASSET-002 no generator",
			rule:  NewASSET002(),
			input: `{"asset": {"version": "2.0"}}`,
			want:  []string{"/asset"},
		},
		{
			name:  "REF-001 scene and roots",
			rule:  NewREF001(),
			input: `{"scene": 2, "scenes": [{"nodes": [0, 1]}], "nodes": [{}]}`,
			want:  []string{"/scene", "/scenes/0/nodes/1"},
		},
		{
			name:  "REF-002 node references",
			rule:  NewREF002(),
			input: `{"nodes": [{"children": [5], "mesh": 0, "skin": -1}], "meshes": [{"primitives": []}]}`,
			want:  []string{"/nodes/0/children/0", "/nodes/0/skin"},
		},
		{
			name: "REF-003 accessor references",
			rule: NewREF003(),
			input: `{
				"meshes": [{"primitives": [{"attributes": {"POSITION": 0, "NORMAL": 3}, "indices": 4, "targets": [{"POSITION": 9}]}]}],
				"skins": [{"joints": [], "inverseBindMatrices": 7}],
				"animations": [{"samplers": [{"input": 0, "output": 2}]}],
				"accessors": [{"componentType": 5126, "count": 1, "type": "VEC3"}]
			}`,
			want: []string{
				"/meshes/0/primitives/0/attributes/NORMAL",
				"/meshes/0/primitives/0/indices",
				"/meshes/0/primitives/0/targets/0/POSITION",
				"/skins/0/inverseBindMatrices",
				"/animations/0/samplers/0/output",
			},
		},
		{
			name: "REF-004 buffer view references",
			rule: NewREF004(),
			input: `{
				"accessors": [{"bufferView": 1, "componentType": 5126, "count": 1, "type": "SCALAR",
					"sparse": {"count": 1, "indices": {"bufferView": 0, "componentType": 5121}, "values": {"bufferView": 3}}}],
				"images": [{"bufferView": 0}, {"bufferView": 2}],
				"shaders": [{"bufferView": 8}],
				"bufferViews": [{"buffer": 0, "byteLength": 4}]
			}`,
			want: []string{
				"/accessors/0/bufferView",
				"/accessors/0/sparse/values/bufferView",
				"/images/1/bufferView",
				"/shaders/0/bufferView",
			},
		},
		{
			name:  "REF-005 buffer references",
			rule:  NewREF005(),
			input: `{"buffers": [{"byteLength": 4}], "bufferViews": [{"buffer": 0, "byteLength": 4}, {"buffer": 1, "byteLength": 4}]}`,
			want:  []string{"/bufferViews/1/buffer"},
		},
		{
			name:  "REF-006 skin joints",
			rule:  NewREF006(),
			input: `{"nodes": [{}], "skins": [{"skeleton": 3, "joints": [0, 1]}]}`,
			want:  []string{"/skins/0/skeleton", "/skins/0/joints/1"},
		},
		{
			name: "STR-001 buffer view range and stride",
			rule: NewSTR001(),
			input: `{
				"buffers": [{"byteLength": 8}],
				"bufferViews": [
					{"buffer": 0, "byteLength": 8, "byteStride": 4},
					{"buffer": 0, "byteOffset": 4, "byteLength": 8},
					{"buffer": 0, "byteLength": 8, "byteStride": 6},
					{"buffer": 2, "byteLength": 8}
				]
			}`,
			want: []string{"/bufferViews/1/byteLength", "/bufferViews/2/byteStride"},
		},
		{
			name: "STR-002 accessor range",
			rule: NewSTR002(),
			input: `{
				"bufferViews": [{"buffer": 0, "byteLength": 24}, {"buffer": 0, "byteLength": 24, "byteStride": 8}],
				"accessors": [
					{"bufferView": 0, "componentType": 5126, "count": 2, "type": "VEC3"},
					{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
					{"bufferView": 1, "componentType": 5126, "count": 1, "type": "VEC3"},
					{"bufferView": 0, "componentType": 5127, "count": 1, "type": "VEC3"},
					{"bufferView": 0, "componentType": 5126, "count": 1, "type": "VEC5"},
					{"componentType": 5126, "count": 0, "type": "VEC3"},
					{"bufferView": 0, "byteOffset": 16, "componentType": 5126, "count": 1, "type": "VEC2"},
					{"bufferView": 0, "componentType": 5126, "count": 4611686018427387904, "type": "SCALAR"}
				]
			}`,
			want: []string{
				"/accessors/1/count",
				"/accessors/2",
				"/accessors/3/componentType",
				"/accessors/4/type",
				"/accessors/5/count",
				"/accessors/7/count",
			},
		},
		{
			name:  "STR-003 two parents",
			rule:  NewSTR003(),
			input: `{"nodes": [{"children": [2]}, {"children": [2]}, {}]}`,
			want:  []string{"/nodes/1/children/0"},
		},
		{
			name:  "STR-003 cycle",
			rule:  NewSTR003(),
			input: `{"nodes": [{"children": [1]}, {"children": [2]}, {"children": [0]}, {}]}`,
			want:  []string{"/nodes/0/children"},
		},
		{
			name:  "STR-003 forest",
			rule:  NewSTR003(),
			input: `{"nodes": [{"children": [1, 2]}, {"children": [3]}, {}, {}]}`,
		},
		{
			name: "STR-004 attribute counts",
			rule: NewSTR004(),
			input: `{
				"meshes": [{"primitives": [{"attributes": {"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 0}}]}],
				"accessors": [
					{"componentType": 5126, "count": 3, "type": "VEC3"},
					{"componentType": 5126, "count": 4, "type": "VEC3"}
				]
			}`,
			want: []string{
				"/meshes/0/primitives/0/attributes/POSITION",
				"/meshes/0/primitives/0/attributes/TEXCOORD_0",
			},
		},
		{
			name:  "STR-005 bounds shape",
			rule:  NewSTR005(),
			input: `{"accessors": [{"componentType": 5126, "count": 1, "type": "VEC2", "min": [0], "max": [1, 1]}]}`,
			want:  []string{"/accessors/0/min"},
		},
		{
			name: "DATA-003 index type",
			rule: NewDATA003(),
			input: `{
				"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
				"accessors": [
					{"componentType": 5126, "count": 3, "type": "VEC3"},
					{"componentType": 5126, "count": 3, "type": "SCALAR"}
				]
			}`,
			want: []string{"/meshes/0/primitives/0/indices"},
		},
		{
			name:  "EXT-001 required not used",
			rule:  NewEXT001(),
			input: `{"extensionsUsed": ["A"], "extensionsRequired": ["A", "B"]}`,
			want:  []string{"/extensionsRequired/1"},
		},
		{
			name:  "EXT-002 undeclared primitive extension",
			rule:  NewEXT002(),
			input: `{"meshes": [{"primitives": [{"attributes": {}, "extensions": {"KHR_draco_mesh_compression": {}, "X_other": {}}}]}], "extensionsUsed": ["X_other"]}`,
			want:  []string{"/meshes/0/primitives/0/extensions/KHR_draco_mesh_compression"},
		},
		{
			name:  "EXT-003 unsupported required",
			rule:  NewEXT003(),
			input: `{"extensionsRequired": ["KHR_draco_mesh_compression", "EXT_meshopt_compression"]}`,
			want:  []string{"/extensionsRequired/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := tt.rule.Check(parse(t, tt.input))
			assert.Equal(t, len(tt.want), len(vs), "violations: %v", vs)
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, pointers(vs))
			}
			for _, v := range vs {
				assert.Equal(t, tt.rule.ID(), v.RuleID)
				assert.NotEmpty(t, v.Message)
			}
		})
	}
}

func triangleInput(t *testing.T, text string) *validate.Input {
	t.Helper()
	dir := t.TempDir()
	testdoc.WriteTriangle(t, dir)
	path := testdoc.WriteFile(t, dir, "doc.gltf", []byte(text))
	doc, err := gltf.Parse([]byte(text))
	require.NoError(t, err)
	return &validate.Input{
		Document: doc,
		Source:   resolve.NewSession(doc, resolve.Config{DocumentPath: path}),
	}
}

func TestDefaultRegistryOnTriangle(t *testing.T) {
	in := triangleInput(t, testdoc.TriangleJSON)
	vs := validate.NewValidator(NewDefaultRegistry()).Validate(in)
	assert.Empty(t, vs)
}

func TestDataRules(t *testing.T) {
	t.Run("bounds mismatch", func(t *testing.T) {
		text := replace(t, testdoc.TriangleJSON, `"max": [1, 1, 0]`, `"max": [0.5, 1, 0]`)
		vs := NewDATA002().Check(triangleInput(t, text))
		require.Len(t, vs, 1)
		assert.Equal(t, "/accessors/0", vs[0].Pointer)
		assert.Equal(t, "set min to [0, 0, 0] and max to [1, 1, 0]", vs[0].Suggestion)
	})

	t.Run("missing buffer file", func(t *testing.T) {
		text := replace(t, testdoc.TriangleJSON, `triangle.bin`, `gone.bin`)
		vs := NewDATA001().Check(triangleInput(t, text))
		require.Len(t, vs, 1)
		assert.Equal(t, "/accessors/0", vs[0].Pointer)
		assert.Empty(t, NewDATA002().Check(triangleInput(t, text)))
	})

	t.Run("index past vertices", func(t *testing.T) {
		// Indices 0, 1, 2 against a two-vertex POSITION accessor.
		text := replace(t, testdoc.TriangleJSON, `"count": 3, "type": "VEC3"`, `"count": 2, "type": "VEC3"`)
		vs := NewDATA003().Check(triangleInput(t, text))
		require.Len(t, vs, 1)
		assert.Contains(t, vs[0].Message, "index 2 at element 2 exceeds 2 vertices")
	})

	t.Run("no source", func(t *testing.T) {
		in := parse(t, testdoc.TriangleJSON)
		assert.Empty(t, NewDATA001().Check(in))
		assert.Empty(t, NewDATA002().Check(in))
		assert.Empty(t, NewDATA003().Check(in))
	})
}

func TestValidatorPositions(t *testing.T) {
	text := replace(t, testdoc.TriangleJSON, `"version": "2.0"`, `"version": "3.0"`)
	registry := NewDefaultRegistry()
	require.NoError(t, registry.Configure([]string{"DATA-001", "DATA-002", "DATA-003"}, map[string]string{"ASSET-001": "warning"}))

	vs := validate.NewValidator(registry).Validate(parse(t, text))
	require.Len(t, vs, 1)
	assert.Equal(t, "ASSET-001", vs[0].RuleID)
	assert.Equal(t, validate.SeverityWarning, vs[0].Severity)
	assert.True(t, vs[0].Located)
	assert.Equal(t, "2:13", vs[0].Position.String())
	assert.False(t, validate.HasErrors(vs))
}

func TestRegisteredIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range NewDefaultRegistry().AllRules() {
		assert.False(t, seen[r.ID()], "duplicate %s", r.ID())
		seen[r.ID()] = true
		assert.NotEmpty(t, r.Name())
		assert.NotEmpty(t, r.Category())
	}
	assert.Len(t, seen, 19)
}

func replace(t *testing.T, s, old, new string) string {
	t.Helper()
	require.Contains(t, s, old)
	return strings.Replace(s, old, new, 1)
}
