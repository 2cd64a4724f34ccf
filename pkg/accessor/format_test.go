package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
)

func TestFormatElement(t *testing.T) {
	f := NewFormatter()
	f.Precision = 1

	tests := []struct {
		name string
		elem Element
		typ  gltf.AccessorType
		want string
	}{
		{"scalar", Element{2}, gltf.TypeScalar, "2.0"},
		{"vector", Element{1, -0.5, 3}, gltf.TypeVec3, "(1.0, -0.5, 3.0)"},
		{"matrix", Element{1, 2, 3, 4}, gltf.TypeMat2, "[[1.0, 2.0], [3.0, 4.0]]"},
		{"negative zero", Element{-0.01}, gltf.TypeScalar, "0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatElement(tt.elem, tt.typ))
		})
	}
}

func TestFormatElementsElides(t *testing.T) {
	f := &Formatter{Precision: 0, MaxElements: 2, ShowIndex: true}
	out := f.FormatElements([]Element{{1}, {2}, {3}, {4}}, gltf.TypeScalar)
	assert.Equal(t, "  [0] 1\n  [1] 2\n  ... 2 more\n", out)
}

func TestFormatSummary(t *testing.T) {
	f := NewFormatter()
	view := 0
	acc := gltf.Accessor{BufferView: &view, ComponentType: gltf.ComponentUnsignedShort, Count: 12, Type: gltf.TypeVec2, Normalized: true}
	assert.Equal(t, "accessor 3: 12 x VEC2/UNSIGNED_SHORT normalized", f.FormatSummary(3, acc))

	acc.BufferView = nil
	acc.Sparse = &gltf.Sparse{Count: 2}
	assert.Equal(t, "accessor 3: 12 x VEC2/UNSIGNED_SHORT normalized sparse(2) no-view", f.FormatSummary(3, acc))
}
