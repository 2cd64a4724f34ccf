package accessor

import (
	"fmt"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
)

// ApplySparse substitutes the sparse entries of acc into elems in place.
// indexRaw and valueRaw are the complete buffers behind indexView and
// valueView. Indices must be unsigned integers below len(elems).
func ApplySparse(elems []Element, acc gltf.Accessor, indexView gltf.BufferView, indexRaw []byte,
	valueView gltf.BufferView, valueRaw []byte) error {
	s := acc.Sparse
	if s == nil || s.Count == 0 {
		return nil
	}

	switch s.Indices.ComponentType {
	case gltf.ComponentUnsignedByte, gltf.ComponentUnsignedShort, gltf.ComponentUnsignedInt:
	default:
		return fmt.Errorf("%w: component type %s", ErrSparseIndex, s.Indices.ComponentType)
	}

	indexView.ByteStride = 0
	indices, err := Decode(gltf.Accessor{
		ByteOffset:    s.Indices.ByteOffset,
		ComponentType: s.Indices.ComponentType,
		Count:         s.Count,
		Type:          gltf.TypeScalar,
	}, indexView, indexRaw)
	if err != nil {
		return fmt.Errorf("sparse indices: %w", err)
	}

	valueView.ByteStride = 0
	values, err := Decode(gltf.Accessor{
		ByteOffset:    s.Values.ByteOffset,
		ComponentType: acc.ComponentType,
		Normalized:    acc.Normalized,
		Count:         s.Count,
		Type:          acc.Type,
	}, valueView, valueRaw)
	if err != nil {
		return fmt.Errorf("sparse values: %w", err)
	}

	for i, ix := range indices {
		idx := int(ix[0])
		if idx >= len(elems) {
			return fmt.Errorf("%w: entry %d targets element %d of %d", ErrSparseIndex, i, idx, len(elems))
		}
		copy(elems[idx], values[i])
	}
	return nil
}
