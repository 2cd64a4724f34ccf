package accessor

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
)

// componentReader reads one component at the start of b.
type componentReader func(b []byte) float64

func readerFor(c gltf.ComponentType) componentReader {
	switch c {
	case gltf.ComponentByte:
		return func(b []byte) float64 { return float64(int8(b[0])) }
	case gltf.ComponentUnsignedByte:
		return func(b []byte) float64 { return float64(b[0]) }
	case gltf.ComponentShort:
		return func(b []byte) float64 { return float64(int16(binary.LittleEndian.Uint16(b))) }
	case gltf.ComponentUnsignedShort:
		return func(b []byte) float64 { return float64(binary.LittleEndian.Uint16(b)) }
	case gltf.ComponentUnsignedInt:
		return func(b []byte) float64 { return float64(binary.LittleEndian.Uint32(b)) }
	case gltf.ComponentFloat:
		return func(b []byte) float64 { return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))) }
	}
	return nil
}

// Normalize maps an integer component value into the unit range of its
// type. Float values are returned unchanged.
func Normalize(v float64, c gltf.ComponentType) float64 {
	if c.Float() {
		return v
	}
	max := c.MaxMagnitude()
	if max == 0 {
		return v
	}
	n := v / max
	if c.Signed() && n < -1 {
		return -1
	}
	return n
}

// Decode reads acc.Count elements of the accessor out of raw, the complete
// bytes of the buffer that view refers to.
//
// Element i starts at view.ByteOffset + acc.ByteOffset + i*stride, where
// stride is view.ByteStride or the packed element size when the view is
// tightly packed. The view must lie within raw and the last element must
// end within the view.
func Decode(acc gltf.Accessor, view gltf.BufferView, raw []byte) ([]Element, error) {
	n, err := acc.Type.NumComponents()
	if err != nil {
		return nil, err
	}
	size, err := acc.ComponentType.Size()
	if err != nil {
		return nil, err
	}
	elemSize := n * size

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if stride < elemSize {
		return nil, fmt.Errorf("%w: stride %d, element %s/%s needs %d",
			ErrStride, stride, acc.Type, acc.ComponentType, elemSize)
	}

	if !view.Within(len(raw)) {
		return nil, &RangeError{What: "bufferView", Start: view.ByteOffset, End: view.End(), Limit: len(raw)}
	}
	if acc.Count < 0 || acc.ByteOffset < 0 {
		return nil, fmt.Errorf("%w: count %d, byteOffset %d", ErrRange, acc.Count, acc.ByteOffset)
	}
	if acc.Count == 0 {
		return []Element{}, nil
	}

	if !Fits(acc.ByteOffset, acc.Count, stride, elemSize, view.ByteLength) {
		return nil, &RangeError{What: "accessor", Start: acc.ByteOffset,
			End: End(acc.ByteOffset, acc.Count, stride, elemSize), Limit: view.ByteLength}
	}

	read := readerFor(acc.ComponentType)
	normalize := acc.Normalized && !acc.ComponentType.Float()
	data := raw[view.ByteOffset:view.End()]

	values := make([]float64, acc.Count*n)
	out := make([]Element, acc.Count)
	for i := range acc.Count {
		base := acc.ByteOffset + i*stride
		elem := values[i*n : (i+1)*n : (i+1)*n]
		for c := range n {
			v := read(data[base+c*size:])
			if normalize {
				v = Normalize(v, acc.ComponentType)
			}
			elem[c] = v
		}
		out[i] = elem
	}
	return out, nil
}

// MaxZeroElements caps the count of an accessor without a buffer view.
// Such accessors have no bytes to bound their size.
const MaxZeroElements = 1 << 24

// Zeros returns acc.Count zero-valued elements, the contents of an accessor
// that has no buffer view.
func Zeros(acc gltf.Accessor) ([]Element, error) {
	n, err := acc.Type.NumComponents()
	if err != nil {
		return nil, err
	}
	if _, err := acc.ComponentType.Size(); err != nil {
		return nil, err
	}
	if acc.Count < 0 || acc.Count > MaxZeroElements {
		return nil, fmt.Errorf("%w: count %d of a view-less accessor (limit %d)", ErrRange, acc.Count, MaxZeroElements)
	}
	return Group(make([]float64, acc.Count*n), n), nil
}

// Fits reports whether count elements of elemSize bytes, stride apart and
// starting at offset, end within length bytes. count and stride must be
// positive. The comparison is done by division, so huge counts cannot wrap
// past it.
func Fits(offset, count, stride, elemSize, length int) bool {
	room := length - offset - elemSize
	return offset >= 0 && room >= 0 && count-1 <= room/stride
}

// End returns the byte just past the last of count elements, saturating at
// math.MaxInt. A negative offset also yields math.MaxInt.
func End(offset, count, stride, elemSize int) int {
	if offset < 0 || count-1 > (math.MaxInt-offset-elemSize)/stride {
		return math.MaxInt
	}
	return offset + (count-1)*stride + elemSize
}
