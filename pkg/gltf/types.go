package gltf

import (
	"fmt"
	"math"
)

// ComponentType is the numeric type of one accessor component.
type ComponentType uint32

const (
	// ComponentByte is a signed 8-bit integer.
	ComponentByte ComponentType = 5120

	// ComponentUnsignedByte is an unsigned 8-bit integer.
	ComponentUnsignedByte ComponentType = 5121

	// ComponentShort is a signed 16-bit integer.
	ComponentShort ComponentType = 5122

	// ComponentUnsignedShort is an unsigned 16-bit integer.
	ComponentUnsignedShort ComponentType = 5123

	// ComponentUnsignedInt is an unsigned 32-bit integer.
	ComponentUnsignedInt ComponentType = 5125

	// ComponentFloat is an IEEE-754 32-bit float.
	ComponentFloat ComponentType = 5126
)

// componentInfo is one row of the component descriptor table.
type componentInfo struct {
	name   string
	size   int
	signed bool
	float  bool
	max    float64 // largest representable magnitude, integers only
}

var componentTable = map[ComponentType]componentInfo{
	ComponentByte:          {name: "BYTE", size: 1, signed: true, max: math.MaxInt8},
	ComponentUnsignedByte:  {name: "UNSIGNED_BYTE", size: 1, max: math.MaxUint8},
	ComponentShort:         {name: "SHORT", size: 2, signed: true, max: math.MaxInt16},
	ComponentUnsignedShort: {name: "UNSIGNED_SHORT", size: 2, max: math.MaxUint16},
	ComponentUnsignedInt:   {name: "UNSIGNED_INT", size: 4, max: math.MaxUint32},
	ComponentFloat:         {name: "FLOAT", size: 4, signed: true, float: true},
}

// Valid reports whether c is one of the six known codes.
func (c ComponentType) Valid() bool {
	_, ok := componentTable[c]
	return ok
}

// Size returns the byte width of one component.
func (c ComponentType) Size() (int, error) {
	info, ok := componentTable[c]
	if !ok {
		return 0, &UnknownTypeError{Kind: "componentType", Value: fmt.Sprint(uint32(c))}
	}
	return info.size, nil
}

// Signed reports whether the type can hold negative values.
func (c ComponentType) Signed() bool {
	return componentTable[c].signed
}

// Float reports whether the type is a floating point type.
func (c ComponentType) Float() bool {
	return componentTable[c].float
}

// MaxMagnitude returns the largest representable magnitude of an integer
// type, the divisor used for normalization. It is 0 for FLOAT and unknown
// codes.
func (c ComponentType) MaxMagnitude() float64 {
	return componentTable[c].max
}

// String returns the component type name.
func (c ComponentType) String() string {
	if info, ok := componentTable[c]; ok {
		return info.name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint32(c))
}

// AccessorType is the structural type of one accessor element.
type AccessorType string

const (
	TypeScalar AccessorType = "SCALAR"
	TypeVec2   AccessorType = "VEC2"
	TypeVec3   AccessorType = "VEC3"
	TypeVec4   AccessorType = "VEC4"
	TypeMat2   AccessorType = "MAT2"
	TypeMat3   AccessorType = "MAT3"
	TypeMat4   AccessorType = "MAT4"
)

// Kind groups accessor types into scalars, vectors and matrices.
type Kind uint8

const (
	KindScalar Kind = iota
	KindVector
	KindMatrix
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

type typeInfo struct {
	kind       Kind
	components int
	dimension  int // rows of a matrix, components of a vector
}

var typeTable = map[AccessorType]typeInfo{
	TypeScalar: {kind: KindScalar, components: 1, dimension: 1},
	TypeVec2:   {kind: KindVector, components: 2, dimension: 2},
	TypeVec3:   {kind: KindVector, components: 3, dimension: 3},
	TypeVec4:   {kind: KindVector, components: 4, dimension: 4},
	TypeMat2:   {kind: KindMatrix, components: 4, dimension: 2},
	TypeMat3:   {kind: KindMatrix, components: 9, dimension: 3},
	TypeMat4:   {kind: KindMatrix, components: 16, dimension: 4},
}

// Valid reports whether t is a known structural type.
func (t AccessorType) Valid() bool {
	_, ok := typeTable[t]
	return ok
}

// NumComponents returns the number of components per element.
func (t AccessorType) NumComponents() (int, error) {
	info, ok := typeTable[t]
	if !ok {
		return 0, &UnknownTypeError{Kind: "type", Value: string(t)}
	}
	return info.components, nil
}

// Kind returns whether t is a scalar, vector or matrix type.
func (t AccessorType) Kind() Kind {
	return typeTable[t].kind
}

// Dimension returns the row count of a matrix type, the component count of
// a vector and 1 for scalars.
func (t AccessorType) Dimension() int {
	return typeTable[t].dimension
}

// ElementSize returns the packed byte size of one element of type t made of
// components of type c.
func ElementSize(t AccessorType, c ComponentType) (int, error) {
	n, err := t.NumComponents()
	if err != nil {
		return 0, err
	}
	size, err := c.Size()
	if err != nil {
		return 0, err
	}
	return n * size, nil
}
