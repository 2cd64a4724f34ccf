package gltf

import (
	"errors"
	"testing"
)

func TestComponentTable(t *testing.T) {
	tests := []struct {
		code   ComponentType
		name   string
		size   int
		signed bool
		float  bool
		max    float64
	}{
		{ComponentByte, "BYTE", 1, true, false, 127},
		{ComponentUnsignedByte, "UNSIGNED_BYTE", 1, false, false, 255},
		{ComponentShort, "SHORT", 2, true, false, 32767},
		{ComponentUnsignedShort, "UNSIGNED_SHORT", 2, false, false, 65535},
		{ComponentUnsignedInt, "UNSIGNED_INT", 4, false, false, 4294967295},
		{ComponentFloat, "FLOAT", 4, true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := tt.code.Size()
			if err != nil {
				t.Fatalf("Size() error: %v", err)
			}
			if size != tt.size {
				t.Errorf("Size() = %d, want %d", size, tt.size)
			}
			if tt.code.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.code.String(), tt.name)
			}
			if tt.code.Signed() != tt.signed {
				t.Errorf("Signed() = %v, want %v", tt.code.Signed(), tt.signed)
			}
			if tt.code.Float() != tt.float {
				t.Errorf("Float() = %v, want %v", tt.code.Float(), tt.float)
			}
			if tt.code.MaxMagnitude() != tt.max {
				t.Errorf("MaxMagnitude() = %v, want %v", tt.code.MaxMagnitude(), tt.max)
			}
		})
	}
}

func TestUnknownComponentType(t *testing.T) {
	c := ComponentType(5124)
	if c.Valid() {
		t.Fatal("5124 should not be valid")
	}
	_, err := c.Size()

	var uerr *UnknownTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
	if uerr.Value != "5124" || uerr.Kind != "componentType" {
		t.Errorf("error = %+v", uerr)
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Error("expected errors.Is(err, ErrUnknownType)")
	}
}

func TestTypeTable(t *testing.T) {
	tests := []struct {
		typ        AccessorType
		components int
		kind       Kind
		dimension  int
	}{
		{TypeScalar, 1, KindScalar, 1},
		{TypeVec2, 2, KindVector, 2},
		{TypeVec3, 3, KindVector, 3},
		{TypeVec4, 4, KindVector, 4},
		{TypeMat2, 4, KindMatrix, 2},
		{TypeMat3, 9, KindMatrix, 3},
		{TypeMat4, 16, KindMatrix, 4},
	}
	for _, tt := range tests {
		n, err := tt.typ.NumComponents()
		if err != nil {
			t.Fatalf("%s: %v", tt.typ, err)
		}
		if n != tt.components || tt.typ.Kind() != tt.kind || tt.typ.Dimension() != tt.dimension {
			t.Errorf("%s = (%d, %s, %d), want (%d, %s, %d)", tt.typ,
				n, tt.typ.Kind(), tt.typ.Dimension(), tt.components, tt.kind, tt.dimension)
		}
	}

	if _, err := AccessorType("VEC5").NumComponents(); !errors.Is(err, ErrUnknownType) {
		t.Errorf("VEC5 error = %v", err)
	}
}

func TestElementSize(t *testing.T) {
	size, err := ElementSize(TypeVec3, ComponentFloat)
	if err != nil || size != 12 {
		t.Errorf("VEC3/FLOAT = %d, %v", size, err)
	}
	size, err = ElementSize(TypeMat4, ComponentUnsignedShort)
	if err != nil || size != 32 {
		t.Errorf("MAT4/UNSIGNED_SHORT = %d, %v", size, err)
	}
	if _, err := ElementSize(TypeVec3, 1); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected unknown type error, got %v", err)
	}
}
