package gltf

import (
	"errors"
	"fmt"
)

// Document errors.
var (
	// ErrUnknownType is matched by every UnknownTypeError.
	ErrUnknownType = errors.New("unknown type")

	// ErrIndexOutOfRange indicates a reference to a missing array element.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCycle indicates a node graph that revisits a node.
	ErrCycle = errors.New("node graph contains a cycle")

	// ErrUnsupportedVersion indicates an asset version this module cannot read.
	ErrUnsupportedVersion = errors.New("unsupported asset version")
)

// UnknownTypeError reports an unrecognized componentType code or accessor
// type name.
type UnknownTypeError struct {
	// Kind is "componentType" or "type".
	Kind string

	// Value is the offending code or name as it appeared.
	Value string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s %s", e.Kind, e.Value)
}

// Is makes errors.Is(err, ErrUnknownType) true for any UnknownTypeError.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// indexError reports a reference from one array into another.
func indexError(what string, index, length int) error {
	return fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, what, index, length)
}
