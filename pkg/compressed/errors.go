package compressed

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotCompressed indicates the pointer does not lead to a primitive
	// with a compressed geometry block.
	ErrNotCompressed = errors.New("primitive has no compressed geometry")

	// ErrNoAttribute indicates the attribute is not part of the block.
	ErrNoAttribute = errors.New("attribute not in compressed block")

	// ErrPointer indicates a pointer that is not indexed or not inside a
	// mesh primitive.
	ErrPointer = errors.New("pointer does not address a mesh primitive")
)

// ServiceError reports a failure of the decode service.
type ServiceError struct {
	// Op is the service operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("decode service: %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
