package accessor

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrRange indicates a read outside a buffer or buffer view.
	ErrRange = errors.New("byte range out of bounds")

	// ErrStride indicates a byte stride smaller than the element size.
	ErrStride = errors.New("byte stride smaller than element")

	// ErrSparseIndex indicates an unusable sparse index.
	ErrSparseIndex = errors.New("invalid sparse index")

	// ErrBounds indicates decoded values outside the declared min/max.
	ErrBounds = errors.New("value outside declared bounds")
)

// RangeError reports the byte range that did not fit.
type RangeError struct {
	// What names the range being checked ("bufferView", "accessor").
	What string

	// Start and End delimit the requested half-open byte range.
	Start, End int

	// Limit is the number of bytes actually available.
	Limit int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s bytes [%d, %d) exceed available length %d", e.What, e.Start, e.End, e.Limit)
}

// Is makes errors.Is(err, ErrRange) true for every RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}
