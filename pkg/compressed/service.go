package compressed

import "context"

// Service is the external geometry decode service.
type Service interface {
	// NewDecoder creates a decoder. The caller must Release it.
	NewDecoder() (Decoder, error)
}

// Decoder parses compressed geometry blocks.
type Decoder interface {
	// Decode parses block. The caller must Release the geometry.
	Decode(block []byte) (Geometry, error)

	// Release frees the decoder.
	Release()
}

// Geometry is a decoded geometry block.
type Geometry interface {
	// NumPoints returns the number of decoded points (vertices).
	NumPoints() int

	// Attribute extracts the attribute with the given unique id as flat
	// float values. The caller must Release the array.
	Attribute(id int) (FloatArray, error)

	// Release frees the geometry.
	Release()
}

// FloatArray is a flat float output of the service.
type FloatArray interface {
	// Values returns the array contents. The slice is only valid until
	// Release.
	Values() []float32

	// Release frees the array.
	Release()
}

// Loader loads the decode service.
type Loader func(ctx context.Context) (Service, error)
