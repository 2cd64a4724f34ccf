package resolve

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNoSource indicates a reference with neither a URI nor a buffer view,
	// or a URI-less buffer other than the container payload.
	ErrNoSource = errors.New("reference has no source")

	// ErrDataURI indicates a malformed data URI.
	ErrDataURI = errors.New("malformed data URI")

	// ErrShortPayload indicates a container payload shorter than the
	// declared buffer length.
	ErrShortPayload = errors.New("container payload shorter than buffer")
)

// NotFoundError reports an external resource that does not exist.
// It unwraps to the underlying filesystem error, so
// errors.Is(err, fs.ErrNotExist) holds.
type NotFoundError struct {
	// URI as written in the document.
	URI string

	// Path is the resolved filesystem path.
	Path string

	// Err is the filesystem error.
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %q not found at %s", e.URI, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
