package sourcemap

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every ParseError.
var ErrSyntax = errors.New("invalid JSON")

// ParseError reports text that is not valid JSON. No tree or index is
// produced alongside it.
type ParseError struct {
	Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Position, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}
