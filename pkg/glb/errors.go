package glb

import (
	"errors"
	"fmt"
)

// Container format errors.
var (
	// ErrBadMagic indicates the input does not start with the glTF magic.
	ErrBadMagic = errors.New("bad magic")

	// ErrBadVersion indicates an unsupported container version.
	ErrBadVersion = errors.New("unsupported container version")

	// ErrChunkLayout indicates chunk lengths that do not add up to the
	// declared total, a truncated chunk, or a misplaced JSON/BIN chunk.
	ErrChunkLayout = errors.New("invalid chunk layout")
)

// FormatError reports where a container is malformed.
type FormatError struct {
	// Offset is the byte offset of the offending field.
	Offset int

	// Field names the offending field.
	Field string

	// Value is the value found, when meaningful.
	Value uint32

	// Err is one of ErrBadMagic, ErrBadVersion or ErrChunkLayout.
	Err error

	// Detail adds context.
	Detail string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("glb: %v: %s at offset %d", e.Err, e.Field, e.Offset)
	switch e.Err {
	case ErrBadMagic:
		msg += fmt.Sprintf(" is 0x%08X, want 0x%08X", e.Value, Magic)
	case ErrBadVersion:
		msg += fmt.Sprintf(" is %d, want %d", e.Value, Version)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func layoutError(offset int, field, detail string) error {
	return &FormatError{Offset: offset, Field: field, Err: ErrChunkLayout, Detail: detail}
}
