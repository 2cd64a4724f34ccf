// Package pointer parses and builds JSON pointers into glTF documents.
//
// Pointers use the "/"-separated form of RFC 6901 ("/meshes/0/name").
// Array indices are decimal strings. The empty pointer "" addresses the
// whole document.
package pointer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pointer errors.
var (
	ErrInvalidPointer = errors.New("invalid pointer")
	ErrInvalidIndex   = errors.New("invalid array index in pointer")
)

// Root is the pointer addressing the whole document.
const Root = ""

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Parse splits a pointer into its unescaped segments.
//
// Supported formats:
//   - "" - the document root (no segments)
//   - "/meshes/0" - property and index segments
//   - "/extensions/a~1b" - escaped segments ("~1" is "/", "~0" is "~")
func Parse(input string) ([]string, error) {
	if input == Root {
		return nil, nil
	}
	if !strings.HasPrefix(input, "/") {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPointer, input)
	}

	parts := strings.Split(input[1:], "/")
	for i, p := range parts {
		parts[i] = unescaper.Replace(p)
	}
	return parts, nil
}

// Join builds a pointer from unescaped segments.
func Join(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(escaper.Replace(s))
	}
	return b.String()
}

// Append adds a property segment to ptr.
func Append(ptr, segment string) string {
	return ptr + "/" + escaper.Replace(segment)
}

// AppendIndex adds an array index segment to ptr.
func AppendIndex(ptr string, index int) string {
	return ptr + "/" + strconv.Itoa(index)
}

// Parent returns the pointer one level up. The parent of the root is the root.
func Parent(ptr string) string {
	i := strings.LastIndexByte(ptr, '/')
	if i < 0 {
		return Root
	}
	return ptr[:i]
}

// Last returns the unescaped final segment of ptr, or "" for the root.
func Last(ptr string) string {
	i := strings.LastIndexByte(ptr, '/')
	if i < 0 {
		return ""
	}
	return unescaper.Replace(ptr[i+1:])
}

// Index parses segment as an array index.
func Index(segment string) (int, error) {
	if segment == "" || (len(segment) > 1 && segment[0] == '0') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, segment)
	}
	n, err := strconv.Atoi(segment)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, segment)
	}
	return n, nil
}

// HasPrefix reports whether ptr is prefix itself or lies below it.
func HasPrefix(ptr, prefix string) bool {
	if prefix == Root {
		return true
	}
	if !strings.HasPrefix(ptr, prefix) {
		return false
	}
	return len(ptr) == len(prefix) || ptr[len(prefix)] == '/'
}

// Lookup walks segments from root through maps and slices as produced by
// encoding/json and returns the addressed value.
func Lookup(root any, ptr string) (any, bool) {
	segments, err := Parse(ptr)
	if err != nil {
		return nil, false
	}
	cur := root
	for _, seg := range segments {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := Index(seg)
			if err != nil || i >= len(v) {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
