package sourcemap

import (
	"github.com/gltfkit/gltfkit-go/pkg/pointer"
)

// Entry locates one value in document text.
type Entry struct {
	Pointer string `json:"pointer" cbor:"1,keyasint"`

	// KeyStart and KeyEnd bracket the quoted property name. For array
	// elements and the root both equal ValueStart and HasKey is false.
	KeyStart Position `json:"keyStart" cbor:"2,keyasint"`
	KeyEnd   Position `json:"keyEnd" cbor:"3,keyasint"`

	// ValueStart and ValueEnd bracket the value, end exclusive.
	ValueStart Position `json:"valueStart" cbor:"4,keyasint"`
	ValueEnd   Position `json:"valueEnd" cbor:"5,keyasint"`

	HasKey bool `json:"hasKey" cbor:"6,keyasint"`
}

// start is where the entry begins, its key when it has one.
func (e Entry) start() int {
	if e.HasKey {
		return e.KeyStart.Offset
	}
	return e.ValueStart.Offset
}

// Contains reports whether offset falls on the entry's key or value. The
// end is inclusive so that a cursor placed just after a value still
// addresses it.
func (e Entry) Contains(offset int) bool {
	return offset >= e.start() && offset <= e.ValueEnd.Offset
}

// Map is the pointer index of one version of a document's text.
type Map struct {
	lines       lineTable
	size        int
	entries     map[string]Entry
	order       []string
	fingerprint [32]byte
}

// Len returns the number of indexed values, the root included.
func (m *Map) Len() int {
	return len(m.order)
}

// RangeFor returns the entry for ptr. A pointer that does not exist in this
// version of the text is reported as not found.
func (m *Map) RangeFor(ptr string) (Entry, bool) {
	e, ok := m.entries[ptr]
	return e, ok
}

// PointerFor returns the pointer of the most specific value whose range
// contains offset.
//
// A "uri" property is never a navigation target on its own: when it is the
// best match, its parent object is returned instead.
func (m *Map) PointerFor(offset int) (string, bool) {
	if offset < 0 || offset > m.size {
		return "", false
	}

	var (
		best  string
		width = -1
	)
	for _, ptr := range m.order {
		e := m.entries[ptr]
		if !e.Contains(offset) {
			continue
		}
		w := e.ValueEnd.Offset - e.start()
		// Document order visits parents before children, so a tie goes to
		// the deeper entry.
		if width < 0 || w <= width {
			best, width = ptr, w
		}
	}
	if width < 0 {
		return "", false
	}

	if pointer.Last(best) == "uri" {
		if parent := pointer.Parent(best); parent != best {
			if _, ok := m.entries[parent]; ok {
				best = parent
			}
		}
	}
	return best, true
}

// PointerAt is PointerFor addressed by zero-based line and column.
func (m *Map) PointerAt(line, column int) (string, bool) {
	off, ok := m.lines.offset(line, column, m.size)
	if !ok {
		return "", false
	}
	return m.PointerFor(off)
}

// Position translates a byte offset into a Position.
func (m *Map) Position(offset int) Position {
	return m.lines.position(offset)
}

// Entries returns all entries in document order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, 0, len(m.order))
	for _, ptr := range m.order {
		out = append(out, m.entries[ptr])
	}
	return out
}

// Children returns the entries directly below ptr in document order.
func (m *Map) Children(ptr string) []Entry {
	var out []Entry
	for _, p := range m.order {
		if p != ptr && pointer.HasPrefix(p, ptr) && pointer.Parent(p) == ptr {
			out = append(out, m.entries[p])
		}
	}
	return out
}

// Ref is a pointer captured against one version of a document's text.
type Ref struct {
	Pointer     string
	Fingerprint [32]byte
}

// Fingerprint identifies the text this Map was built from.
func (m *Map) Fingerprint() [32]byte {
	return m.fingerprint
}

// Capture returns a Ref for ptr tied to this version of the text.
func (m *Map) Capture(ptr string) (Ref, bool) {
	if _, ok := m.entries[ptr]; !ok {
		return Ref{}, false
	}
	return Ref{Pointer: ptr, Fingerprint: m.fingerprint}, true
}

// Resolve returns the entry for ref. A Ref captured from different text is
// reported as not found.
func (m *Map) Resolve(ref Ref) (Entry, bool) {
	if ref.Fingerprint != m.fingerprint {
		return Entry{}, false
	}
	return m.RangeFor(ref.Pointer)
}
