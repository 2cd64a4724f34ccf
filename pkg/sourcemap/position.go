package sourcemap

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a location in document text. Columns count bytes, so a line
// holding multibyte characters has larger columns than an editor shows;
// Document.CharColumn and Document.UTF16Column convert them.
type Position struct {
	// Offset is the byte offset from the start of the text.
	Offset int `json:"offset" cbor:"1,keyasint"`

	// Line is the zero-based line number.
	Line int `json:"line" cbor:"2,keyasint"`

	// Column is the zero-based byte column within the line.
	Column int `json:"column" cbor:"3,keyasint"`
}

// String returns the position as one-based "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// lineTable holds the offset at which each line starts.
type lineTable []int

func newLineTable(text []byte) lineTable {
	lines := lineTable{0}
	for i, c := range text {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// position translates an offset into a Position.
func (t lineTable) position(offset int) Position {
	// Index of the first line starting after offset, minus one.
	line := sort.Search(len(t), func(i int) bool { return t[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{Offset: offset, Line: line, Column: offset - t[line]}
}

// offset translates a line and column into an offset.
func (t lineTable) offset(line, column, size int) (int, bool) {
	if line < 0 || line >= len(t) || column < 0 {
		return 0, false
	}
	end := size
	if line+1 < len(t) {
		end = t[line+1]
	}
	off := t[line] + column
	if off > end {
		return 0, false
	}
	return off, true
}

// lineStart returns the bytes of p's line up to p, or nil when p does not
// fit text.
func lineStart(text []byte, p Position) []byte {
	start := p.Offset - p.Column
	if start < 0 || p.Column < 0 || p.Offset > len(text) {
		return nil
	}
	return text[start:p.Offset]
}

// CharColumn returns the zero-based column of p counted in characters.
func (d *Document) CharColumn(p Position) int {
	return utf8.RuneCount(lineStart(d.Text, p))
}

// UTF16Column returns the zero-based column of p counted in UTF-16 code
// units, as used by editors speaking the language server protocol.
func (d *Document) UTF16Column(p Position) int {
	n := 0
	for _, r := range string(lineStart(d.Text, p)) {
		n += utf16.RuneLen(r)
	}
	return n
}
