package sourcemap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
	"golang.org/x/crypto/blake2b"

	"github.com/gltfkit/gltfkit-go/pkg/pointer"
)

// Document is parsed document text: the value tree and its pointer index.
type Document struct {
	// Text is the text as given to Parse.
	Text []byte

	// Root is the decoded value tree. Objects are map[string]any, arrays
	// []any and numbers json.Number so that their literal text survives
	// re-encoding.
	Root any

	// Map is the pointer index over Text.
	Map *Map
}

// Value returns the tree value addressed by ptr.
func (d *Document) Value(ptr string) (any, bool) {
	return pointer.Lookup(d.Root, ptr)
}

// Source returns the text of the value at ptr.
func (d *Document) Source(ptr string) ([]byte, bool) {
	e, ok := d.Map.RangeFor(ptr)
	if !ok {
		return nil, false
	}
	return d.Text[e.ValueStart.Offset:e.ValueEnd.Offset], true
}

// Parse decodes text and indexes every value in it.
func Parse(text []byte) (*Document, error) {
	// Comments and trailing commas become spaces; offsets do not move.
	clean := jsonc.ToJSON(text)
	lines := newLineTable(text)

	if !json.Valid(clean) {
		return nil, syntaxError(clean, lines)
	}

	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.UseNumber()

	b := &builder{
		text:    clean,
		dec:     dec,
		lines:   lines,
		entries: make(map[string]Entry),
	}
	root, err := b.value(pointer.Root, nil)
	if err != nil {
		return nil, b.wrap(err)
	}

	return &Document{
		Text: text,
		Root: root,
		Map: &Map{
			lines:       lines,
			size:        len(text),
			entries:     b.entries,
			order:       b.order,
			fingerprint: blake2b.Sum256(text),
		},
	}, nil
}

// syntaxError builds the ParseError for text already known to be invalid.
func syntaxError(clean []byte, lines lineTable) error {
	var v any
	err := json.Unmarshal(clean, &v)

	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		off := int(serr.Offset)
		if off > 0 {
			// SyntaxError.Offset points just past the offending byte.
			off--
		}
		return &ParseError{Position: lines.position(off), Msg: serr.Error()}
	}
	if err == nil || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{Position: lines.position(len(clean)), Msg: "unexpected end of input"}
	}
	return &ParseError{Position: lines.position(0), Msg: err.Error()}
}

// span is a half-open byte range.
type span struct {
	start, end int
}

// builder walks the token stream once, building values and entries.
type builder struct {
	text    []byte
	dec     *json.Decoder
	lines   lineTable
	entries map[string]Entry
	order   []string
}

// next returns the next token with its start and end offsets.
func (b *builder) next() (json.Token, span, error) {
	prev := int(b.dec.InputOffset())
	tok, err := b.dec.Token()
	if err != nil {
		return nil, span{}, err
	}
	end := int(b.dec.InputOffset())
	return tok, span{start: skipSeparators(b.text, prev, end), end: end}, nil
}

// skipSeparators advances from off past whitespace, commas and colons.
func skipSeparators(text []byte, off, limit int) int {
	for off < limit {
		switch text[off] {
		case ' ', '\t', '\n', '\r', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}

// open reserves ptr's slot in document order, dropping any entries left by
// an earlier duplicate key.
func (b *builder) open(ptr string) {
	if _, dup := b.entries[ptr]; dup {
		b.drop(ptr)
	}
	b.order = append(b.order, ptr)
	b.entries[ptr] = Entry{Pointer: ptr}
}

func (b *builder) drop(ptr string) {
	kept := b.order[:0]
	for _, p := range b.order {
		if pointer.HasPrefix(p, ptr) {
			delete(b.entries, p)
			continue
		}
		kept = append(kept, p)
	}
	b.order = kept
}

func (b *builder) close(ptr string, key *span, value span) {
	e := Entry{
		Pointer:    ptr,
		ValueStart: b.lines.position(value.start),
		ValueEnd:   b.lines.position(value.end),
	}
	if key != nil {
		e.HasKey = true
		e.KeyStart = b.lines.position(key.start)
		e.KeyEnd = b.lines.position(key.end)
	} else {
		e.KeyStart = e.ValueStart
		e.KeyEnd = e.ValueStart
	}
	b.entries[ptr] = e
}

// value decodes the value at ptr, whose key (if any) occupies key.
func (b *builder) value(ptr string, key *span) (any, error) {
	b.open(ptr)

	tok, sp, err := b.next()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		b.close(ptr, key, sp)
		return tok, nil
	}

	var v any
	switch delim {
	case '{':
		obj := make(map[string]any)
		for b.dec.More() {
			ktok, ksp, err := b.next()
			if err != nil {
				return nil, err
			}
			name, ok := ktok.(string)
			if !ok {
				return nil, fmt.Errorf("object key at offset %d is not a string", ksp.start)
			}
			child, err := b.value(pointer.Append(ptr, name), &ksp)
			if err != nil {
				return nil, err
			}
			obj[name] = child
		}
		v = obj
	case '[':
		arr := make([]any, 0)
		for i := 0; b.dec.More(); i++ {
			child, err := b.value(pointer.AppendIndex(ptr, i), nil)
			if err != nil {
				return nil, err
			}
			arr = append(arr, child)
		}
		v = arr
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", delim, sp.start)
	}

	_, closing, err := b.next()
	if err != nil {
		return nil, err
	}
	b.close(ptr, key, span{start: sp.start, end: closing.end})
	return v, nil
}

// wrap converts a decoder failure into a ParseError.
func (b *builder) wrap(err error) error {
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		return &ParseError{Position: b.lines.position(int(serr.Offset)), Msg: serr.Error()}
	}
	return &ParseError{Position: b.lines.position(int(b.dec.InputOffset())), Msg: err.Error()}
}
