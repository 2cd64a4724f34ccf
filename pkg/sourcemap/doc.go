// Package sourcemap parses glTF JSON text into a value tree together with an
// index from JSON pointers to their exact locations in the text.
//
// Every object property and array element gets one Entry holding four
// positions: the start and end of its key (for array elements and the
// root these equal the value positions) and the start and end of its
// value. Positions carry a byte offset plus a zero-based line and column,
// translated through a newline table built once per parse.
//
// # Basic Usage
//
//	doc, err := sourcemap.Parse(text)
//	var perr *sourcemap.ParseError
//	if errors.As(err, &perr) {
//	    // report perr.Line, perr.Column
//	}
//
//	ptr, _ := doc.Map.PointerFor(offset)  // "/meshes/0/primitives/0/attributes/POSITION"
//	entry, ok := doc.Map.RangeFor(ptr)
//
// # Authoring Text
//
// Comments and trailing commas are accepted. They are blanked before
// decoding without moving any byte, so reported offsets always refer to
// the text as the author wrote it.
//
// # Staleness
//
// A Map is never patched. Each edit produces a new Map through Parse. A
// Ref captured from one Map resolves only against a Map built from the
// same text; against any other it reports not found.
package sourcemap
