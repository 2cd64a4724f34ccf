// Package accessor decodes typed element arrays out of raw buffer bytes.
//
// An accessor names a buffer view, a component type and a structural type.
// Decode turns the bytes it addresses into one Element per accessor entry,
// honouring the view's byte stride and the accessor's normalized flag.
// Reader resolves the buffer view and buffer of an accessor in a document
// and applies sparse substitution.
//
// Normalization maps integer components into [0, 1] (unsigned) or [-1, 1]
// (signed) by dividing by the largest representable magnitude of the
// component type; signed results are clamped at -1. Float components are
// never rescaled.
package accessor
