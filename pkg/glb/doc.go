// Package glb reads and writes the binary glTF container.
//
// A container is a 12-byte header (magic, version, total length) followed
// by chunks. Each chunk is an 8-byte header (length, type) and its data,
// padded to a 4-byte boundary: JSON chunks with spaces, everything else
// with zeros. The first chunk holds the document JSON; an optional BIN
// chunk holds the payload of the first buffer. Chunks of any other type
// are carried through untouched. All integers are little-endian.
//
// Pack turns a document with external or inline resources into a single
// self-contained container. Unpack is its inverse and Unbundle writes an
// unpacked container back out as a document plus one binary file.
package glb
