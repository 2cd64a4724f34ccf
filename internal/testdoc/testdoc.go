// Package testdoc provides document fixtures shared by package tests.
package testdoc

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// PNG is the start of a PNG file, enough for content sniffing.
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0}

// Positions are the triangle's vertex positions.
var Positions = []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}

// Indices are the triangle's vertex indices.
var Indices = []uint16{0, 1, 2}

// TriangleJSON is a one-triangle scene. Positions live in triangle.bin,
// indices in a data URI and the texture in tex.png.
const TriangleJSON = `{
  "asset": {"version": "2.0", "generator": "testdoc"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"name": "root", "mesh": 0}],
  "meshes": [{"name": "triangle", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
  "buffers": [
    {"uri": "triangle.bin", "byteLength": 36},
    {"uri": "data:application/octet-stream;base64,AAABAAIA", "byteLength": 6}
  ],
  "bufferViews": [
    {"buffer": 0, "byteLength": 36},
    {"buffer": 1, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "images": [{"uri": "tex.png"}]
}
`

// Float32Bytes encodes vs little-endian.
func Float32Bytes(vs ...float32) []byte {
	out := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// WriteTriangle writes the triangle document and its resources into dir
// and returns the document path.
func WriteTriangle(t testing.TB, dir string) string {
	t.Helper()
	WriteFile(t, dir, "triangle.bin", Float32Bytes(Positions...))
	WriteFile(t, dir, "tex.png", PNG)
	return WriteFile(t, dir, "triangle.gltf", []byte(TriangleJSON))
}
