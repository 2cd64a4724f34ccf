// Package blockcodec is an in-process geometry block codec implementing
// the compressed.Service interfaces.
//
// A block is a little-endian header followed by attribute streams:
//
//	magic      [4]byte  "GKBC"
//	version    uint8    1
//	reserved   uint8
//	attributes uint16
//	points     uint32
//
// and per attribute:
//
//	id           uint16
//	components   uint8
//	compression  uint8   (none, lz4, zstd, bg4_lz4)
//	size         uint32  uncompressed byte length
//	stored       uint32  stored byte length
//	data         [stored]byte
//
// Uncompressed attribute data is points×components float32 values.
package blockcodec
