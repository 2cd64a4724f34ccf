package glb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gltfkit/gltfkit-go/pkg/log"
)

// Container constants.
const (
	// Magic is "glTF" read as a little-endian uint32.
	Magic uint32 = 0x46546C67

	// Version is the only container version supported.
	Version uint32 = 2

	// HeaderSize is the size of the container header in bytes.
	HeaderSize = 12

	// ChunkHeaderSize is the size of a chunk header in bytes.
	ChunkHeaderSize = 8

	// Alignment is the boundary every chunk is padded to.
	Alignment = 4

	// ChunkJSON is the type of the document chunk.
	ChunkJSON uint32 = 0x4E4F534A

	// ChunkBIN is the type of the binary payload chunk.
	ChunkBIN uint32 = 0x004E4942
)

// Chunk is one tagged byte range of a container.
type Chunk struct {
	Type uint32
	Data []byte
}

// Known reports whether the chunk is JSON or BIN.
func (c Chunk) Known() bool {
	return c.Type == ChunkJSON || c.Type == ChunkBIN
}

// Tag returns the chunk type as printable text.
func (c Chunk) Tag() string {
	switch c.Type {
	case ChunkJSON:
		return "JSON"
	case ChunkBIN:
		return "BIN"
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], c.Type)
	for _, ch := range b {
		if ch < 0x20 || ch > 0x7E {
			return fmt.Sprintf("0x%08X", c.Type)
		}
	}
	return string(b[:])
}

// Pad returns n rounded up to the chunk alignment.
func Pad(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// padByte returns the filler used for a chunk type.
func padByte(typ uint32) byte {
	if typ == ChunkJSON {
		return ' '
	}
	return 0
}

// ChunkWriter writes padded chunks to an underlying writer.
type ChunkWriter struct {
	w      io.Writer
	offset int
	trace  *log.Session
}

// NewChunkWriter creates a chunk writer. offset is the position of w
// within the container, used for trace events.
func NewChunkWriter(w io.Writer, offset int) *ChunkWriter {
	return &ChunkWriter{w: w, offset: offset}
}

// SetTrace configures tracing for this writer.
// Pass nil to disable tracing.
func (cw *ChunkWriter) SetTrace(trace *log.Session) {
	cw.trace = trace
}

// WriteChunk writes the chunk header, data and padding.
func (cw *ChunkWriter) WriteChunk(c Chunk) error {
	padded := Pad(len(c.Data))

	var hdr [ChunkHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(padded))
	binary.LittleEndian.PutUint32(hdr[4:8], c.Type)
	if _, err := cw.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}
	if _, err := cw.w.Write(c.Data); err != nil {
		return fmt.Errorf("failed to write chunk data: %w", err)
	}
	if pad := padded - len(c.Data); pad > 0 {
		fill := []byte{padByte(c.Type), padByte(c.Type), padByte(c.Type)}
		if _, err := cw.w.Write(fill[:pad]); err != nil {
			return fmt.Errorf("failed to write chunk padding: %w", err)
		}
	}

	cw.trace.Chunk(log.DirectionOut, log.ChunkEvent{
		Type:   c.Type,
		Tag:    c.Tag(),
		Offset: cw.offset,
		Length: padded,
		Known:  c.Known(),
	})
	cw.offset += ChunkHeaderSize + padded
	return nil
}

// ChunkReader reads chunks from an underlying reader limited to the
// declared container length.
type ChunkReader struct {
	r         io.Reader
	offset    int
	remaining int
	hdr       [ChunkHeaderSize]byte
	trace     *log.Session
}

// NewChunkReader creates a chunk reader over the remaining bytes of a
// container. offset is the position of r within the container and
// remaining the number of bytes the header declares after it.
func NewChunkReader(r io.Reader, offset, remaining int) *ChunkReader {
	return &ChunkReader{r: r, offset: offset, remaining: remaining}
}

// SetTrace configures tracing for this reader.
// Pass nil to disable tracing.
func (cr *ChunkReader) SetTrace(trace *log.Session) {
	cr.trace = trace
}

// Offset returns the position of the next chunk header.
func (cr *ChunkReader) Offset() int {
	return cr.offset
}

// ReadChunk reads the next chunk. It returns io.EOF exactly when the
// declared length has been consumed.
func (cr *ChunkReader) ReadChunk() (Chunk, error) {
	if cr.remaining == 0 {
		return Chunk{}, io.EOF
	}
	if cr.remaining < ChunkHeaderSize {
		return Chunk{}, layoutError(cr.offset, "chunk header",
			fmt.Sprintf("%d trailing bytes cannot hold a chunk header", cr.remaining))
	}
	if _, err := io.ReadFull(cr.r, cr.hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || err == io.EOF {
			return Chunk{}, layoutError(cr.offset, "chunk header", "truncated")
		}
		return Chunk{}, fmt.Errorf("failed to read chunk header: %w", err)
	}

	length := int(binary.LittleEndian.Uint32(cr.hdr[0:4]))
	typ := binary.LittleEndian.Uint32(cr.hdr[4:8])
	if length%Alignment != 0 {
		return Chunk{}, layoutError(cr.offset, "chunkLength",
			fmt.Sprintf("chunk of %d bytes is not padded to %d", length, Alignment))
	}
	if length > cr.remaining-ChunkHeaderSize {
		return Chunk{}, layoutError(cr.offset, "chunkLength",
			fmt.Sprintf("chunk of %d bytes exceeds the %d bytes left", length, cr.remaining-ChunkHeaderSize))
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(cr.r, data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || err == io.EOF {
			return Chunk{}, layoutError(cr.offset, "chunk data", "truncated")
		}
		return Chunk{}, fmt.Errorf("failed to read chunk data: %w", err)
	}

	c := Chunk{Type: typ, Data: data}
	cr.trace.Chunk(log.DirectionIn, log.ChunkEvent{
		Type:   typ,
		Tag:    c.Tag(),
		Offset: cr.offset,
		Length: length,
		Known:  c.Known(),
	})
	cr.offset += ChunkHeaderSize + length
	cr.remaining -= ChunkHeaderSize + length
	return c, nil
}
