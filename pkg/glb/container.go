package glb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gltfkit/gltfkit-go/pkg/log"
)

// Container is the decoded chunk structure of a binary glTF file.
type Container struct {
	// JSON is the document chunk, including any trailing padding.
	JSON []byte

	// BIN is the payload chunk, nil when absent.
	BIN []byte

	// Extra holds chunks of unknown type in file order.
	Extra []Chunk
}

// Size returns the encoded size of the container.
func (c *Container) Size() int {
	n := HeaderSize + ChunkHeaderSize + Pad(len(c.JSON))
	if c.BIN != nil {
		n += ChunkHeaderSize + Pad(len(c.BIN))
	}
	for _, x := range c.Extra {
		n += ChunkHeaderSize + Pad(len(x.Data))
	}
	return n
}

// Encode writes the container: header, JSON chunk, BIN chunk if present,
// then unknown chunks.
func Encode(c *Container, trace *log.Session) ([]byte, error) {
	total := c.Size()
	var buf bytes.Buffer
	buf.Grow(total)

	var hdr [HeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], Magic)
	binary.LittleEndian.PutUint32(hdr[4:8], Version)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(total))
	buf.Write(hdr[:])

	cw := NewChunkWriter(&buf, HeaderSize)
	cw.SetTrace(trace)
	if err := cw.WriteChunk(Chunk{Type: ChunkJSON, Data: c.JSON}); err != nil {
		return nil, err
	}
	if c.BIN != nil {
		if err := cw.WriteChunk(Chunk{Type: ChunkBIN, Data: c.BIN}); err != nil {
			return nil, err
		}
	}
	for _, x := range c.Extra {
		if err := cw.WriteChunk(x); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Decode validates the header and splits data into chunks. The magic and
// version are checked before anything else. The total and every chunk
// length must be multiples of 4. The first chunk must be JSON; at most one
// BIN chunk may follow it.
func Decode(data []byte, trace *log.Session) (*Container, error) {
	c, err := decode(data, trace)
	if err != nil {
		trace.Error(log.DirectionIn, log.LayerContainer, err, "decode")
		return nil, err
	}
	return c, nil
}

func decode(data []byte, trace *log.Session) (*Container, error) {
	if len(data) >= 4 {
		if magic := binary.LittleEndian.Uint32(data[0:4]); magic != Magic {
			return nil, &FormatError{Offset: 0, Field: "magic", Value: magic, Err: ErrBadMagic}
		}
	}
	if len(data) < HeaderSize {
		return nil, layoutError(0, "header", fmt.Sprintf("%d bytes, need %d", len(data), HeaderSize))
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != Version {
		return nil, &FormatError{Offset: 4, Field: "version", Value: v, Err: ErrBadVersion}
	}
	total := int(binary.LittleEndian.Uint32(data[8:12]))
	if total < HeaderSize || total > len(data) {
		return nil, layoutError(8, "length",
			fmt.Sprintf("declared %d bytes, have %d", total, len(data)))
	}
	if total%Alignment != 0 {
		return nil, layoutError(8, "length",
			fmt.Sprintf("declared %d bytes is not a multiple of %d", total, Alignment))
	}

	cr := NewChunkReader(bytes.NewReader(data[HeaderSize:total]), HeaderSize, total-HeaderSize)
	cr.SetTrace(trace)

	c := &Container{}
	for i := 0; ; i++ {
		offset := cr.Offset()
		chunk, err := cr.ReadChunk()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch {
		case i == 0 && chunk.Type != ChunkJSON:
			return nil, layoutError(offset, "chunkType", fmt.Sprintf("first chunk is %s, want JSON", chunk.Tag()))
		case i == 0:
			c.JSON = chunk.Data
		case chunk.Type == ChunkJSON:
			return nil, layoutError(offset, "chunkType", "second JSON chunk")
		case chunk.Type == ChunkBIN:
			if c.BIN != nil {
				return nil, layoutError(offset, "chunkType", "second BIN chunk")
			}
			c.BIN = chunk.Data
		default:
			c.Extra = append(c.Extra, chunk)
		}
	}
	if c.JSON == nil {
		return nil, layoutError(HeaderSize, "chunk", "missing JSON chunk")
	}
	return c, nil
}
