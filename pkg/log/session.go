package log

import (
	"time"

	"github.com/google/uuid"
)

// Session stamps events with a shared session ID and document path.
// A nil *Session is valid and discards everything.
type Session struct {
	ID       string
	Document string
	logger   Logger
}

// NewSession starts a trace session for the given document. It returns nil
// when l is nil so callers can trace unconditionally.
func NewSession(l Logger, document string) *Session {
	if l == nil {
		return nil
	}
	return &Session{
		ID:       uuid.New().String(),
		Document: document,
		logger:   l,
	}
}

func (s *Session) emit(e Event) {
	if s == nil {
		return
	}
	e.Timestamp = time.Now()
	e.SessionID = s.ID
	e.Document = s.Document
	s.logger.Log(e)
}

// Chunk records a container chunk.
func (s *Session) Chunk(dir Direction, c ChunkEvent) {
	s.emit(Event{Direction: dir, Layer: LayerContainer, Category: CategoryChunk, Chunk: &c})
}

// Resource records resolved resource bytes.
func (s *Session) Resource(dir Direction, r ResourceEvent) {
	s.emit(Event{Direction: dir, Layer: LayerResource, Category: CategoryResource, Resource: &r})
}

// Decode records decoded elements at layer.
func (s *Session) Decode(layer Layer, d DecodeEvent) {
	s.emit(Event{Direction: DirectionIn, Layer: layer, Category: CategoryDecode, Decode: &d})
}

// Index records a source index build.
func (s *Session) Index(ix IndexEvent) {
	s.emit(Event{Direction: DirectionIn, Layer: LayerIndex, Category: CategoryIndex, Index: &ix})
}

// Error records err at layer. A nil err is ignored.
func (s *Session) Error(dir Direction, layer Layer, err error, context string) {
	if err == nil {
		return
	}
	s.emit(Event{
		Direction: dir,
		Layer:     layer,
		Category:  CategoryError,
		Error:     &ErrorEventData{Layer: layer, Message: err.Error(), Context: context},
	})
}
