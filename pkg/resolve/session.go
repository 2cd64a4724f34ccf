package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
)

// Ref points at resource bytes: a URI (data or relative path) or a buffer
// view. BufferView wins when both are set.
type Ref struct {
	URI        string
	BufferView *int
}

// Config configures a Session.
type Config struct {
	// DocumentPath is the path of the document; relative URIs resolve
	// against its directory. Empty means the working directory.
	DocumentPath string

	// Payload is the binary chunk of the container the document came
	// from. It backs the first buffer when that buffer has no URI.
	Payload []byte

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives codec trace events. May be nil.
	Trace log.Logger
}

// Session resolves the resources of one document. It is not safe for
// concurrent use.
type Session struct {
	// ID identifies the session in logs and traces.
	ID string

	doc     *gltf.Document
	dir     string
	payload []byte
	cache   map[int][]byte
	logger  *slog.Logger
	trace   *log.Session
}

// NewSession starts a resolve session for doc.
func NewSession(doc *gltf.Document, cfg Config) *Session {
	s := &Session{
		ID:      uuid.New().String(),
		doc:     doc,
		dir:     filepath.Dir(cfg.DocumentPath),
		payload: cfg.Payload,
		cache:   make(map[int][]byte),
		logger:  cfg.Logger,
		trace:   log.NewSession(cfg.Trace, cfg.DocumentPath),
	}
	if cfg.DocumentPath == "" {
		s.dir = "."
	}
	if s.trace != nil {
		s.trace.ID = s.ID
	}
	return s
}

// Trace returns the session's trace, nil when tracing is off.
func (s *Session) Trace() *log.Session {
	return s.trace
}

// Buffer returns the complete bytes of buffer i. Results are cached for
// the lifetime of the session.
func (s *Session) Buffer(i int) ([]byte, error) {
	if data, ok := s.cache[i]; ok {
		s.trace.Resource(log.DirectionIn, log.ResourceEvent{Index: i, Size: len(data), Cached: true})
		return data, nil
	}

	b, err := s.doc.Buffer(i)
	if err != nil {
		return nil, err
	}

	var data []byte
	if b.URI == "" {
		data, err = s.payloadBuffer(i, b)
	} else {
		data, err = s.fromURI(i, b.URI)
	}
	if err != nil {
		err = fmt.Errorf("buffer %d: %w", i, err)
		s.trace.Error(log.DirectionIn, log.LayerResource, err, "buffer")
		return nil, err
	}

	if len(data) < b.ByteLength {
		err := fmt.Errorf("buffer %d: %w: have %d bytes, byteLength %d", i, ErrShortPayload, len(data), b.ByteLength)
		s.trace.Error(log.DirectionIn, log.LayerResource, err, "buffer")
		return nil, err
	}
	data = data[:b.ByteLength]
	s.cache[i] = data
	return data, nil
}

// Resolve returns the bytes a reference points at. index is only used for
// logging.
func (s *Session) Resolve(index int, ref Ref) ([]byte, error) {
	if ref.BufferView != nil {
		view, err := s.doc.BufferView(*ref.BufferView)
		if err != nil {
			return nil, err
		}
		buf, err := s.Buffer(view.Buffer)
		if err != nil {
			return nil, err
		}
		data := buf[view.ByteOffset:view.End()]
		s.record(log.ResourceEvent{Kind: log.ResourceEmbedded, Index: index, Size: len(data)})
		return data, nil
	}
	if ref.URI == "" {
		return nil, ErrNoSource
	}
	return s.fromURI(index, ref.URI)
}

// Image returns the bytes of image i.
func (s *Session) Image(i int) ([]byte, error) {
	if i < 0 || i >= len(s.doc.Images) {
		return nil, fmt.Errorf("image %d of %d: %w", i, len(s.doc.Images), gltf.ErrIndexOutOfRange)
	}
	img := s.doc.Images[i]
	data, err := s.Resolve(i, Ref{URI: img.URI, BufferView: img.BufferView})
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", i, err)
	}
	return data, nil
}

// Shader returns the bytes of shader i.
func (s *Session) Shader(i int) ([]byte, error) {
	if i < 0 || i >= len(s.doc.Shaders) {
		return nil, fmt.Errorf("shader %d of %d: %w", i, len(s.doc.Shaders), gltf.ErrIndexOutOfRange)
	}
	sh := s.doc.Shaders[i]
	data, err := s.Resolve(i, Ref{URI: sh.URI, BufferView: sh.BufferView})
	if err != nil {
		return nil, fmt.Errorf("shader %d: %w", i, err)
	}
	return data, nil
}

// Path returns the filesystem path a relative URI resolves to.
func (s *Session) Path(uri string) (string, error) {
	rel, err := url.PathUnescape(uri)
	if err != nil {
		return "", fmt.Errorf("uri %q: %w", uri, err)
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel), nil
	}
	return filepath.Join(s.dir, filepath.FromSlash(rel)), nil
}

func (s *Session) payloadBuffer(i int, b gltf.Buffer) ([]byte, error) {
	if i != 0 || s.payload == nil {
		return nil, ErrNoSource
	}
	s.record(log.ResourceEvent{Kind: log.ResourceEmbedded, Index: i, Size: b.ByteLength})
	return s.payload, nil
}

func (s *Session) fromURI(index int, uri string) ([]byte, error) {
	if IsDataURI(uri) {
		d, err := ParseDataURI(uri)
		if err != nil {
			return nil, err
		}
		s.record(log.ResourceEvent{Kind: log.ResourceDataURI, Index: index, Size: len(d.Data)})
		return d.Data, nil
	}

	path, err := s.Path(uri)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{URI: uri, Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s.record(log.ResourceEvent{Kind: log.ResourceFile, URI: uri, Path: path, Index: index, Size: len(data)})
	return data, nil
}

func (s *Session) record(ev log.ResourceEvent) {
	s.debugLog("resolved resource",
		"session", s.ID,
		"kind", ev.Kind.String(),
		"index", ev.Index,
		"size", ev.Size,
		"path", ev.Path)
	s.trace.Resource(log.DirectionIn, ev)
}

// debugLog logs a debug message if logging is enabled.
func (s *Session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
