// Package commands implements the gltfkit CLI commands.
package commands

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gltfkit/gltfkit-go/pkg/glb"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
	"github.com/gltfkit/gltfkit-go/pkg/resolve"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitInvalid      = 2
)

// Env carries what every command needs.
type Env struct {
	Config Config
	Stdout io.Writer
	Stderr io.Writer

	// Logger is the operational logger.
	Logger *slog.Logger

	// Trace receives codec trace events. Never nil.
	Trace log.Logger

	// Context bounds long running commands.
	Context context.Context

	closers []io.Closer
}

// NewEnv builds an Env from cfg. When cfg.Trace names a file, codec
// events are written there.
func NewEnv(cfg Config, stdout, stderr io.Writer) (*Env, error) {
	env := &Env{
		Config:  cfg,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  cfg.NewLogger(stderr),
		Trace:   log.NoopLogger{},
		Context: context.Background(),
	}
	if cfg.Trace != "" {
		fl, err := log.NewFileLogger(cfg.Trace)
		if err != nil {
			return nil, fmt.Errorf("opening trace file: %w", err)
		}
		env.Trace = fl
		env.closers = append(env.closers, fl)
	}
	return env, nil
}

// Close releases the trace file.
func (e *Env) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	e.closers = nil
	return first
}

func (e *Env) errorf(format string, args ...any) int {
	fmt.Fprintf(e.Stderr, "Error: "+format+"\n", args...)
	return exitCommandError
}

func (e *Env) codec() *glb.Codec {
	return &glb.Codec{Logger: e.Logger, Trace: e.Trace}
}

// Loaded is a document read from a text or binary file.
type Loaded struct {
	Path     string
	Document *gltf.Document

	// Payload and Extra are set for binary containers.
	Payload []byte
	Extra   []glb.Chunk
	Binary  bool
}

// Open reads a document. Files starting with the container magic are
// unpacked, anything else is parsed as text.
func (e *Env) Open(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isContainer(data) {
		u, err := e.codec().Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &Loaded{Path: path, Document: u.Document, Payload: u.Payload, Extra: u.Extra, Binary: true}, nil
	}
	doc, err := gltf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Loaded{Path: path, Document: doc}, nil
}

// Session starts a resolve session for the document.
func (e *Env) Session(l *Loaded) *resolve.Session {
	return resolve.NewSession(l.Document, resolve.Config{
		DocumentPath: l.Path,
		Payload:      l.Payload,
		Logger:       e.Logger,
		Trace:        e.Trace,
	})
}

func isContainer(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == glb.Magic
}
