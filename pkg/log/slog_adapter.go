package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see codec events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Document != "" {
		attrs = append(attrs, slog.String("document", event.Document))
	}

	switch {
	case event.Chunk != nil:
		tag := event.Chunk.Tag
		if tag == "" {
			tag = fmt.Sprintf("0x%08X", event.Chunk.Type)
		}
		attrs = append(attrs,
			slog.String("chunk", tag),
			slog.Int("offset", event.Chunk.Offset),
			slog.Int("length", event.Chunk.Length),
			slog.Bool("known", event.Chunk.Known),
		)
	case event.Resource != nil:
		attrs = append(attrs,
			slog.String("kind", event.Resource.Kind.String()),
			slog.Int("index", event.Resource.Index),
			slog.Int("size", event.Resource.Size),
		)
		if event.Resource.URI != "" {
			attrs = append(attrs, slog.String("uri", event.Resource.URI))
		}
		if event.Resource.Path != "" {
			attrs = append(attrs, slog.String("path", event.Resource.Path))
		}
		if event.Resource.Cached {
			attrs = append(attrs, slog.Bool("cached", true))
		}
	case event.Decode != nil:
		attrs = append(attrs,
			slog.Int("accessor", event.Decode.Accessor),
			slog.Int("count", event.Decode.Count),
			slog.Int("components", event.Decode.Components),
		)
		if event.Decode.Pointer != "" {
			attrs = append(attrs, slog.String("pointer", event.Decode.Pointer))
		}
		if event.Decode.Sparse {
			attrs = append(attrs, slog.Bool("sparse", true))
		}
	case event.Index != nil:
		attrs = append(attrs,
			slog.Int("entries", event.Index.Entries),
			slog.Int("size", event.Index.Size),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "codec", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
