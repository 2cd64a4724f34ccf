package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	c := &captureLogger{}
	if OrNoop(c) != Logger(c) {
		t.Error("OrNoop should return a non-nil logger unchanged")
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := &captureLogger{}, &captureLogger{}
	m := NewMultiLogger(a, nil, b, NoopLogger{})

	m.Log(Event{SessionID: "x"})
	m.Log(Event{SessionID: "y"})

	if len(a.events) != 2 || len(b.events) != 2 {
		t.Errorf("got %d and %d events, want 2 each", len(a.events), len(b.events))
	}
}

func TestSlogAdapterAttributes(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		SessionID: "s-1",
		Direction: DirectionIn,
		Layer:     LayerContainer,
		Category:  CategoryChunk,
		Chunk:     &ChunkEvent{Type: 0x12345678, Offset: 40, Length: 16},
	})
	adapter.Log(Event{
		SessionID: "s-1",
		Layer:     LayerResource,
		Category:  CategoryResource,
		Resource:  &ResourceEvent{Kind: ResourceDataURI, Index: 2, Size: 9, Cached: true},
	})

	out := buf.String()
	for _, want := range []string{
		"msg=codec",
		"session=s-1",
		"layer=CONTAINER",
		"chunk=0x12345678",
		"known=false",
		"kind=DATA_URI",
		"cached=true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if DirectionOut.String() != "OUT" || Direction(9).String() != "UNKNOWN" {
		t.Error("Direction.String")
	}
	if LayerIndex.String() != "INDEX" || Layer(9).String() != "UNKNOWN" {
		t.Error("Layer.String")
	}
	if CategoryError.String() != "ERROR" || Category(9).String() != "UNKNOWN" {
		t.Error("Category.String")
	}
	if ResourceEmbedded.String() != "EMBEDDED" {
		t.Error("ResourceKind.String")
	}
}
