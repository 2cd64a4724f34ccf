package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestTraceFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.glog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test trace: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	now := time.Now()
	path := createTestTraceFile(t, []Event{
		{Timestamp: now, SessionID: "s-1", Direction: DirectionIn, Layer: LayerContainer, Category: CategoryChunk},
		{Timestamp: now, SessionID: "s-2", Direction: DirectionOut, Layer: LayerResource, Category: CategoryResource},
		{Timestamp: now, SessionID: "s-3", Direction: DirectionIn, Layer: LayerService, Category: CategoryDecode},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].SessionID != "s-1" || read[2].SessionID != "s-3" {
		t.Errorf("order = %q..%q", read[0].SessionID, read[2].SessionID)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glog")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file = %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.glog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	path := createTestTraceFile(t, []Event{
		{Timestamp: base, SessionID: "a", Document: "one.gltf", Direction: DirectionIn, Layer: LayerContainer, Category: CategoryChunk},
		{Timestamp: base.Add(time.Second), SessionID: "a", Document: "one.gltf", Direction: DirectionIn, Layer: LayerAccessor, Category: CategoryDecode},
		{Timestamp: base.Add(2 * time.Second), SessionID: "b", Document: "two.gltf", Direction: DirectionOut, Layer: LayerContainer, Category: CategoryChunk},
		{Timestamp: base.Add(3 * time.Second), SessionID: "b", Document: "two.gltf", Direction: DirectionOut, Layer: LayerResource, Category: CategoryError},
	})

	container := LayerContainer
	out := DirectionOut
	errCat := CategoryError
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 4},
		{"session", Filter{SessionID: "a"}, 2},
		{"document", Filter{Document: "two.gltf"}, 2},
		{"layer", Filter{Layer: &container}, 2},
		{"direction", Filter{Direction: &out}, 2},
		{"category", Filter{Category: &errCat}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{SessionID: "b", Layer: &container}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}
