package persistence

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ShellState is the state an inspector shell restores on start.
type ShellState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Document is the path of the last loaded document.
	Document string `json:"document,omitempty"`

	// Marks are remembered pointers, each tied to the text it was
	// captured from.
	Marks []Mark `json:"marks,omitempty"`
}

// Mark is a pointer captured against one version of a document's text.
type Mark struct {
	Pointer string `json:"pointer"`

	// Fingerprint is the hex digest of the text the pointer was captured
	// from.
	Fingerprint string `json:"fingerprint"`
}

// NewMark encodes a fingerprint for storage.
func NewMark(pointer string, fingerprint [32]byte) Mark {
	return Mark{Pointer: pointer, Fingerprint: hex.EncodeToString(fingerprint[:])}
}

// Digest decodes the stored fingerprint.
func (m Mark) Digest() ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(m.Fingerprint)
	if err != nil {
		return out, fmt.Errorf("mark %s: %w", m.Pointer, err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("mark %s: fingerprint has %d bytes, want %d", m.Pointer, len(b), len(out))
	}
	copy(out[:], b)
	return out, nil
}

// ShellStateStore manages persistence of shell state to a JSON file.
type ShellStateStore struct {
	mu   sync.Mutex
	path string
}

// NewShellStateStore creates a new shell state store.
func NewShellStateStore(path string) *ShellStateStore {
	return &ShellStateStore{path: path}
}

// Path returns the state file location.
func (s *ShellStateStore) Path() string {
	return s.path
}

// Save persists the shell state to disk.
func (s *ShellStateStore) Save(state *ShellState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the shell state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *ShellStateStore) Load() (*ShellState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &ShellState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Version != StateVersion {
		return nil, fmt.Errorf("state file %s: version %d, want %d", s.path, state.Version, StateVersion)
	}
	return state, nil
}

// Clear removes the state file.
func (s *ShellStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
