// ABOUTME: Local analysis history persistence
// ABOUTME: Keyed list with insert, replace, and clear, stored as JSON
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one past landmark analysis
type Entry struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LandmarkName string    `json:"landmark_name"`
	Location     string    `json:"location"`
	History      string    `json:"history"`
	Voice        string    `json:"voice"`
	AudioB64     string    `json:"audio_b64,omitempty"`
	PostText     string    `json:"post_text,omitempty"`
	VideoURI     string    `json:"video_uri,omitempty"`
}

// Store is a file-backed history list, newest first. Every mutation is
// written through to disk before returning.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// NewStore loads (or creates) the history file at path
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("history file is corrupt: %w", err)
	}

	return s, nil
}

// Add inserts a new entry at the front and returns it with an assigned
// ID and timestamp
func (s *Store) Add(entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()

	s.entries = append([]Entry{entry}, s.entries...)
	if err := s.save(); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// Replace swaps the entry with the given ID in place, preserving its
// position, ID, and creation time. Voice regeneration uses this to
// update an analysis without duplicating it.
func (s *Store) Replace(id string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			entry.ID = id
			entry.CreatedAt = s.entries[i].CreatedAt
			s.entries[i] = entry
			return s.save()
		}
	}

	return fmt.Errorf("no history entry with id %s", id)
}

// Get returns the entry with the given ID
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// List returns a copy of all entries, newest first
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes all entries
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.save()
}

// save writes the list to disk; caller holds the lock
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}
