package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupted marks a backing file whose contents are not valid JSON of the
// expected shape. This is the only storage failure with no graceful path.
var ErrCorrupted = errors.New("storage: corrupted collection file")

// Store persists a homogeneous collection of documents as a single JSON
// array file. The only primitives are whole-collection load and
// whole-collection overwrite; every higher-level operation is a
// read-modify-write over the entire collection, serialized by a
// per-collection mutex.
type Store[T any] struct {
	path string
	mu   sync.Mutex
}

// Open binds a store to a file path, creating the file (and its parent
// directory) with an empty collection if it does not exist. Idempotent.
func Open[T any](path string) (*Store[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeFile(path, []T{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return &Store[T]{path: path}, nil
}

// Load deserializes and returns the full collection.
func (s *Store[T]) Load() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the file with the full collection.
func (s *Store[T]) Save(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFile(s.path, items)
}

// Update runs fn on the loaded collection and persists the result, all under
// the store lock, so compound operations (id assignment, status flips) cannot
// interleave. An error from fn aborts without saving.
func (s *Store[T]) Update(fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return writeFile(s.path, updated)
}

func (s *Store[T]) load() ([]T, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, s.path, err)
	}
	return items, nil
}

// writeFile writes to a temp file in the same directory and renames it over
// the target, so a crash mid-write cannot leave a truncated collection.
func writeFile[T any](path string, items []T) error {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
