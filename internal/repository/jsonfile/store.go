// Package jsonfile implements the repository interfaces over named JSON
// collections stored as whole files under a base directory.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes named collections as whole-file JSON documents.
// Every write replaces the entire file; there is no locking and no
// partial-write protection, which is accepted for a low-traffic
// single-writer deployment.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Read decodes the collection into out. A missing file or unparseable
// content yields an empty collection; Read never fails for those cases, so
// a fresh data directory behaves like a set of empty collections.
func (s *Store) Read(collection string, out any) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		return
	}
	// Ignore decode errors as well: a corrupt file reads as empty.
	_ = json.Unmarshal(data, out)
}

// Write serializes the full collection and overwrites the backing file.
func (s *Store) Write(collection string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}
