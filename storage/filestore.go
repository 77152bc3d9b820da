package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store is the key-value persistence surface the rest of the application
// depends on. Keys are short identifiers; values are JSON-encodable records.
type Store interface {
	// Read decodes the record for key into v. It reports false with a nil
	// error when no record exists.
	Read(key string, v any) (bool, error)
	// Write encodes v and replaces any prior record for key.
	Write(key string, v any) error
	// Delete removes the record for key. Deleting an absent record is a no-op.
	Delete(key string) error
}

// FileStore keeps each record as a JSON file named <key>.json inside a base
// directory.
type FileStore struct {
	dir string
	log zerolog.Logger
}

// NewFileStore creates a store rooted at the platform data directory.
func NewFileStore(logger zerolog.Logger) *FileStore {
	return NewFileStoreAt(DataDir(), logger)
}

// NewFileStoreAt creates a store rooted at an explicit directory.
func NewFileStoreAt(dir string, logger zerolog.Logger) *FileStore {
	return &FileStore{dir: dir, log: logger}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read implements Store.
func (s *FileStore) Read(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read record %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode record %q: %w", key, err)
	}
	return true, nil
}

// Write implements Store. The record is written to a temporary file first so
// a crash mid-write cannot leave a truncated record behind.
func (s *FileStore) Write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace record %q: %w", key, err)
	}
	s.log.Debug().Str("key", key).Msg("record written")
	return nil
}

// Delete implements Store.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	s.log.Debug().Str("key", key).Msg("record deleted")
	return nil
}
