// Package file implements the repository ports over a key-value blob
// store: each collection is serialized in full to a single JSON document
// on every write and deserialized in full on every read, the way a
// browser-storage backend would hold it.
package file

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store maps keys to JSON blobs in a directory, one file per key.
type Store struct {
	dir string
}

// NewStore creates a blob store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}

	return &Store{dir: dir}, nil
}

// Load reads the blob under key into v. The second return is false when
// the key has never been written.
func (s *Store) Load(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to read blob")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrap(err, "failed to decode blob")
	}

	return true, nil
}

// Save serializes v and replaces the blob under key. The write goes to a
// temp file first so a crash never leaves a half-written document.
func (s *Store) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode blob")
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write blob")
	}

	if err := os.Rename(tmp, s.path(key)); err != nil {
		return errors.Wrap(err, "failed to replace blob")
	}

	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
