package cart

import (
	"errors"
	"os"
	"path/filepath"
)

// FileStore keeps the cart in a JSON file, the desktop stand-in for the
// browser's local storage.
type FileStore struct{ Path string }

func (s FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (s FileStore) Save(data []byte) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, data, 0644)
}

// MemStore is an in-memory Storage for tests.
type MemStore struct{ Data []byte }

func (s *MemStore) Load() ([]byte, error) { return s.Data, nil }

func (s *MemStore) Save(data []byte) error {
	s.Data = append(s.Data[:0], data...)
	return nil
}
