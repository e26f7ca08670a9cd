// Package storage is the durable local storage backing the session snapshot:
// one JSON blob per key, written to a state directory. It is the server-side
// analogue of the browser's localStorage — best-effort, never authoritative.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists blobs as files under a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Read returns the blob stored under key, or (nil, nil) when the key has
// never been written.
func (s *FileStore) Read(key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Write stores the blob atomically: temp file in the same directory, then
// rename, so a crash mid-write never leaves a truncated snapshot.
func (s *FileStore) Write(key string, blob []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

// Delete removes the blob under key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
