package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage is the narrow key-value store the session persists through.
// Keeping it this small lets the store run against an in-memory fake in
// tests and against the real filesystem in production.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
}

// FileStorage stores one file per key inside a directory.
type FileStorage struct {
	dir string
}

// DefaultDir returns ~/.holidaze.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".holidaze"), nil
}

// NewFileStorage creates the directory if needed and returns a store over it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(f.dir, key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (f *FileStorage) Set(key, value string) error {
	if err := os.WriteFile(filepath.Join(f.dir, key), []byte(value), 0600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) Remove(key string) {
	os.Remove(filepath.Join(f.dir, key)) //nolint:errcheck // absent key is fine
}
