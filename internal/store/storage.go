package store

import (
	"os"
	"path/filepath"
	"sync"
)

// Storage is the durable key/value backend under the trip and details
// stores. Implementations are synchronous; values are opaque strings
// (JSON at the call sites).
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemoryStorage is an in-process Storage used in tests and as a fallback
// when no store directory is configured.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileStorage keeps one file per key under a directory. Writes go through
// a temp file plus rename so a read never observes a partial value.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	raw, err := os.ReadFile(filepath.Join(f.dir, key))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (f *FileStorage) Set(key, value string) error {
	path := filepath.Join(f.dir, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
