package session

import (
	"os"
	"path/filepath"
	"sync"
)

// Backend is the raw key/value storage underneath the session store.
// Injected so tests run against memory and the CLI against disk.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, b []byte) error
	Delete(key string) error
}

// FileBackend keeps each key as a JSON file inside a directory,
// the local-storage equivalent for a command line process.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir. The directory is created
// lazily on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBackend) Read(key string) ([]byte, error) {
	return os.ReadFile(f.path(key))
}

func (f *FileBackend) Write(key string, b []byte) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), b, 0o600)
}

func (f *FileBackend) Delete(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemBackend is an in-memory Backend for tests.
type MemBackend struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemBackend() *MemBackend {
	return &MemBackend{m: map[string][]byte{}}
}

func (f *MemBackend) Read(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.m[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), b...), nil
}

func (f *MemBackend) Write(key string, b []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = append([]byte(nil), b...)
	return nil
}

func (f *MemBackend) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	return nil
}
