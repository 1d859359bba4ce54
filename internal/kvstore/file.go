package kvstore

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// File stores each key as its own JSON file under a data directory.
type File struct {
	mu  sync.Mutex
	dir string
	log *log.Logger
}

func NewFile(dir string, logger *log.Logger) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &File{dir: dir, log: logger}, nil
}

func (s *File) path(key string) string {
	// Keys are internal constants, but keep them from escaping the data dir.
	return filepath.Join(s.dir, filepath.Base(key)+".json")
}

func (s *File) Load(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Printf("kvstore: read %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.log.Printf("kvstore: corrupt blob %q ignored: %v", key, err)
		return false
	}
	return true
}

func (s *File) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), b, 0o644)
}

func (s *File) Close() error { return nil }
