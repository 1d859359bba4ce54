package kvstore

import (
	"encoding/json"
	"sync"
)

// Memory keeps blobs in a map. Dev/test use.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: map[string][]byte{}}
}

func (s *Memory) Load(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

func (s *Memory) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.blobs[key] = b
	return nil
}

func (s *Memory) Close() error { return nil }
