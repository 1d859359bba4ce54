package kvstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite stores every blob in a single state table, one row per key.
type SQLite struct {
	mu  sync.Mutex
	db  *sql.DB
	log *log.Logger
}

func NewSQLite(path string, logger *log.Logger) (*SQLite, error) {
	if logger == nil {
		logger = log.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLite{db: db, log: logger}, nil
}

func (s *SQLite) Load(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Printf("kvstore: select %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.log.Printf("kvstore: corrupt blob %q ignored: %v", key, err)
		return false
	}
	return true
}

func (s *SQLite) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO state (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, key, payload)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }
