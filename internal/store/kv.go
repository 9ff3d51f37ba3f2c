package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const storageFile = "storage.json"

// KV is the durable client storage: a single JSON file of key/value pairs,
// the terminal counterpart of the browser's localStorage. Writes are
// synchronous; every mutation lands on disk before returning.
type KV struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// OpenKV loads (or creates) the storage file under dir.
func OpenKV(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	kv := &KV{
		path: filepath.Join(dir, storageFile),
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(kv.path)
	if errors.Is(err, os.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &kv.data); err != nil {
			return nil, fmt.Errorf("decode storage: %w", err)
		}
	}
	return kv, nil
}

// Get decodes the value under key into out. The boolean reports presence.
func (s *KV) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key and flushes to disk.
func (s *KV) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flush()
}

// Delete removes the given keys and flushes to disk.
func (s *KV) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return s.flush()
}

// Has reports whether key is present.
func (s *KV) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

func (s *KV) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return nil
}
