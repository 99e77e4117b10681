package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// fileFormat is the on-disk layout of a JSONStore
type fileFormat struct {
	Version   int                        `json:"version"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// JSONStore keeps every document in one JSON file. Writes go to a temp file
// that is renamed over the original, so a crash never leaves a torn file.
type JSONStore struct {
	path string
	mu   sync.Mutex
	docs map[string][]byte
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string][]byte)
	return s.save(s.docs)
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'streakly init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	s.docs = make(map[string][]byte, len(f.Documents))
	for k, v := range f.Documents {
		s.docs[k] = []byte(v)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes docs to disk. Documents that are not valid JSON are stored as
// JSON strings so the file itself stays parseable.
func (s *JSONStore) save(docs map[string][]byte) error {
	f := fileFormat{Version: 1, Documents: make(map[string]json.RawMessage, len(docs))}
	for k, v := range docs {
		if json.Valid(v) {
			f.Documents[k] = json.RawMessage(v)
			continue
		}
		quoted, err := json.Marshal(string(v))
		if err != nil {
			return fmt.Errorf("failed to encode document %q: %w", k, err)
		}
		f.Documents[k] = quoted
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	data, ok := s.docs[key]
	if !ok {
		return nil, ErrNoDocument
	}
	return append([]byte(nil), data...), nil
}

func (s *JSONStore) Put(key string, data []byte) error {
	return s.PutBatch(map[string][]byte{key: data})
}

// PutBatch replaces all docs with a single file rename.
func (s *JSONStore) PutBatch(docs map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return fmt.Errorf("storage not loaded")
	}

	next := make(map[string][]byte, len(s.docs)+len(docs))
	for k, v := range s.docs {
		next[k] = v
	}
	for k, v := range docs {
		next[k] = append([]byte(nil), v...)
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.docs = next
	return nil
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.docs[key]; !ok {
		return nil
	}

	next := make(map[string][]byte, len(s.docs))
	for k, v := range s.docs {
		if k != key {
			next[k] = v
		}
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.docs = next
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
