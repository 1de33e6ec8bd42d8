// Package knowledge persists query/response pairs in a single JSON file.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/pkg/filesystem"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// ErrEmptyKey is returned by Store for blank queries.
var ErrEmptyKey = errors.New("knowledge: empty key")

// FileStore keeps the whole map in memory and rewrites the backing file on
// every Store.
type FileStore struct {
	path string
	mu   sync.RWMutex
	data map[string]string
}

// NewFileStore returns an empty store backed by path. Call Load to read
// existing entries.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: filesystem.ExpandPath(path),
		data: make(map[string]string),
	}
}

// Open is NewFileStore followed by Load.
func Open(path string) (*FileStore, error) {
	s := NewFileStore(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory map with the file contents. A missing file
// yields an empty store. On a decode error the current map is left as is.
// Blank keys would match every query and are dropped.
func (s *FileStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.data = make(map[string]string)
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("read knowledge file: %w", err)
	}
	data := make(map[string]string)
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("decode knowledge file %s: %w", s.path, err)
		}
	}
	for key := range data {
		if strings.TrimSpace(key) == "" {
			delete(data, key)
		}
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Search returns the response whose key contains the query, or is contained
// in it, ignoring case. The longest such key wins, ties go to the
// lexicographically smaller key.
func (s *FileStore) Search(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	best, found := "", false
	for key := range s.data {
		k := strings.ToLower(key)
		if !strings.Contains(k, q) && !strings.Contains(q, k) {
			continue
		}
		if !found || len(key) > len(best) || (len(key) == len(best) && key < best) {
			best, found = key, true
		}
	}
	if !found {
		return "", false
	}
	return s.data[best], true
}

// Store upserts by exact key and persists the full map.
func (s *FileStore) Store(query, response string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[query] = response
	return s.persistLocked()
}

// Entries lists all pairs sorted by query.
func (s *FileStore) Entries() []domain.KnowledgeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.KnowledgeEntry, 0, len(s.data))
	for q, r := range s.data {
		out = append(out, domain.KnowledgeEntry{Query: q, Response: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Query < out[j].Query })
	return out
}

// Len reports the number of stored pairs.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Clear drops every entry and rewrites the file as an empty object.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return s.persistLocked()
}

// Path exposes the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) persistLocked() error {
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode knowledge: %w", err)
	}
	if err := filesystem.WriteFileAtomic(s.path, payload, domain.DataFilePermissions); err != nil {
		return fmt.Errorf("persist knowledge: %w", err)
	}
	return nil
}

var _ ports.KnowledgeRepository = (*FileStore)(nil)
