package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"mockapi/internal/mockgen"
)

// fileEntry is the on-disk value for one endpoint.
type fileEntry struct {
	Fields []mockgen.Field `json:"fields"`
}

// FileStore keeps one JSON document per subject under a directory, mapping
// endpoint name to its fields. Writes are read-modify-write of the whole
// document, serialized within this process.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates dir if needed and returns a FileStore rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(subject string) string {
	return filepath.Join(s.dir, url.PathEscape(subject)+".json")
}

// read returns the subject's document, or an empty one if none exists.
func (s *FileStore) read(subject string) (map[string]fileEntry, error) {
	data, err := os.ReadFile(s.path(subject))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]fileEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	doc := map[string]fileEntry{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("file store: decode %s: %w", s.path(subject), err)
	}
	return doc, nil
}

// Save replaces the endpoint's fields in the subject's document.
func (s *FileStore) Save(_ context.Context, subject, endpoint string, fields []mockgen.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(subject)
	if err != nil {
		return err
	}
	doc[endpoint] = fileEntry{Fields: cloneFields(fields)}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	// write to a temp file and rename so readers never see a partial document
	tmp, err := os.CreateTemp(s.dir, ".schema-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(subject))
}

// Load returns the endpoint's fields.
func (s *FileStore) Load(_ context.Context, subject, endpoint string) ([]mockgen.Field, error) {
	doc, err := s.read(subject)
	if err != nil {
		return nil, err
	}
	entry, ok := doc[endpoint]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneFields(entry.Fields), nil
}

// List returns the subject's endpoint names, sorted.
func (s *FileStore) List(_ context.Context, subject string) ([]string, error) {
	doc, err := s.read(subject)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
