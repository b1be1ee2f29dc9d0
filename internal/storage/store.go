// Package storage is a small key-value store backed by a single JSON file.
// Values are opaque strings, normally JSON documents, the same way the mobile
// app keeps its data.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/logger"
)

// Store reads and writes the whole file on every call. It is not safe for
// concurrent writers.
type Store struct {
	path   string
	logger *zap.Logger
}

// New returns a store over path. The file is created on the first write.
func New(path string, log *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.WithFields(log, zap.String(logger.FieldPath, path)),
	}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// GetItem returns the value under key. A missing file or key reports false.
func (s *Store) GetItem(key string) (string, bool, error) {
	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

// SetItem stores value under key.
func (s *Store) SetItem(key, value string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	items[key] = value
	return s.save(items)
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *Store) RemoveItem(key string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.save(items)
}

// Keys lists the stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) load() (map[string]string, error) {
	items := make(map[string]string)

	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat store: %w", err)
	}
	if stat.Size() == 0 {
		return items, nil
	}

	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", s.path, err)
	}
	return items, nil
}

// save replaces the store file atomically via a sibling temp file.
func (s *Store) save(items map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	file, err := os.CreateTemp(dir, ".store_*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(file.Name())

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		file.Close()
		return fmt.Errorf("encode store: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}

	if err := os.Rename(file.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}

	s.logger.Debug("store saved", zap.Int("keys", len(items)))
	return nil
}
