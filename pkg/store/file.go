package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/stepgraph/pkg/errors"
)

// FileStore keeps one JSON file per snapshot in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-backed store.
// If baseDir is empty, defaults to ~/.config/stepgraph/documents/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "stepgraph", "documents")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the base directory for snapshot files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) docPath(id string) (string, error) {
	if err := errors.ValidateDocumentID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	path, err := s.docPath(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.NoData()
	}
	if err != nil {
		return nil, fmt.Errorf("read document file: %w", err)
	}
	return decode(data)
}

func (s *FileStore) Set(ctx context.Context, snap *Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	path, err := s.docPath(snap.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write document file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.docPath(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}
	var all []*Snapshot
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name()))
		if err != nil {
			continue
		}
		if snap, err := decode(data); err == nil && snap.ID == strings.TrimSuffix(e.Name(), ".json") {
			all = append(all, snap)
		}
	}
	newestFirst(all)
	return all, nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read document dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.baseDir, e.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove document file: %w", err)
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
