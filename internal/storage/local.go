// Package storage implements the flat-directory blob store that uploaded
// files live in. Names are generated server-side and unique, so one
// directory with no nesting is enough.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	return &Store{root: root}, nil
}

// Save writes the contents of r under name. The name must not exist yet,
// a clash means the generator handed out a duplicate
func (s *Store) Save(name string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s, %w", name, err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return 0, fmt.Errorf("failed to write %s, %w", name, err)
	}

	return n, nil
}

func (s *Store) Read(name string) ([]byte, error) {
	return os.ReadFile(s.path(name))
}

func (s *Store) Open(name string) (io.ReadCloser, error) {
	return os.Open(s.path(name))
}

func (s *Store) Remove(name string) error {
	return os.Remove(s.path(name))
}

// path joins name onto the root while refusing anything that could climb
// out of the storage directory
func (s *Store) path(name string) string {
	return filepath.Join(s.root, filepath.Base(strings.TrimSpace(name)))
}
