// Package record keeps the best score in a plain text file holding a single
// integer.
package record

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/beka-birhanu/maze-runner/service/i"
)

var _ i.RecordStore = &FileStore{}

// FileStore is a record store backed by one file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store that reads and writes path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Record implements i.RecordStore. A missing file is created holding 0.
func (s *FileStore) Record(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// SetRecord implements i.RecordStore. A lower score leaves the file as it is.
func (s *FileStore) SetRecord(ctx context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	if score <= current {
		return nil
	}
	return s.write(score)
}

// read returns the stored score. The caller must hold the lock.
func (s *FileStore) read() (int, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, s.write(0)
	}
	if err != nil {
		return 0, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("record file %s: %w", s.path, err)
	}
	return value, nil
}

func (s *FileStore) write(score int) error {
	return os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0o644)
}
