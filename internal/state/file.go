package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dokzlo13/wallslapper/internal/color"
)

// DefaultFileName is the state file created in the user's home directory.
const DefaultFileName = ".wallslappercurrent"

// FileStore keeps the color as a bare "#RRGGBB" string in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns ~/.wallslappercurrent.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the stored color. A missing file is ErrNotFound.
func (s *FileStore) Read() (color.Color, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return color.Color{}, ErrNotFound
	}
	if err != nil {
		return color.Color{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	c, err := color.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return color.Color{}, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return c, nil
}

// Write overwrites the file with the normalized color string.
func (s *FileStore) Write(c color.Color) error {
	if err := os.WriteFile(s.path, []byte(c.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the state file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
