package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidName = errors.New("invalid file name")

// Store keeps uploaded videos in a flat directory.
type Store struct {
	dir        string
	extensions []string
}

func NewStore(dir string, extensions []string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload dir is empty")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	return &Store{
		dir:        dir,
		extensions: extensions,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save names the upload and writes it into the store. The file becomes
// visible under its final name only after it was fully written.
func (s *Store) Save(original string, r io.Reader) (string, error) {
	name, err := Name(original, s.extensions)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("unable to write upload: %w", err)
	}

	// CreateTemp uses 0600, stored videos are served by other processes too
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", err
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return "", err
	}

	return name, nil
}

// ResolvePath maps a stored name to a path inside the store directory.
// Names cannot escape the directory.
func (s *Store) ResolvePath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidName
	}

	clean := filepath.Clean("/" + filepath.FromSlash(name))
	if clean == string(filepath.Separator) {
		return "", ErrInvalidName
	}

	return filepath.Join(s.dir, clean), nil
}
