package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FileStorageInterface interface {
	// Save writes file under prefix/name, replacing any previous file, and returns the
	// path relative to the storage root.
	Save(file io.Reader, name string, prefix string) (string, error)
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	return &LocalFileStorage{basePath: abs}, nil
}

// resolve maps a relative storage path to a location inside basePath.
func (s *LocalFileStorage) resolve(rel string) (string, error) {
	full := filepath.Join(s.basePath, filepath.FromSlash(rel))
	if full != s.basePath && !strings.HasPrefix(full, s.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the storage root", rel)
	}
	return full, nil
}

func (s *LocalFileStorage) Save(file io.Reader, name string, prefix string) (string, error) {
	rel := filepath.ToSlash(filepath.Join(prefix, filepath.Base(name)))
	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	// write then rename so readers never see a half-written file
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return rel, nil
}

// Open returns an error matching fs.ErrNotExist when nothing is stored at path.
func (s *LocalFileStorage) Open(path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Delete treats a missing file as already deleted.
func (s *LocalFileStorage) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
