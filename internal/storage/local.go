package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore guarda os avatars no filesystem local, abaixo de baseDir.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Write(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	handle := newHandle(contentType)
	path := filepath.Join(s.baseDir, filepath.FromSlash(handle))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	// Grava em arquivo temporário e renomeia: o handle só passa a existir
	// completo, nunca meio escrito.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return handle, nil
}

func (s *LocalStore) Delete(ctx context.Context, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(handle))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Exists verifica se o handle resolve para um objeto no disco.
func (s *LocalStore) Exists(handle string) bool {
	path := filepath.Join(s.baseDir, filepath.FromSlash(handle))
	_, err := os.Stat(path)
	return err == nil
}

var _ Store = (*LocalStore)(nil)
