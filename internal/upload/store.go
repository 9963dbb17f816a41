package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shenikar/geo_checkin/internal/errs"
)

// PhotoStore - хранилище файлов по относительному пути
type PhotoStore interface {
	Save(ctx context.Context, relPath string, data []byte) error
}

// LocalStore сохраняет файлы на локальный диск внутри Root
type LocalStore struct {
	Root string
}

// NewLocalStore создает хранилище с корнем root
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// Save записывает файл, перезаписывая существующий
func (s *LocalStore) Save(ctx context.Context, relPath string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return &errs.StorageError{Op: "mkdir", Path: filepath.Dir(full), Err: err}
	}

	// запись через временный файл, чтобы читатель не увидел наполовину записанное фото
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return &errs.StorageError{Op: "create", Path: full, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &errs.StorageError{Op: "write", Path: full, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &errs.StorageError{Op: "close", Path: full, Err: err}
	}
	if err := os.Rename(tmpName, full); err != nil {
		_ = os.Remove(tmpName)
		return &errs.StorageError{Op: "rename", Path: full, Err: err}
	}
	return nil
}

// resolve проверяет, что итоговый путь лежит внутри корня
func (s *LocalStore) resolve(relPath string) (string, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", &errs.StorageError{Op: "resolve", Path: s.Root, Err: err}
	}
	full := filepath.Join(root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &errs.StorageError{Op: "resolve", Path: relPath, Err: fmt.Errorf("path escapes storage root")}
	}
	return full, nil
}
