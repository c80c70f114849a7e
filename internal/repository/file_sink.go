package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"BubbleIndex/internal/domain/models"
)

// FileSink writes the rendered document to a single path, replacing it atomically.
type FileSink struct {
	path string
	perm os.FileMode
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, perm: 0o644}
}

func (s *FileSink) Write(ctx context.Context, doc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, s.perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSink) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", models.NewError(models.ErrDataUnavailable, "", -1, "read %s", s.path).WithCause(err)
	}
	return string(b), nil
}

func (s *FileSink) Close() error { return nil }

func (s *FileSink) Path() string { return s.path }
