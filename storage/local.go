package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	Dir string
}

func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	return &LocalStore{Dir: dir}, nil
}

func (l *LocalStore) Save(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	p, err := l.resolve(key)
	if err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create dest file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("failed to write dest file, %w", err)
	}

	return nil
}

func (l *LocalStore) Delete(_ context.Context, key string) error {
	p, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file, %w", err)
	}

	return nil
}

// resolve rejects keys that would escape the storage directory
func (l *LocalStore) resolve(key string) (string, error) {
	p := filepath.Join(l.Dir, path.Clean("/"+key))

	if !strings.HasPrefix(p, l.Dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	return p, nil
}
