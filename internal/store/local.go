package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileSuffix = ".json"

// local keeps each store in <dir>/<name>.json.
type local struct {
	dir string
}

// NewLocalStore returns a filesystem store rooted at dir. The directory is
// created on the first Put if it does not exist yet.
func NewLocalStore(dir string) (Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("store.NewLocalStore: failed to make path '%s' absolute: %w", dir, err)
	}
	return &local{dir: abs}, nil
}

func (s *local) pathFor(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("store.Local: invalid name %q", name)
	}
	return filepath.Join(s.dir, name+fileSuffix), nil
}

func (s *local) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoObject
	}
	return data, err
}

// Put overwrites the file in place. There is no rename step, so a crash mid
// write can leave a truncated file behind.
func (s *local) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFor(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store.Local: failed to create '%s': %w", s.dir, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
