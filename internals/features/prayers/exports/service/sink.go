package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink tujuan file hasil export. key selalu path relatif pakai "/".
type Sink interface {
	Put(ctx context.Context, key string, data []byte) error
	Name() string
}

// DirSink menulis ke direktori lokal (default "dist").
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	if dir == "" {
		dir = "dist"
	}
	return &DirSink{Dir: dir}
}

func (s *DirSink) Name() string { return "dir:" + s.Dir }

// Put tulis ke file sementara lalu rename, supaya pembaca tidak pernah
// melihat file setengah jadi.
func (s *DirSink) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
