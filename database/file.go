package database

import (
	"context"
	"os"
	"path/filepath"
)

// FileKV persists the document as a single JSON file on disk. Writes go
// through a temp file and rename so a crash mid-write never leaves a torn
// document behind.
type FileKV struct {
	dir string
}

// NewFileKV creates a file backend rooted at dir, creating it if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	// Keys contain a namespace colon; flatten for the filesystem.
	name := ""
	for _, r := range key {
		if r == ':' || r == '/' {
			r = '_'
		}
		name += string(r)
	}
	return filepath.Join(f.dir, name+".json")
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *FileKV) Close() error {
	return nil
}
