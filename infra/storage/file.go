package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File keeps every key in one JSON object on disk. Every operation reloads
// the file first, so several processes sharing a path see each other's
// writes and a write only replaces the key it names. Each write rewrites the
// whole file through a temp file and rename.
type File struct {
	mu    sync.Mutex
	path  string
	quota int
}

// OpenFile opens the store at path, creating parent directories. A missing
// file is an empty store; a malformed one is an error.
func OpenFile(path string, quota int) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	f := &File{path: path, quota: quota}
	if _, _, err := f.read(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, _, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, used, err := f.read()
	if err != nil {
		return err
	}
	oldSize := 0
	if old, had := data[key]; had {
		oldSize = entrySize(key, old)
	}
	if err := checkQuota(f.quota, used, oldSize, entrySize(key, value), key); err != nil {
		return err
	}
	data[key] = value
	return f.flush(data)
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, _, err := f.read()
	if err != nil {
		return err
	}
	if _, had := data[key]; !had {
		return nil
	}
	delete(data, key)
	return f.flush(data)
}

// read loads the current file contents and their footprint.
func (f *File) read() (map[string]string, int, error) {
	data := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return data, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, 0, fmt.Errorf("parsing %s: %w", f.path, err)
		}
	}
	used := 0
	for k, v := range data {
		used += entrySize(k, v)
	}
	return data, used, nil
}

func (f *File) flush(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}
