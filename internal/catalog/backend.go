// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Backend stores the encoded catalog as one blob.
// Implementations may use a file or plain memory.
type Backend interface {
	// ReadAll returns the stored blob, or nil if nothing was ever written.
	ReadAll() ([]byte, error)
	// WriteAll replaces the stored blob.
	WriteAll(data []byte) error
}

// FileBackend keeps the catalog in a single file.
//
// Writes go to a sibling ".tmp" file which is synced and then renamed over
// the catalog, so readers see either the old or the new content. There is
// no file locking: two processes writing the same catalog is undefined.
// On filesystems where rename is not atomic a crash can still leave a
// truncated catalog; Decode reports that as ErrStorageCorrupt.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for path, creating its parent directory.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	return &FileBackend{path: path}, nil
}

func (b *FileBackend) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	return data, nil
}

func (b *FileBackend) WriteAll(data []byte) error {
	tmpPath := b.path + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	return nil
}

// MemoryBackend keeps the blob in process memory. Nothing survives exit.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) ReadAll() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) WriteAll(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}
