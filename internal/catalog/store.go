// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Store owns the catalog. Each public method loads the full catalog from
// the backend, applies at most one mutation and writes everything back.
type Store struct {
	backend  Backend
	limits   Limits
	compress bool
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLimits overrides DefaultLimits.
func WithLimits(l Limits) Option {
	return func(s *Store) { s.limits = l }
}

// WithLogger sets the logger used for storage and edit diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCompression toggles zstd compression of the payload. Reading handles
// both forms regardless of this setting.
func WithCompression(on bool) Option {
	return func(s *Store) { s.compress = on }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store on top of backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		limits:   DefaultLimits(),
		compress: true,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenFile creates a store backed by the file at path.
func OpenFile(path string, opts ...Option) (*Store, error) {
	b, err := NewFileBackend(path)
	if err != nil {
		return nil, err
	}
	return NewStore(b, opts...), nil
}

// Limits returns the field limits the store validates against.
func (s *Store) Limits() Limits { return s.limits }

// Load reads the catalog. A backend that was never written yields an empty
// catalog; undecodable content yields ErrStorageCorrupt.
func (s *Store) Load() ([]Book, error) {
	data, err := s.backend.ReadAll()
	if err != nil {
		return nil, err
	}
	books, err := Decode(data)
	if err != nil {
		s.logger.Error("catalog load failed", "bytes", len(data), "error", err)
		return nil, err
	}
	s.logger.Debug("catalog loaded", "records", len(books), "bytes", len(data))
	return books, nil
}

// Persist encodes books and replaces the stored catalog.
func (s *Store) Persist(books []Book) error {
	data, err := Encode(books, s.compress, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.backend.WriteAll(data); err != nil {
		s.logger.Error("catalog persist failed", "records", len(books), "error", err)
		return err
	}
	s.logger.Debug("catalog persisted", "records", len(books), "bytes", len(data))
	return nil
}

// List returns every book in insertion order.
func (s *Store) List() ([]Book, error) {
	return s.Load()
}

// Add validates f and appends the resulting book. On a validation error the
// stored catalog is not touched.
func (s *Store) Add(f Fields) (*Book, error) {
	b, err := NewBook(f, s.limits)
	if err != nil {
		return nil, err
	}
	books, err := s.Load()
	if err != nil {
		return nil, err
	}
	s.stamp(&b)
	books = append(books, b)
	if err := s.Persist(books); err != nil {
		return nil, err
	}
	s.logger.Info("book added", "id", b.ID, "title", b.Title, "position", len(books))
	return &b, nil
}

// AddAll validates every entry and appends the valid ones in order with a
// single write. Nothing is written when every entry is rejected.
func (s *Store) AddAll(entries []Fields) (*ImportResult, error) {
	res := &ImportResult{}
	var valid []Book
	for i, f := range entries {
		b, err := NewBook(f, s.limits)
		if err != nil {
			res.Rejected = append(res.Rejected, ImportError{Index: i, Fields: f, Err: err})
			continue
		}
		valid = append(valid, b)
	}
	if len(valid) == 0 {
		return res, nil
	}

	books, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range valid {
		s.stamp(&valid[i])
	}
	books = append(books, valid...)
	if err := s.Persist(books); err != nil {
		return nil, err
	}
	res.Added = valid
	s.logger.Info("books imported", "added", len(res.Added), "rejected", len(res.Rejected))
	return res, nil
}

// Remove deletes the book at the 1-based position pos and returns it.
// Position 0 is a cancel: it returns (nil, nil) and writes nothing.
func (s *Store) Remove(pos int) (*Book, error) {
	if pos == 0 {
		return nil, nil
	}
	books, err := s.Load()
	if err != nil {
		return nil, err
	}
	if pos < 0 || pos > len(books) {
		return nil, positionError(pos, len(books))
	}

	removed := books[pos-1]
	books = append(books[:pos-1], books[pos:]...)
	if err := s.Persist(books); err != nil {
		return nil, err
	}
	s.logger.Info("book removed", "id", removed.ID, "title", removed.Title, "position", pos)
	return &removed, nil
}

// Edit applies p to the book at the 1-based position pos. Position 0 is a
// cancel as in Remove. Blank patch fields keep the current value; a field
// that fails validation also keeps it and is reported in
// EditResult.Warnings. The catalog is written even if every field was
// rejected. An empty patch returns the record without writing.
func (s *Store) Edit(pos int, p Patch) (*EditResult, error) {
	if pos == 0 {
		return nil, nil
	}
	books, err := s.Load()
	if err != nil {
		return nil, err
	}
	if pos < 0 || pos > len(books) {
		return nil, positionError(pos, len(books))
	}

	before := books[pos-1]
	if p.Empty() {
		return &EditResult{Before: before, After: before}, nil
	}
	after, changed, warnings := applyPatch(before, p, s.limits)
	for _, w := range warnings {
		s.logger.Warn("edit kept previous value", "position", pos, "id", before.ID, "reason", w)
	}
	if len(changed) > 0 {
		after.UpdatedAt = s.now().UTC()
	}
	books[pos-1] = after
	if err := s.Persist(books); err != nil {
		return nil, err
	}
	s.logger.Info("book edited", "id", after.ID, "position", pos, "changed", changed)
	return &EditResult{Before: before, After: after, Changed: changed, Warnings: warnings}, nil
}

func (s *Store) stamp(b *Book) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := s.now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
}
