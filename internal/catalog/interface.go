// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

// CatalogStore is the set of operations the command layer needs.
// *Store is the only implementation; commands depend on this interface so
// they can be exercised against any backend.
type CatalogStore interface {
	Load() ([]Book, error)
	List() ([]Book, error)
	Add(Fields) (*Book, error)
	AddAll([]Fields) (*ImportResult, error)
	Remove(pos int) (*Book, error)
	Edit(pos int, p Patch) (*EditResult, error)
	Persist([]Book) error
	Limits() Limits
}

var _ CatalogStore = (*Store)(nil)
