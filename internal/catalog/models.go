// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"strings"
	"time"
)

// Field names used in FieldError and EditResult.
const (
	FieldTitle     = "title"
	FieldPageCount = "page_count"
	FieldPublished = "publication_date"
	FieldGenre     = "genre"
)

// Book is one catalog entry. Construct it with NewBook; the Store never
// holds a Book that did not pass validation.
type Book struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	PageCount int       `json:"page_count" yaml:"page_count"`
	Published Date      `json:"publication_date" yaml:"publication_date"`
	Genre     Genre     `json:"genre" yaml:"genre"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Fields is the raw, unvalidated input for a new book. The YAML tags match
// the import file format.
type Fields struct {
	Title     string `json:"title" yaml:"title"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	Published string `json:"publication_date" yaml:"publication_date"`
	Genre     string `json:"genre" yaml:"genre"`
}

// Patch carries replacement text for Edit. A blank field keeps the
// current value.
type Patch struct {
	Title     string
	PageCount string
	Published string
	Genre     string
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return strings.TrimSpace(p.Title) == "" &&
		strings.TrimSpace(p.PageCount) == "" &&
		strings.TrimSpace(p.Published) == "" &&
		strings.TrimSpace(p.Genre) == ""
}

// Limits bounds the text and numeric fields of a Book.
type Limits struct {
	TitleMax int
	PagesMin int
	PagesMax int
}

// DefaultLimits returns the stock limits: titles up to 100 characters and
// 1 to 2000 pages.
func DefaultLimits() Limits {
	return Limits{TitleMax: 100, PagesMin: 1, PagesMax: 2000}
}

// EditResult describes what Edit did to a record.
type EditResult struct {
	Before   Book
	After    Book
	Changed  []string // field names that were replaced
	Warnings []error  // rejected replacements; the prior value was kept
}

// ImportError ties a rejected batch entry to its index in the input.
type ImportError struct {
	Index  int
	Fields Fields
	Err    error
}

// ImportResult is returned by AddAll.
type ImportResult struct {
	Added    []Book
	Rejected []ImportError
}
