// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"strings"
)

// NewBook validates f against lim and builds a Book. Checks run in a fixed
// order (title, pages, date, genre) and stop at the first failure. ID and
// timestamps are left for the Store to assign.
func NewBook(f Fields, lim Limits) (Book, error) {
	if err := CheckText(FieldTitle, f.Title, lim.TitleMax); err != nil {
		return Book{}, err
	}
	if err := CheckRange(FieldPageCount, f.PageCount, lim.PagesMin, lim.PagesMax); err != nil {
		return Book{}, err
	}
	published, err := ParseDate(f.Published)
	if err != nil {
		return Book{}, err
	}
	if err := CheckRequired(FieldGenre, f.Genre); err != nil {
		return Book{}, err
	}
	genre, err := ParseGenre(f.Genre)
	if err != nil {
		return Book{}, err
	}

	return Book{
		Title:     strings.TrimSpace(f.Title),
		PageCount: f.PageCount,
		Published: published,
		Genre:     genre,
	}, nil
}

// applyPatch returns a copy of b with every valid, non-blank patch field
// applied. Rejected fields keep their old value and are returned as
// warnings.
func applyPatch(b Book, p Patch, lim Limits) (Book, []string, []error) {
	var (
		changed  []string
		warnings []error
	)

	if v := strings.TrimSpace(p.Title); v != "" {
		if err := CheckText(FieldTitle, v, lim.TitleMax); err != nil {
			warnings = append(warnings, err)
		} else if v != b.Title {
			b.Title = v
			changed = append(changed, FieldTitle)
		}
	}

	if v := strings.TrimSpace(p.PageCount); v != "" {
		n, err := ParsePageCount(v)
		if err == nil {
			err = CheckRange(FieldPageCount, n, lim.PagesMin, lim.PagesMax)
		}
		if err != nil {
			warnings = append(warnings, err)
		} else if n != b.PageCount {
			b.PageCount = n
			changed = append(changed, FieldPageCount)
		}
	}

	if v := strings.TrimSpace(p.Published); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			warnings = append(warnings, err)
		} else if d != b.Published {
			b.Published = d
			changed = append(changed, FieldPublished)
		}
	}

	if v := strings.TrimSpace(p.Genre); v != "" {
		g, err := ParseGenre(v)
		if err != nil {
			warnings = append(warnings, err)
		} else if g != b.Genre {
			b.Genre = g
			changed = append(changed, FieldGenre)
		}
	}

	return b, changed, warnings
}

// checkStored runs the structural checks applied to records read back from
// storage. Limits are configurable, so only presence and positivity are
// enforced; a narrower configuration must not make an existing catalog
// unreadable.
func checkStored(b Book) error {
	if err := CheckRequired(FieldTitle, b.Title); err != nil {
		return err
	}
	if b.PageCount < 1 {
		return &FieldError{Field: FieldPageCount, Detail: "must be positive"}
	}
	if b.Published.IsZero() {
		return &FieldError{Field: FieldPublished, Detail: "is missing"}
	}
	if !b.Genre.Valid() {
		return &GenreError{Raw: b.Genre.String()}
	}
	return nil
}
