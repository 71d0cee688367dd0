// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package catalog holds the book record model, the field validators that
// guard it, and the Store that persists the whole catalog as one blob.
//
// Every Store operation reloads the catalog from its Backend, applies a
// single mutation and writes the full sequence back. Nothing is cached
// between calls.
package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to the matching sentinel so
// callers can use errors.Is for the class and errors.As for the detail.
var (
	ErrInvalidField    = errors.New("invalid field")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidGenre    = errors.New("invalid genre")
	ErrInvalidPosition = errors.New("invalid position")
	ErrStorageCorrupt  = errors.New("catalog storage corrupt")
	ErrStorageIO       = errors.New("catalog storage i/o failure")
)

// FieldError reports a text or numeric constraint failure on one field.
type FieldError struct {
	Field  string
	Detail string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

// DateErrorKind distinguishes the ways a publication date can be rejected.
type DateErrorKind int

const (
	DateUnparsable DateErrorKind = iota + 1
	DateMonthRange
	DateDayRange
)

func (k DateErrorKind) String() string {
	switch k {
	case DateUnparsable:
		return "unparsable"
	case DateMonthRange:
		return "month out of range"
	case DateDayRange:
		return "day invalid for month"
	default:
		return "unknown"
	}
}

// DateError reports why a date string was rejected.
type DateError struct {
	Kind   DateErrorKind
	Text   string
	Detail string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Text, e.Detail)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// GenreError echoes genre input that matched no known tag.
type GenreError struct {
	Raw string
}

func (e *GenreError) Error() string {
	return fmt.Sprintf("invalid genre: %q", e.Raw)
}

func (e *GenreError) Unwrap() error { return ErrInvalidGenre }

func positionError(pos, n int) error {
	return fmt.Errorf("%w: %d (catalog has %d record(s))", ErrInvalidPosition, pos, n)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStorageCorrupt, fmt.Sprintf(format, args...))
}
