// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CheckText fails when value is blank after trimming, contains control
// characters such as newlines or tabs, or is longer than maxLen characters.
func CheckText(field, value string, maxLen int) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return &FieldError{Field: field, Detail: "must not be empty"}
	}
	if strings.IndexFunc(v, unicode.IsControl) >= 0 {
		return &FieldError{Field: field, Detail: "must not contain control characters"}
	}
	if utf8.RuneCountInString(v) > maxLen {
		return &FieldError{Field: field, Detail: fmt.Sprintf("must not exceed %d characters", maxLen)}
	}
	return nil
}

// CheckRange fails when value lies outside [min, max].
func CheckRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &FieldError{Field: field, Detail: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return nil
}

// CheckRequired fails when value is blank after trimming. Genre input is
// run through it before ParseGenre so an empty choice reads as missing
// rather than unknown.
func CheckRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Detail: "is required"}
	}
	return nil
}

// ParsePageCount converts user text to a page count. Range checks are left
// to CheckRange.
func ParsePageCount(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &FieldError{Field: FieldPageCount, Detail: fmt.Sprintf("%q is not a whole number", text)}
	}
	return n, nil
}
