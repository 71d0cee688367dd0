// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import "strings"

// Search returns the 1-based positions of books whose title contains query,
// compared after Fold. A blank query matches nothing.
func Search(books []Book, query string) []int {
	q := Fold(query)
	if q == "" {
		return nil
	}
	var hits []int
	for i, b := range books {
		if strings.Contains(Fold(b.Title), q) {
			hits = append(hits, i+1)
		}
	}
	return hits
}
