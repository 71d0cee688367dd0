// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

// Stats summarises a catalog.
type Stats struct {
	Books      int           `json:"books" yaml:"books"`
	TotalPages int           `json:"total_pages" yaml:"total_pages"`
	ByGenre    map[Genre]int `json:"by_genre" yaml:"by_genre"`
	Oldest     *Book         `json:"oldest,omitempty" yaml:"oldest,omitempty"`
	Newest     *Book         `json:"newest,omitempty" yaml:"newest,omitempty"`
}

// Summarize computes Stats for books. Ties on publication date keep the
// book listed first.
func Summarize(books []Book) Stats {
	st := Stats{Books: len(books), ByGenre: make(map[Genre]int)}
	for i := range books {
		b := &books[i]
		st.TotalPages += b.PageCount
		st.ByGenre[b.Genre]++
		if st.Oldest == nil || b.Published.Before(st.Oldest.Published) {
			st.Oldest = b
		}
		if st.Newest == nil || st.Newest.Published.Before(b.Published) {
			st.Newest = b
		}
	}
	return st
}
