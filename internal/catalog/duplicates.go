// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"sort"
	"strings"
	"unicode"
)

// DuplicatePair is two catalog positions whose titles look alike.
type DuplicatePair struct {
	A      int     `json:"a" yaml:"a"` // 1-based positions, A < B
	B      int     `json:"b" yaml:"b"`
	Score  float64 `json:"score" yaml:"score"`
	Reason string  `json:"reason" yaml:"reason"`
}

// FindDuplicates compares every pair of books and returns those scoring at
// least threshold, best first. An identical title and publication date is
// always reported with score 1.
func FindDuplicates(books []Book, threshold float64) []DuplicatePair {
	var pairs []DuplicatePair
	for i := 0; i < len(books); i++ {
		for j := i + 1; j < len(books); j++ {
			a, b := books[i], books[j]
			if Fold(a.Title) == Fold(b.Title) && a.Published == b.Published {
				pairs = append(pairs, DuplicatePair{A: i + 1, B: j + 1, Score: 1, Reason: "same title and publication date"})
				continue
			}
			if sim := TitleSimilarity(a.Title, b.Title); sim >= threshold {
				pairs = append(pairs, DuplicatePair{A: i + 1, B: j + 1, Score: sim, Reason: "similar title"})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})
	return pairs
}

// TitleSimilarity is the Jaccard index over the folded words of a and b
// longer than two letters. Words are runs of letters and digits in any
// script.
func TitleSimilarity(a, b string) float64 {
	setA := titleWords(a)
	setB := titleWords(b)

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func titleWords(s string) map[string]bool {
	set := make(map[string]bool)
	words := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if len([]rune(w)) > 2 {
			set[w] = true
		}
	}
	return set
}
