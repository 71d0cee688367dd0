// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Genre is the closed set of categories a book can carry. The zero value
// is not a valid genre.
type Genre int

const (
	GenreFiction Genre = iota + 1
	GenreBiography
	GenrePoetry
	GenreChildrens
	GenreRomance
	GenreOther
)

// Genres lists every genre in menu order.
var Genres = []Genre{GenreFiction, GenreBiography, GenrePoetry, GenreChildrens, GenreRomance, GenreOther}

var genreNames = map[Genre]string{
	GenreFiction:   "Fiction",
	GenreBiography: "Biography",
	GenrePoetry:    "Poetry",
	GenreChildrens: "Children's",
	GenreRomance:   "Romance",
	GenreOther:     "Other",
}

// genreAliases maps folded spellings to a genre, English and Portuguese.
var genreAliases = map[string]Genre{
	"fiction":    GenreFiction,
	"ficcao":     GenreFiction,
	"biography":  GenreBiography,
	"biografia":  GenreBiography,
	"poetry":     GenrePoetry,
	"poesia":     GenrePoetry,
	"children's": GenreChildrens,
	"childrens":  GenreChildrens,
	"children":   GenreChildrens,
	"infantil":   GenreChildrens,
	"romance":    GenreRomance,
	"other":      GenreOther,
	"outro":      GenreOther,
}

func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return "Genre(" + strconv.Itoa(int(g)) + ")"
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	_, ok := genreNames[g]
	return ok
}

// ParseGenre maps user text to a Genre. Matching ignores case, surrounding
// whitespace and diacritics, and also accepts the 1-based menu number.
func ParseGenre(text string) (Genre, error) {
	key := Fold(text)
	if g, ok := genreAliases[key]; ok {
		return g, nil
	}
	for i, g := range Genres {
		if key == strconv.Itoa(i+1) {
			return g, nil
		}
	}
	return 0, &GenreError{Raw: text}
}

// Fold normalises text for loose comparison. Diacritics are dropped and
// letters lowercased.
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(text))
	if err != nil {
		folded = strings.TrimSpace(text)
	}
	folded = strings.ReplaceAll(folded, "’", "'")
	return strings.ToLower(folded)
}

func (g Genre) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, &GenreError{Raw: g.String()}
	}
	return []byte(g.String()), nil
}

// UnmarshalText accepts only canonical names. Persisted data is written by
// MarshalText, so anything else means the store was tampered with.
func (g *Genre) UnmarshalText(b []byte) error {
	for _, candidate := range Genres {
		if genreNames[candidate] == string(b) {
			*g = candidate
			return nil
		}
	}
	return &GenreError{Raw: string(b)}
}
