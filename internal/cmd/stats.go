// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newStatsCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long:  `Display statistics about your catalog: book and page counts, genres, oldest and newest titles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			books, err := store.List()
			if err != nil {
				return err
			}
			st := catalog.Summarize(books)

			w := cmd.OutOrStdout()
			if done, err := out.Structured(w, newStatsView(st)); done {
				return err
			}

			fmt.Fprintf(w, "Catalog Statistics\n")
			fmt.Fprintf(w, "==================\n\n")
			fmt.Fprintf(w, "Books:         %d\n", st.Books)
			fmt.Fprintf(w, "Total pages:   %d\n", st.TotalPages)
			fmt.Fprintln(w, "By genre:")
			for _, g := range catalog.Genres {
				if c := st.ByGenre[g]; c > 0 {
					fmt.Fprintf(w, "  %s: %d\n", g, c)
				}
			}
			if st.Oldest != nil {
				fmt.Fprintf(w, "Oldest:        %s (%s)\n", st.Oldest.Title, st.Oldest.Published)
				fmt.Fprintf(w, "Newest:        %s (%s)\n", st.Newest.Title, st.Newest.Published)
			}

			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

// statsView keys the genre counts by name for structured output.
type statsView struct {
	Books      int            `json:"books" yaml:"books"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	ByGenre    map[string]int `json:"by_genre" yaml:"by_genre"`
	Oldest     *catalog.Book  `json:"oldest,omitempty" yaml:"oldest,omitempty"`
	Newest     *catalog.Book  `json:"newest,omitempty" yaml:"newest,omitempty"`
}

func newStatsView(st catalog.Stats) statsView {
	v := statsView{
		Books:      st.Books,
		TotalPages: st.TotalPages,
		ByGenre:    make(map[string]int, len(st.ByGenre)),
		Oldest:     st.Oldest,
		Newest:     st.Newest,
	}
	for g, c := range st.ByGenre {
		v.ByGenre[g.String()] = c
	}
	return v
}
