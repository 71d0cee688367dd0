// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

// listedBook pairs a record with its position for structured output.
type listedBook struct {
	Position int `json:"position" yaml:"position"`
	catalog.Book `yaml:",inline"`
}

func newListCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var out output.Options
	var genre string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List books in the catalog",
		Long: `List every book in insertion order. The number in the first column is
the position used by edit and remove.

Examples:
  arc-bookshelf list                  # List all books
  arc-bookshelf list --genre poetry   # Only poetry
  arc-bookshelf list -o json          # Machine-readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			var filter catalog.Genre
			if genre != "" {
				g, err := catalog.ParseGenre(genre)
				if err != nil {
					return err
				}
				filter = g
			}

			books, err := store.List()
			if err != nil {
				return err
			}

			listed := make([]listedBook, 0, len(books))
			for i, b := range books {
				if filter != 0 && b.Genre != filter {
					continue
				}
				listed = append(listed, listedBook{Position: i + 1, Book: b})
			}

			w := cmd.OutOrStdout()
			if done, err := out.Structured(w, listed); done {
				return err
			}

			if len(listed) == 0 {
				fmt.Fprintln(w, "No books found in catalog.")
				fmt.Fprintln(w, "Use 'arc-bookshelf add' to add one.")
				return nil
			}

			table := output.NewTable("#", "Title", "Pages", "Published", "Genre")
			for _, b := range listed {
				table.AddRow(strconv.Itoa(b.Position), output.Truncate(b.Title, 45), strconv.Itoa(b.PageCount), b.Published.String(), b.Genre.String())
			}
			if err := table.Render(w); err != nil {
				return err
			}

			fmt.Fprintf(w, "\nTotal: %d book(s)\n", len(listed))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Filter by genre")

	return cmd
}
