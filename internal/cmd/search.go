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

func newSearchCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var out output.Options
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search book titles",
		Long: `Search titles, ignoring case and accents. The first column is the
position used by edit and remove.

Examples:
  arc-bookshelf search dune              # Dune, Dune Messiah, ...
  arc-bookshelf search "postumas"        # matches "Póstumas"
  arc-bookshelf search the --limit 10    # Limit results`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			query := args[0]
			books, err := store.List()
			if err != nil {
				return err
			}

			hits := catalog.Search(books, query)
			if limit > 0 && len(hits) > limit {
				hits = hits[:limit]
			}
			found := make([]listedBook, 0, len(hits))
			for _, pos := range hits {
				found = append(found, listedBook{Position: pos, Book: books[pos-1]})
			}

			w := cmd.OutOrStdout()
			if done, err := out.Structured(w, found); done {
				return err
			}

			if len(found) == 0 {
				fmt.Fprintf(w, "No books found matching %q\n", query)
				return nil
			}

			fmt.Fprintf(w, "Found %d result(s) for %q:\n\n", len(found), query)

			table := output.NewTable("#", "Title", "Published", "Genre")
			for _, b := range found {
				table.AddRow(strconv.Itoa(b.Position), output.Truncate(b.Title, 45), b.Published.String(), b.Genre.String())
			}
			return table.Render(w)
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Limit number of results (0 for all)")

	return cmd
}
