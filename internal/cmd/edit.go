// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/spf13/cobra"
)

func newEditCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var patch catalog.Patch

	cmd := &cobra.Command{
		Use:   "edit <position>",
		Short: "Change fields of a book",
		Long: `Edit the book at the given position. Omitted or blank flags keep the
current value. A value that fails validation is reported and the current
value is kept; the other fields are still saved. Position 0 cancels.

Examples:
  arc-bookshelf edit 2 --title "Dune Messiah"
  arc-bookshelf edit 1 --pages 420 --genre fiction`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			res, err := store.Edit(pos, patch)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if res == nil {
				fmt.Fprintln(w, "Edit cancelled.")
				return nil
			}

			for _, warn := range res.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; keeping current value\n", warn)
			}
			if len(res.Changed) == 0 {
				fmt.Fprintf(w, "No changes to %q\n", res.After.Title)
				return nil
			}
			fmt.Fprintf(w, "Updated %q: %s\n", res.After.Title, strings.Join(res.Changed, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&patch.Title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&patch.PageCount, "pages", "p", "", "New page count")
	cmd.Flags().StringVarP(&patch.Published, "published", "d", "", "New publication date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&patch.Genre, "genre", "g", "", "New genre name or number")

	return cmd
}
