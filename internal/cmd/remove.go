// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/spf13/cobra"
)

func newRemoveCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <position>",
		Aliases: []string{"rm"},
		Short:   "Remove a book by its list position",
		Long: `Remove the book at the given position (see 'arc-bookshelf list').
Position 0 cancels without changing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			removed, err := store.Remove(pos)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if removed == nil {
				fmt.Fprintln(w, "Removal cancelled.")
				return nil
			}
			fmt.Fprintf(w, "Removed %q\n", removed.Title)
			return nil
		},
	}
}
