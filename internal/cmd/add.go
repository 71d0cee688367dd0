// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/spf13/cobra"
)

func newAddCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var (
		title     string
		pages     string
		published string
		genre     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Long: fmt.Sprintf(`Add a book. Every field is validated before anything is written.

Genres: %s (names are case-insensitive).

Examples:
  arc-bookshelf add --title "Dune" --pages 412 --published 1965-08-01 --genre fiction
  arc-bookshelf add -t "Ariel" -p 96 -d 1965-03-01 -g 3`, genreChoices()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := catalog.ParsePageCount(pages)
			if err != nil {
				return err
			}

			book, err := store.Add(catalog.Fields{
				Title:     title,
				PageCount: n,
				Published: published,
				Genre:     genre,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s, %d pages, %s)\n", book.Title, book.Genre, book.PageCount, book.Published)
			return nil
		},
	}

	lim := store.Limits()
	cmd.Flags().StringVarP(&title, "title", "t", "", fmt.Sprintf("Book title (max %d characters)", lim.TitleMax))
	cmd.Flags().StringVarP(&pages, "pages", "p", "", fmt.Sprintf("Page count (%d-%d)", lim.PagesMin, lim.PagesMax))
	cmd.Flags().StringVarP(&published, "published", "d", "", "Publication date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Genre name or number")
	for _, name := range []string{"title", "pages", "published", "genre"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
