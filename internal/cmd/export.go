// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/spf13/cobra"
)

func newExportCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var (
		format  string
		outFile string
		genre   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to JSON, YAML or Markdown",
		Long: `Export your catalog for use in other tools. YAML output can be read back
with 'arc-bookshelf import'.

Examples:
  arc-bookshelf export --format markdown
  arc-bookshelf export -f yaml --output-file books.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := store.List()
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}

			if genre != "" {
				g, err := catalog.ParseGenre(genre)
				if err != nil {
					return err
				}
				filtered := make([]catalog.Book, 0, len(books))
				for _, b := range books {
					if b.Genre == g {
						filtered = append(filtered, b)
					}
				}
				books = filtered
			}

			data, err := catalog.Export(books, format)
			if err != nil {
				return err
			}

			if outFile == "" || outFile == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d book(s) to %s\n", len(books), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", catalog.ExportJSON, "Export format: json, yaml, markdown")
	cmd.Flags().StringVar(&outFile, "output-file", "-", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Only export this genre")

	return cmd
}
