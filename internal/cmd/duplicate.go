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

func newDuplicatesCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var (
		threshold float64 // similarity threshold (0-1)
		out       output.Options
	)

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Detect duplicate or similar books",
		Long:  "Scan your catalog for likely duplicates by comparing titles and publication dates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if threshold < 0 || threshold > 1 {
				return fmt.Errorf("threshold must be between 0 and 1, got %.2f", threshold)
			}
			if err := out.Resolve(); err != nil {
				return err
			}

			books, err := store.List()
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}
			pairs := catalog.FindDuplicates(books, threshold)

			w := cmd.OutOrStdout()
			if done, err := out.Structured(w, pairs); done {
				return err
			}

			if len(books) < 2 {
				fmt.Fprintln(w, "Not enough books to compare.")
				return nil
			}
			if len(pairs) == 0 {
				fmt.Fprintf(w, "No duplicates found (threshold %.2f)\n", threshold)
				return nil
			}

			fmt.Fprintf(w, "Found %d potential duplicate pairs:\n\n", len(pairs))
			for i, p := range pairs {
				a, b := books[p.A-1], books[p.B-1]
				fmt.Fprintf(w, "[%d] Score: %.2f (%s)\n", i+1, p.Score, p.Reason)
				fmt.Fprintf(w, "    #%d: %s (%s)\n", p.A, output.Truncate(a.Title, 60), a.Published)
				fmt.Fprintf(w, "    #%d: %s (%s)\n", p.B, output.Truncate(b.Title, 60), b.Published)
				fmt.Fprintln(w)
			}

			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.7, "Similarity threshold (0-1)")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
