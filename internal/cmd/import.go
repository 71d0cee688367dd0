// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/spf13/cobra"
)

func newImportCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import books from a YAML file",
		Long: `Import books from a YAML file. Each entry is validated like 'add';
valid entries are appended in file order with one write and rejected
entries are reported with the reason.

The file holds either a top-level list or a 'books:' key:

  books:
    - title: Dune
      page_count: 412
      publication_date: 1965-08-01
      genre: fiction

Examples:
  arc-bookshelf import ~/books.yaml
  arc-bookshelf import export.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := expandHome(args[0])

			entries, err := readImportFile(path)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries found in %s\n", path)
				return nil
			}

			if dryRun {
				rejected := 0
				for i, f := range entries {
					if _, err := catalog.NewBook(f, store.Limits()); err != nil {
						fmt.Fprintf(cmd.OutOrStdout(), "  entry %d: %v\n", i+1, err)
						rejected++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d valid, %d rejected (dry run, nothing written)\n", len(entries)-rejected, rejected)
				return nil
			}

			res, err := store.AddAll(entries)
			if err != nil {
				return err
			}
			reportImport(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Validate entries without writing")
	return cmd
}

// readImportFile opens path and decodes its import entries.
func readImportFile(path string) ([]catalog.Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := catalog.ReadImport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func reportImport(w io.Writer, res *catalog.ImportResult) {
	for _, b := range res.Added {
		fmt.Fprintf(w, "Imported: %s\n", b.Title)
	}
	for _, r := range res.Rejected {
		title := strings.TrimSpace(r.Fields.Title)
		if title == "" {
			title = "untitled"
		}
		fmt.Fprintf(w, "Rejected entry %d (%s): %v\n", r.Index+1, title, r.Err)
	}
	fmt.Fprintf(w, "\nImported %d book(s), rejected %d.\n", len(res.Added), len(res.Rejected))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func isImportFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func isStorageError(err error) bool {
	return errors.Is(err, catalog.ErrStorageCorrupt) || errors.Is(err, catalog.ErrStorageIO)
}
