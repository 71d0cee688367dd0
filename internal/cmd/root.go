// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for arc-bookshelf.
func NewRootCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {

	root := &cobra.Command{
		Use:   "arc-bookshelf",
		Short: "Manage your personal book catalog",
		Long: `Keep a validated catalog of the books you own.

arc-bookshelf provides tools to:
- Add books with title, page count, publication date and genre
- List, search, edit and remove entries by position
- Import books from YAML and watch a folder for new ones
- Export the catalog and report statistics and likely duplicates`,
		SilenceUsage: true,
	}

	root.AddCommand(newAddCmd(cfg, store))
	root.AddCommand(newListCmd(cfg, store))
	root.AddCommand(newRemoveCmd(cfg, store))
	root.AddCommand(newEditCmd(cfg, store))
	root.AddCommand(newStatsCmd(cfg, store))
	root.AddCommand(newExportCmd(cfg, store))
	root.AddCommand(newImportCmd(cfg, store))
	root.AddCommand(newWatchCmd(cfg, store))
	root.AddCommand(newDuplicatesCmd(cfg, store))
	root.AddCommand(newSearchCmd(cfg, store))

	return root
}

// parsePosition reads a 1-based catalog position. 0 is allowed and means
// cancel.
func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || pos < 0 {
		return 0, fmt.Errorf("%w: %q is not a catalog position", catalog.ErrInvalidPosition, arg)
	}
	return pos, nil
}

func genreChoices() string {
	names := make([]string, 0, len(catalog.Genres))
	for i, g := range catalog.Genres {
		names = append(names, fmt.Sprintf("%d=%s", i+1, g))
	}
	return strings.Join(names, ", ")
}
