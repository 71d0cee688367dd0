// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"
)

func newWatchCmd(cfg *config.Config, store catalog.CatalogStore) *cobra.Command {
	var (
		debounceMs int
		oneShot    bool
	)

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a folder for YAML drop files and auto-import",
		Long: `Monitor a directory for *.yaml / *.yml files and import their books as
they are created or rewritten (same format as 'arc-bookshelf import').
When a file is rewritten only entries not seen in it before are imported,
so appending to a drop file adds just the new books.

Examples:
  arc-bookshelf watch ~/Inbox/books
  arc-bookshelf watch ~/Inbox/books --one-shot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := expandHome(args[0])

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("cannot access directory %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			if debounceMs < 0 {
				return fmt.Errorf("debounce must not be negative, got %d", debounceMs)
			}

			imp := newDropImporter(store, cmd.OutOrStdout())
			if oneShot {
				return imp.processExisting(dir)
			}
			return imp.watch(cmd.Context(), dir, time.Duration(debounceMs)*time.Millisecond)
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Debounce milliseconds for file events")
	cmd.Flags().BoolVar(&oneShot, "one-shot", false, "Import existing files and exit (don't watch)")

	return cmd
}

// dropImporter imports YAML drop files into a store. It is not safe for
// concurrent use; watch calls it only from its event loop.
type dropImporter struct {
	store catalog.CatalogStore
	out   io.Writer
	log   *slog.Logger
	seen  map[string]map[uint64]bool // path -> hashes of entries already processed
}

func newDropImporter(store catalog.CatalogStore, out io.Writer) *dropImporter {
	return &dropImporter{
		store: store,
		out:   out,
		log:   slog.Default().With("component", "watch"),
		seen:  make(map[string]map[uint64]bool),
	}
}

// entryKey hashes the normalised fields of an import entry.
func entryKey(f catalog.Fields) uint64 {
	return xxh3.HashString(fmt.Sprintf("%s\x00%d\x00%s\x00%s",
		strings.TrimSpace(f.Title), f.PageCount, strings.TrimSpace(f.Published), catalog.Fold(f.Genre)))
}

// importFile imports the entries of path that were not processed by an
// earlier call for the same path. Appending to a drop file therefore adds
// only the appended books. Rejected entries count as processed; fixing one
// changes its hash and it is tried again.
func (d *dropImporter) importFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	entries, err := catalog.ReadImport(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	seen := d.seen[path]
	if seen == nil {
		seen = make(map[uint64]bool)
	}
	var (
		fresh   []catalog.Fields
		indexes []int // position of each fresh entry in the file
		keys    []uint64
	)
	for i, f := range entries {
		k := entryKey(f)
		if seen[k] {
			continue
		}
		fresh = append(fresh, f)
		indexes = append(indexes, i)
		keys = append(keys, k)
	}
	if len(fresh) == 0 {
		d.log.Debug("no new entries, skipping", "path", path, "entries", len(entries))
		return nil
	}
	d.log.Info("importing", "path", path, "entries", len(fresh))

	res, err := d.store.AddAll(fresh)
	if err != nil {
		return err
	}
	for i := range res.Rejected {
		res.Rejected[i].Index = indexes[res.Rejected[i].Index]
	}
	fmt.Fprintf(d.out, "%s:\n", filepath.Base(path))
	reportImport(d.out, res)

	for _, k := range keys {
		seen[k] = true
	}
	d.seen[path] = seen
	return nil
}

func (d *dropImporter) processExisting(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && isImportFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(d.out, "No YAML files found")
		return nil
	}

	failed := 0
	for _, f := range files {
		if err := d.importFile(f); err != nil {
			// Storage failures stop the run; a bad drop file does not.
			if isStorageError(err) {
				return err
			}
			d.log.Warn("import failed", "path", f, "error", err)
			fmt.Fprintf(d.out, "Failed: %s - %v\n", filepath.Base(f), err)
			failed++
		}
	}

	fmt.Fprintf(d.out, "\nProcessed %d file(s), %d failed\n", len(files), failed)
	return nil
}

// watch runs until ctx is cancelled or the watcher closes. Debounce timers
// only hand paths back to the loop, so store calls never overlap.
func (d *dropImporter) watch(ctx context.Context, dir string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan string)
	pending := make(map[string]*time.Timer)

	d.log.Info("watching", "dir", dir, "debounce", debounce)
	fmt.Fprintf(d.out, "Watching %s (Ctrl+C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			for _, t := range pending {
				t.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isImportFile(event.Name) || !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) {
				continue
			}

			// Reset the timer while the file is still being written.
			if t, exists := pending[event.Name]; exists {
				t.Stop()
			}
			name := event.Name
			pending[name] = time.AfterFunc(debounce, func() {
				select {
				case ready <- name:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(pending, path)
			if err := d.importFile(path); err != nil {
				if isStorageError(err) {
					return err
				}
				d.log.Warn("import failed", "path", path, "error", err)
				fmt.Fprintf(d.out, "Failed: %s - %v\n", filepath.Base(path), err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.log.Error("watcher error", "error", err)
		}
	}
}
