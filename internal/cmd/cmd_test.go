// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/logging"
)

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	return catalog.NewStore(catalog.NewMemoryBackend(), catalog.WithLogger(logging.Discard()))
}

// run executes one command line against store and returns the combined
// stdout and stderr.
func run(t *testing.T, store catalog.CatalogStore, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{Storage: config.StorageMemory}
	root := NewRootCmd(cfg, store)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, store catalog.CatalogStore, args ...string) string {
	t.Helper()
	out, err := run(t, store, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func addDune(t *testing.T, store catalog.CatalogStore) {
	t.Helper()
	mustRun(t, store, "add", "--title", "Dune", "--pages", "412", "--published", "1965-08-01", "--genre", "Ficção")
}

func TestAddAndList(t *testing.T) {
	store := newTestStore(t)

	out := mustRun(t, store, "add", "--title", "  Dune ", "--pages", "412", "--published", "1965-08-01", "--genre", "Ficção")
	if !strings.Contains(out, `Added "Dune" (Fiction, 412 pages, 1965-08-01)`) {
		t.Errorf("unexpected add output: %q", out)
	}
	mustRun(t, store, "add", "-t", "Ariel", "-p", "96", "-d", "1965-3-1", "-g", "3")

	out = mustRun(t, store, "list", "-o", "json")
	var listed []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Genre    string `json:"genre"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 books, got %d", len(listed))
	}
	if listed[0].Position != 1 || listed[0].Title != "Dune" || listed[0].Genre != "Fiction" {
		t.Errorf("unexpected first entry: %+v", listed[0])
	}
	if listed[1].Position != 2 || listed[1].Genre != "Poetry" {
		t.Errorf("unexpected second entry: %+v", listed[1])
	}

	out = mustRun(t, store, "list")
	if !strings.Contains(out, "Total: 2 book(s)") {
		t.Errorf("table output missing total: %q", out)
	}

	out = mustRun(t, store, "list", "--genre", "poetry", "-o", "json")
	if strings.Contains(out, "Dune") || !strings.Contains(out, "Ariel") {
		t.Errorf("genre filter not applied: %q", out)
	}
}

func TestListEmpty(t *testing.T) {
	out := mustRun(t, newTestStore(t), "list")
	if !strings.Contains(out, "No books found") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"zero pages", []string{"--title", "X", "--pages", "0", "--published", "2020-01-01", "--genre", "fiction"}, catalog.ErrInvalidField},
		{"non-numeric pages", []string{"--title", "X", "--pages", "lots", "--published", "2020-01-01", "--genre", "fiction"}, catalog.ErrInvalidField},
		{"bad date", []string{"--title", "X", "--pages", "10", "--published", "2023-02-29", "--genre", "fiction"}, catalog.ErrInvalidDate},
		{"bad genre", []string{"--title", "X", "--pages", "10", "--published", "2020-01-01", "--genre", "sci-fi"}, catalog.ErrInvalidGenre},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, store, append([]string{"add"}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	books, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 0 {
		t.Errorf("rejected adds must not be stored, got %d books", len(books))
	}
}

func TestRemoveCommand(t *testing.T) {
	store := newTestStore(t)
	addDune(t, store)

	out := mustRun(t, store, "remove", "0")
	if !strings.Contains(out, "Removal cancelled.") {
		t.Errorf("unexpected output: %q", out)
	}

	for _, arg := range []string{"2", "abc", "-1"} {
		if _, err := run(t, store, "remove", "--", arg); !errors.Is(err, catalog.ErrInvalidPosition) {
			t.Errorf("remove %s: expected ErrInvalidPosition, got %v", arg, err)
		}
	}

	out = mustRun(t, store, "rm", "1")
	if !strings.Contains(out, `Removed "Dune"`) {
		t.Errorf("unexpected output: %q", out)
	}
	books, _ := store.List()
	if len(books) != 0 {
		t.Errorf("expected empty catalog, got %d", len(books))
	}
}

func TestEditCommand(t *testing.T) {
	store := newTestStore(t)
	addDune(t, store)

	out := mustRun(t, store, "edit", "1", "--title", "Dune Messiah", "--pages", "0")
	if !strings.Contains(out, "Warning:") {
		t.Errorf("expected a warning for the rejected page count: %q", out)
	}
	if !strings.Contains(out, `Updated "Dune Messiah": title`) {
		t.Errorf("unexpected output: %q", out)
	}

	books, _ := store.List()
	if books[0].Title != "Dune Messiah" || books[0].PageCount != 412 {
		t.Errorf("unexpected record after edit: %+v", books[0])
	}

	out = mustRun(t, store, "edit", "1")
	if !strings.Contains(out, "No changes") {
		t.Errorf("unexpected output: %q", out)
	}

	out = mustRun(t, store, "edit", "0", "--title", "Ignored")
	if !strings.Contains(out, "Edit cancelled.") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestImportExportCommands(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "books.yaml")
	data := `books:
  - title: Dune
    page_count: 412
    publication_date: 1965-08-01
    genre: fiction
  - title: ""
    page_count: 10
    publication_date: 2000-01-01
    genre: other
  - title: Ariel
    page_count: 96
    publication_date: 1965-03-01
    genre: Poesia
`
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, store, "import", src, "--dry-run")
	if !strings.Contains(out, "2 valid, 1 rejected") {
		t.Errorf("unexpected dry run output: %q", out)
	}
	if books, _ := store.List(); len(books) != 0 {
		t.Fatalf("dry run wrote %d books", len(books))
	}

	out = mustRun(t, store, "import", src)
	if !strings.Contains(out, "Imported 2 book(s), rejected 1.") {
		t.Errorf("unexpected import output: %q", out)
	}
	if !strings.Contains(out, "Rejected entry 2 (untitled)") {
		t.Errorf("rejected entry not reported: %q", out)
	}

	dst := filepath.Join(dir, "export.yaml")
	mustRun(t, store, "export", "-f", "yaml", "--output-file", dst)

	f, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	entries, err := catalog.ReadImport(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Title != "Dune" || entries[1].Genre != "Poetry" {
		t.Errorf("unexpected exported entries: %+v", entries)
	}

	out = mustRun(t, store, "export", "-f", "markdown")
	if !strings.Contains(out, "| 1 | Dune | 412 | 1965-08-01 | Fiction |") {
		t.Errorf("unexpected markdown: %q", out)
	}

	if _, err := run(t, store, "export", "-f", "csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestWatchOneShot(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()

	drop := "- title: Dune\n  page_count: 412\n  publication_date: 1965-08-01\n  genre: fiction\n"
	if err := os.WriteFile(filepath.Join(dir, "new.yml"), []byte(drop), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("books: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, store, "watch", dir, "--one-shot")
	if !strings.Contains(out, "Processed 2 file(s), 1 failed") {
		t.Errorf("unexpected output: %q", out)
	}
	books, _ := store.List()
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("unexpected catalog: %+v", books)
	}
}

func TestDropImporterImportsOnlyNewEntries(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "drop.yaml")
	dune := "- title: Dune\n  page_count: 412\n  publication_date: 1965-08-01\n  genre: fiction\n"
	emma := "- title: Emma\n  page_count: 474\n  publication_date: 1815-12-23\n  genre: romance\n"
	badAriel := "- title: Ariel\n  page_count: 0\n  publication_date: 1965-03-01\n  genre: poetry\n"
	ariel := "- title: Ariel\n  page_count: 96\n  publication_date: 1965-03-01\n  genre: poetry\n"

	var out bytes.Buffer
	imp := newDropImporter(store, &out)
	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := imp.importFile(path); err != nil {
			t.Fatal(err)
		}
	}
	titles := func() []string {
		t.Helper()
		books, err := store.List()
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, b := range books {
			got = append(got, b.Title)
		}
		return got
	}

	write(dune)
	write(dune)
	if got := titles(); len(got) != 1 {
		t.Fatalf("unchanged file imported twice: %v", got)
	}

	write(dune + emma + badAriel)
	if got := strings.Join(titles(), ","); got != "Dune,Emma" {
		t.Fatalf("after append: %s, want Dune,Emma", got)
	}
	if !strings.Contains(out.String(), "Rejected entry 3 (Ariel)") {
		t.Errorf("rejected entry should be reported by its position in the file: %q", out.String())
	}

	write(dune + emma + ariel)
	if got := strings.Join(titles(), ","); got != "Dune,Emma,Ariel" {
		t.Errorf("after fixing the rejected entry: %s, want Dune,Emma,Ariel", got)
	}
}

func TestStatsAndDuplicates(t *testing.T) {
	store := newTestStore(t)
	addDune(t, store)
	addDune(t, store)
	mustRun(t, store, "add", "-t", "Ariel", "-p", "96", "-d", "1965-03-01", "-g", "poetry")

	out := mustRun(t, store, "stats", "-o", "json")
	var st struct {
		Books      int            `json:"books"`
		TotalPages int            `json:"total_pages"`
		ByGenre    map[string]int `json:"by_genre"`
	}
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("decode stats: %v\n%s", err, out)
	}
	if st.Books != 3 || st.TotalPages != 920 || st.ByGenre["Fiction"] != 2 {
		t.Errorf("unexpected stats: %+v", st)
	}

	out = mustRun(t, store, "duplicates")
	if !strings.Contains(out, "Found 1 potential duplicate pairs") {
		t.Errorf("unexpected duplicates output: %q", out)
	}

	if _, err := run(t, store, "duplicates", "--threshold", "1.5"); err == nil {
		t.Error("expected error for out-of-range threshold")
	}
}

func TestSearchCommand(t *testing.T) {
	store := newTestStore(t)
	addDune(t, store)
	mustRun(t, store, "add", "-t", "Memórias Póstumas de Brás Cubas", "-p", "208", "-d", "1881-01-01", "-g", "fiction")

	out := mustRun(t, store, "search", "postumas")
	if !strings.Contains(out, "Found 1 result(s)") {
		t.Errorf("unexpected output: %q", out)
	}

	out = mustRun(t, store, "search", "ulysses")
	if !strings.Contains(out, "No books found matching") {
		t.Errorf("unexpected output: %q", out)
	}
}
