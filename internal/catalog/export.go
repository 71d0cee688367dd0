// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"fmt"
	"io"
	"time"
	"unicode"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	ExportJSON     = "json"
	ExportYAML     = "yaml"
	ExportMarkdown = "markdown"
)

// Export renders books in the given format.
func Export(books []Book, format string) ([]byte, error) {
	switch format {
	case ExportJSON:
		if books == nil {
			books = []Book{}
		}
		return json.MarshalIndent(books, "", "  ")
	case ExportYAML:
		return yaml.Marshal(books)
	case ExportMarkdown:
		return exportMarkdown(books), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (choose json, yaml, markdown)", format)
	}
}

func exportMarkdown(books []Book) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Book Catalog\n\n")
	fmt.Fprintf(&buf, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Total books: %d\n\n", len(books))
	if len(books) == 0 {
		return buf.Bytes()
	}

	buf.WriteString("| # | Title | Pages | Published | Genre |\n")
	buf.WriteString("|---|-------|-------|-----------|-------|\n")
	for i, b := range books {
		fmt.Fprintf(&buf, "| %d | %s | %d | %s | %s |\n", i+1, escapeMarkdown(b.Title), b.PageCount, b.Published, b.Genre)
	}
	return buf.Bytes()
}

func escapeMarkdown(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		if unicode.IsControl(r) {
			buf.WriteByte(' ')
			continue
		}
		if r == '|' || r == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// ImportFile is the YAML document accepted by ReadImport:
//
//	books:
//	  - title: Dune
//	    page_count: 412
//	    publication_date: "1965-08-01"
//	    genre: fiction
//
// A bare top-level list of entries is accepted too.
type ImportFile struct {
	Books []Fields `yaml:"books"`
}

// ReadImport decodes import entries from r. Entries are not validated;
// pass them to Store.AddAll.
func ReadImport(r io.Reader) ([]Fields, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var entries []Fields
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse import: %w", err)
		}
		return entries, nil
	}
	var f ImportFile
	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}
	return f.Books, nil
}
