// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Format selects how a command prints its result.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
	OutputYAML  Format = "yaml"
)

// Options holds the --output flag value for one command.
type Options struct {
	raw    string
	format Format
}

// AddOutputFlags registers --output/-o on cmd with def as the default.
func (o *Options) AddOutputFlags(cmd *cobra.Command, def Format) {
	cmd.Flags().StringVarP(&o.raw, "output", "o", string(def), "Output format: table, json, yaml")
}

// Resolve validates the flag value. Call it first thing in RunE.
func (o *Options) Resolve() error {
	switch f := Format(strings.ToLower(strings.TrimSpace(o.raw))); f {
	case OutputTable, OutputJSON, OutputYAML:
		o.format = f
		return nil
	case "":
		o.format = OutputTable
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (choose table, json, yaml)", o.raw)
	}
}

// Structured writes v as JSON or YAML according to the resolved format.
// It returns false for table output so the caller can render its own.
func (o *Options) Structured(w io.Writer, v any) (bool, error) {
	switch o.format {
	case OutputJSON:
		return true, JSON(w, v)
	case OutputYAML:
		return true, YAML(w, v)
	default:
		return false, nil
	}
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table accumulates rows for a bordered text table.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable starts a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row; missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows added.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// Truncate shortens s to at most n characters, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
