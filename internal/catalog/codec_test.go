// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func sampleBooks() []Book {
	ts := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	return []Book{
		{ID: "a", Title: "Dune", PageCount: 412, Published: Date{1965, time.August, 1}, Genre: GenreFiction, CreatedAt: ts, UpdatedAt: ts},
		{ID: "b", Title: "Ariel", PageCount: 96, Published: Date{1965, time.March, 1}, Genre: GenrePoetry, CreatedAt: ts, UpdatedAt: ts},
	}
}

func TestHeaderLayout(t *testing.T) {
	data, err := Encode(sampleBooks(), true, 1700000000000)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(data) <= HeaderSize {
		t.Fatalf("encoded size %d, want more than header", len(data))
	}
	if data[HeaderSize-1] != '\n' {
		t.Error("header must end with a newline")
	}
	var hdr Header
	if err := json.Unmarshal(bytes.TrimSpace(data[:HeaderSize]), &hdr); err != nil {
		t.Fatalf("header is not JSON: %v", err)
	}
	if hdr.Type != FormatType || hdr.Version != FormatVersion || hdr.Count != 2 || !hdr.Compressed {
		t.Errorf("header = %+v", hdr)
	}
	if len(hdr.Checksum) != 16 {
		t.Errorf("checksum %q, want 16 hex chars", hdr.Checksum)
	}
}

func TestEncodeUncompressedIsReadable(t *testing.T) {
	data, err := Encode(sampleBooks(), false, 0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	payload := string(data[HeaderSize:])
	if !strings.Contains(payload, `"genre":"Fiction"`) || !strings.Contains(payload, `"publication_date":"1965-08-01"`) {
		t.Errorf("payload not in expected JSON form: %s", payload)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	valid, err := Encode(sampleBooks(), true, 0)
	if err != nil {
		t.Fatal(err)
	}
	plain, err := Encode(sampleBooks(), false, 0)
	if err != nil {
		t.Fatal(err)
	}

	mutate := func(src []byte, fn func([]byte) []byte) []byte {
		return fn(append([]byte(nil), src...))
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated header", valid[:HeaderSize/2]},
		{"truncated payload", valid[:len(valid)-3]},
		{"garbage", []byte(strings.Repeat("x", 300))},
		{"header only", valid[:HeaderSize]},
		{"payload bit flip", mutate(valid, func(b []byte) []byte {
			b[len(b)-1] ^= 0xff
			return b
		})},
		{"header not json", mutate(valid, func(b []byte) []byte {
			b[0] = '!'
			return b
		})},
		{"wrong type", mutate(valid, func(b []byte) []byte {
			return bytes.Replace(b, []byte(FormatType), []byte("arc-bookshelX"), 1)
		})},
		{"future version", mutate(valid, func(b []byte) []byte {
			return bytes.Replace(b, []byte(`"_v":1`), []byte(`"_v":9`), 1)
		})},
		{"unterminated header", mutate(valid, func(b []byte) []byte {
			b[HeaderSize-1] = ' '
			return b
		})},
		{"count mismatch", mutate(plain, func(b []byte) []byte {
			return bytes.Replace(b, []byte(`"_n":2`), []byte(`"_n":3`), 1)
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := Decode(tt.data)
			if !errors.Is(err, ErrStorageCorrupt) {
				t.Fatalf("Decode = %d books, %v; want ErrStorageCorrupt", len(books), err)
			}
		})
	}
}

// reencode builds a blob with a valid header around an arbitrary payload,
// so decoding gets past the checksum and reaches record checks.
func reencode(t *testing.T, payload string, count int) []byte {
	t.Helper()
	hdr := Header{Type: FormatType, Version: FormatVersion, Count: count, Checksum: checksum([]byte(payload))}
	head, err := hdr.encode()
	if err != nil {
		t.Fatal(err)
	}
	return append(head, payload...)
}

func TestDecodeRejectsInvalidRecords(t *testing.T) {
	tests := map[string]string{
		"unknown genre": `[{"id":"a","title":"Dune","page_count":412,"publication_date":"1965-08-01","genre":"Jazz"}]`,
		"bad date":      `[{"id":"a","title":"Dune","page_count":412,"publication_date":"2023-02-29","genre":"Fiction"}]`,
		"blank title":   `[{"id":"a","title":" ","page_count":412,"publication_date":"1965-08-01","genre":"Fiction"}]`,
		"zero pages":    `[{"id":"a","title":"Dune","page_count":0,"publication_date":"1965-08-01","genre":"Fiction"}]`,
		"missing genre": `[{"id":"a","title":"Dune","page_count":10,"publication_date":"1965-08-01"}]`,
		"missing date":  `[{"id":"a","title":"Dune","page_count":10,"genre":"Fiction"}]`,
		"not an array":  `{"id":"a"}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(reencode(t, payload, 1)); !errors.Is(err, ErrStorageCorrupt) {
				t.Fatalf("Decode = %v, want ErrStorageCorrupt", err)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	books, err := Decode(nil)
	if err != nil || books == nil || len(books) != 0 {
		t.Fatalf("Decode(nil) = %v, %v; want empty slice", books, err)
	}
}

func TestLoadCorruptFileIsFatal(t *testing.T) {
	s, path := openTestStore(t)
	seed(t, s, 2)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.List(); !errors.Is(err, ErrStorageCorrupt) {
		t.Fatalf("List on truncated file = %v, want ErrStorageCorrupt", err)
	}
	if _, err := s.Add(dune()); !errors.Is(err, ErrStorageCorrupt) {
		t.Fatalf("Add on truncated file = %v, want ErrStorageCorrupt", err)
	}
	after, _ := os.ReadFile(path)
	if len(after) != len(data)/2 {
		t.Error("Add over a corrupt catalog must not rewrite it")
	}
}
