// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/xxh3"
)

// On-disk layout:
//
//	header  HeaderSize bytes, a JSON object padded with spaces and ending
//	        in a newline
//	payload JSON array of books, zstd-compressed when the header says so
//
// An empty blob is an empty catalog. Any other blob must carry a valid
// header and a payload whose checksum and record count match it.
const (
	HeaderSize    = 128
	FormatType    = "arc-bookshelf"
	FormatVersion = 1
)

// Header describes the payload that follows it.
type Header struct {
	Type       string `json:"_t"`
	Version    int    `json:"_v"`
	Compressed bool   `json:"_z"`
	Count      int    `json:"_n"`
	Checksum   string `json:"_c"` // xxh3 of the stored payload, 16 hex chars
	Timestamp  int64  `json:"_ts"`
}

// zstd encoders and decoders are safe for concurrent use and costly to
// build, so one of each is shared.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func checksum(b []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(b))
}

// encode serialises h to exactly HeaderSize bytes.
func (h *Header) encode() ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	if len(data) > HeaderSize-1 {
		return nil, fmt.Errorf("header too large: %d bytes", len(data))
	}
	buf := bytes.Repeat([]byte{' '}, HeaderSize)
	copy(buf, data)
	buf[HeaderSize-1] = '\n'
	return buf, nil
}

// Encode serialises books into a single blob.
func Encode(books []Book, compress bool, ts int64) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	payload, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	if compress {
		payload = zstdEncoder.EncodeAll(payload, nil)
	}

	hdr := Header{
		Type:       FormatType,
		Version:    FormatVersion,
		Compressed: compress,
		Count:      len(books),
		Checksum:   checksum(payload),
		Timestamp:  ts,
	}
	head, err := hdr.encode()
	if err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}

	out := make([]byte, 0, len(head)+len(payload))
	out = append(out, head...)
	return append(out, payload...), nil
}

// Decode parses a blob produced by Encode. Anything it cannot fully verify
// is reported as ErrStorageCorrupt.
func Decode(data []byte) ([]Book, error) {
	if len(data) == 0 {
		return []Book{}, nil
	}
	hdr, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[HeaderSize:]
	if sum := checksum(payload); sum != hdr.Checksum {
		return nil, corrupt("checksum mismatch: header %s, payload %s", hdr.Checksum, sum)
	}
	if hdr.Compressed {
		payload, err = zstdDecoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, corrupt("zstd: %v", err)
		}
	}

	var books []Book
	if err := json.Unmarshal(payload, &books); err != nil {
		return nil, corrupt("payload: %v", err)
	}
	if len(books) != hdr.Count {
		return nil, corrupt("record count %d, header says %d", len(books), hdr.Count)
	}
	for i, b := range books {
		if err := checkStored(b); err != nil {
			return nil, corrupt("record %d: %v", i+1, err)
		}
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func decodeHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, corrupt("truncated: %d bytes, header needs %d", len(data), HeaderSize)
	}
	if data[HeaderSize-1] != '\n' {
		return nil, corrupt("header not terminated")
	}
	var hdr Header
	if err := json.Unmarshal(bytes.TrimSpace(data[:HeaderSize]), &hdr); err != nil {
		return nil, corrupt("header: %v", err)
	}
	if hdr.Type != FormatType {
		return nil, corrupt("not a catalog file (type %s)", strconv.Quote(hdr.Type))
	}
	if hdr.Version != FormatVersion {
		return nil, corrupt("unsupported format version %d", hdr.Version)
	}
	if hdr.Count < 0 {
		return nil, corrupt("negative record count %d", hdr.Count)
	}
	return &hdr, nil
}
