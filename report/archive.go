// report/archive.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package report

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// ArchiveVersion should be incremented when Results changes in a way that
// old archives can't be decoded.
const ArchiveVersion = 1

type archive struct {
	Version int
	Results []*Results
}

// Save writes the results as zstd-compressed msgpack.
func Save(w io.Writer, results []*Results) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := msgpack.NewEncoder(zw).Encode(archive{Version: ArchiveVersion, Results: results}); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// Load reads results written by Save.
func Load(r io.Reader) ([]*Results, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var a archive
	if err := msgpack.NewDecoder(zr).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	if a.Version != ArchiveVersion {
		return nil, fmt.Errorf("version %d: %w", a.Version, ErrArchiveVersion)
	}
	return a.Results, nil
}

func SaveFile(path string, results []*Results) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadFile(path string) ([]*Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}
