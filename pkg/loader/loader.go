// Package loader reads a ROM image from disk, transparently unpacking
// the first entry of a .7z archive when the file extension calls for it.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// Load reads filename and returns the raw ROM bytes, unpacking a .7z
// archive's first entry if the extension demands it. .gb and .gbc
// files are returned as-is.
func Load(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", filename, err)
	}

	if filepath.Ext(filename) != ".7z" {
		return data, nil
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", filename, err)
	}
	defer f.Close()

	r, err := sevenzip.NewReader(f, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("loader: reading 7z archive %s: %w", filename, err)
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("loader: archive %s is empty", filename)
	}

	entry, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("loader: opening archive entry: %w", err)
	}
	defer entry.Close()

	rom, err := io.ReadAll(entry)
	if err != nil {
		return nil, fmt.Errorf("loader: decompressing archive entry: %w", err)
	}
	return rom, nil
}
