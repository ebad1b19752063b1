// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import (
	"fmt"
	"io"
)

// findEntryByName resolves one entry by normalized path.
func (r *Reader) findEntryByName(name string) *FileEntry {
	lookup := NormalizePath(name)
	for i := range r.entries {
		if NormalizePath(r.entries[i].Path) == lookup {
			return &r.entries[i]
		}
	}

	return nil
}

// OpenEntry opens the named entry for reading. The returned stream yields
// the entry's uncompressed content chunk by chunk.
func (r *Reader) OpenEntry(name string) (io.ReadCloser, error) {
	if r == nil || r.ra == nil {
		return nil, ErrNilReader
	}
	if r.isClosed() {
		return nil, ErrClosed
	}

	entry := r.findEntryByName(name)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	return r.openEntry(*entry), nil
}

// openEntry streams entry content through a pipe so callers read
// decompressed bytes without buffering the whole file.
func (r *Reader) openEntry(entry FileEntry) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		scratch := make([]byte, MaxChunkSize)
		if _, err := r.writeEntryTo(pw, entry, scratch); err != nil {
			_ = pw.CloseWithError(err)
			return
		}

		_ = pw.Close()
	}()

	return pr
}

// ReadEntry reads the full uncompressed content of the named entry.
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	rc, err := r.OpenEntry(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
