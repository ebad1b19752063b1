// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import "io"

// ListEntries opens a pack and returns its file records without keeping a
// reader alive. No chunk payload is touched.
func ListEntries(path string) ([]FileEntry, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.Entries(), nil
}

// ListEntriesFromReaderAt parses file records from a random-access source.
func ListEntriesFromReaderAt(ra io.ReaderAt, size int64) ([]FileEntry, error) {
	r, err := NewReaderFromReaderAt(ra, size)
	if err != nil {
		return nil, err
	}

	return r.Entries(), nil
}
