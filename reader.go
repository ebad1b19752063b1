// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"golang.org/x/exp/mmap"
)

// Reader provides read-only access to a parsed pack archive. The parsed
// file table is immutable, so one Reader is safe for concurrent chunk
// reads by multiple extraction workers.
type Reader struct {
	// ra is the underlying random-access region used for chunk reads.
	ra io.ReaderAt
	// mapping is set when Reader owns a memory mapping opened via Open.
	mapping *mmap.ReaderAt
	// path is the archive source path ("<memory>" for in-memory readers).
	path string
	// entries are parsed immutable file records in table order.
	entries []FileEntry
	// baseOffsets is the advisory per-file offset table from the header.
	// Chunk lists are rebuilt from each file record's own first-chunk
	// offset, so this table stays a sanity hint and is never validated.
	baseOffsets []uint32
	// size is total source size in bytes.
	size int64
	// mu guards closed state and close operation.
	mu sync.Mutex
	// closed reports whether Close was already called.
	closed bool
}

// Open memory-maps a pack file by path and parses the container tables.
// The mapping stays alive until Close and is shared read-only by all
// entry and extraction reads.
func Open(path string) (*Reader, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}

	r := &Reader{ra: m, mapping: m, path: path, size: int64(m.Len())}
	if err := r.parse(); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

// NewReaderFromReaderAt parses a pack from an existing ReaderAt and known size.
func NewReaderFromReaderAt(ra io.ReaderAt, size int64) (*Reader, error) {
	if ra == nil {
		return nil, ErrNilReader
	}

	r := &Reader{ra: ra, path: "<memory>", size: size}
	if err := r.parse(); err != nil {
		return nil, err
	}

	return r, nil
}

// Path returns the archive source path.
func (r *Reader) Path() string {
	return r.path
}

// Name returns the archive file name without leading directories.
func (r *Reader) Name() string {
	return filepath.Base(r.path)
}

// Entries returns a copy of the parsed file records in table order.
func (r *Reader) Entries() []FileEntry {
	if r == nil {
		return nil
	}

	entries := make([]FileEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Close releases the memory mapping if the reader owns one. Chunk reads
// through this reader are invalid after Close.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	if r.mapping != nil {
		return r.mapping.Close()
	}

	return nil
}

// isClosed reports whether Close was already called.
func (r *Reader) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// parse reads and validates the container header and file tables.
func (r *Reader) parse() error {
	cur := newCursor(r.ra, r.size)

	magic, err := cur.readU32()
	if err != nil {
		return fmt.Errorf("%w: short header", ErrNotAnArchive)
	}
	if magic != packMagic {
		return ErrNotAnArchive
	}

	version, err := cur.readU32()
	if err != nil {
		return err
	}
	if version != packVersion {
		return fmt.Errorf("%w: 0x%08x", ErrUnsupportedVersion, version)
	}

	fileCount, err := cur.readU32()
	if err != nil {
		return err
	}

	// The file table size field is advisory only; nothing below depends on it.
	if _, err := cur.readU32(); err != nil {
		return err
	}

	chunkCount, err := cur.readU32()
	if err != nil {
		return err
	}

	r.baseOffsets = make([]uint32, fileCount)
	for i := range r.baseOffsets {
		if r.baseOffsets[i], err = cur.readU32(); err != nil {
			return fmt.Errorf("file offset table: %w", err)
		}
	}

	chunkSizes := make([]uint32, chunkCount)
	for i := range chunkSizes {
		size, err := cur.readU32()
		if err != nil {
			return fmt.Errorf("chunk size table: %w", err)
		}
		if size > MaxChunkSize {
			return fmt.Errorf("%w: chunk #%d length %d exceeds %d", ErrMalformedChunkTable, i, size, MaxChunkSize)
		}

		chunkSizes[i] = size
	}

	r.entries = make([]FileEntry, 0, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		entry, err := parseFileRecord(cur, chunkSizes, r.size)
		if err != nil {
			return fmt.Errorf("file record #%d: %w", i, err)
		}

		r.entries = append(r.entries, entry)
	}

	return nil
}

// parseFileRecord reads one file record and reconstructs its chunk list
// from the shared chunk size table.
func parseFileRecord(cur *cursor, chunkSizes []uint32, regionSize int64) (FileEntry, error) {
	firstChunkOffset, err := cur.readU32()
	if err != nil {
		return FileEntry{}, err
	}

	firstChunkIndex, err := cur.readU32()
	if err != nil {
		return FileEntry{}, err
	}

	var entry FileEntry
	if entry.SizeOnDisk, err = cur.readU32(); err != nil {
		return FileEntry{}, err
	}
	if entry.SizeInPack, err = cur.readU32(); err != nil {
		return FileEntry{}, err
	}
	if entry.Path, err = cur.readCString(); err != nil {
		return FileEntry{}, err
	}
	if err := cur.align(4); err != nil {
		return FileEntry{}, err
	}

	chunks, err := buildChunkList(chunkSizes, firstChunkIndex, firstChunkOffset, entry.SizeInPack, regionSize)
	if err != nil {
		return FileEntry{}, fmt.Errorf("%s: %w", entry.Path, err)
	}

	entry.Chunks = chunks
	return entry, nil
}

// buildChunkList walks the shared chunk size table from firstIndex until
// the accumulated span covers sizeInPack exactly. A walk that runs off the
// table or past the declared pack size means the archive is malformed.
func buildChunkList(chunkSizes []uint32, firstIndex, firstOffset, sizeInPack uint32, regionSize int64) ([]ChunkRef, error) {
	index := firstIndex
	offset := firstOffset

	var chunks []ChunkRef
	for offset-firstOffset < sizeInPack {
		if index >= uint32(len(chunkSizes)) {
			return nil, fmt.Errorf("%w: chunk index %d exceeds table of %d", ErrMalformedChunkTable, index, len(chunkSizes))
		}

		size := chunkSizes[index]
		if size == 0 {
			return nil, fmt.Errorf("%w: zero-length chunk #%d", ErrMalformedChunkTable, index)
		}
		if int64(offset)+int64(size) > regionSize {
			return nil, fmt.Errorf("%w: chunk #%d spans past end of archive", ErrMalformedChunkTable, index)
		}

		chunks = append(chunks, ChunkRef{Offset: offset, Size: size})
		offset += size
		index++
	}

	if covered := offset - firstOffset; covered != sizeInPack {
		return nil, fmt.Errorf("%w: chunk span %d overshoots declared pack size %d", ErrMalformedChunkTable, covered, sizeInPack)
	}

	return chunks, nil
}
