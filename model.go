// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import "runtime"

// Container signature and format limits.
const (
	// packMagic is the container signature ("PACK" stored little-endian).
	packMagic = 0x4b434150
	// packVersion is the only supported container revision.
	packVersion = 0x00030000
	// MaxChunkSize is the compressed-block capacity. No stored chunk is
	// longer, and blocks of exactly this length are always raw.
	MaxChunkSize = 65536
)

// ChunkRef locates one stored chunk inside the archive region.
type ChunkRef struct {
	// Offset is the absolute byte offset of the chunk in the archive.
	Offset uint32
	// Size is the stored chunk length in bytes, at most MaxChunkSize.
	Size uint32
}

// FileEntry describes a single contained file. Entries are immutable after
// parse and keep the on-disk table order, which is the canonical listing
// and extraction order.
type FileEntry struct {
	// Path is the archive-internal relative path.
	Path string
	// SizeOnDisk is the declared uncompressed content size.
	SizeOnDisk uint32
	// SizeInPack is the declared total stored size. The entry's chunk
	// sizes sum to it exactly.
	SizeInPack uint32
	// Chunks are stored chunk references in content order.
	Chunks []ChunkRef
}

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnFileDone is called after one file is fully written to disk.
	// It may be invoked concurrently from several workers.
	OnFileDone func(entry FileEntry, written int64, outputPath string)
	// Filter limits extraction to entries whose path it accepts.
	// A nil filter accepts every entry.
	Filter func(path string) bool
	// MaxWorkers is the number of extraction workers (zero means GOMAXPROCS).
	MaxWorkers int
}

// applyDefaults fills zero-valued extract options with defaults.
func (opts *ExtractOptions) applyDefaults() {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = runtime.GOMAXPROCS(0)
	}
}
