// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import "errors"

// Sentinel errors for pack operations. Use errors.Is in callers.
var (
	// ErrNotAnArchive means the file does not start with the pack signature.
	ErrNotAnArchive = errors.New("not a pack file: bad signature")
	// ErrUnsupportedVersion means the container revision is not the single supported one.
	ErrUnsupportedVersion = errors.New("unsupported pack version")
	// ErrMalformedChunkTable means chunk reconstruction overran the chunk table or the declared pack size.
	ErrMalformedChunkTable = errors.New("malformed chunk table")
	// ErrOutOfBounds means a read would pass the end of the archive region.
	ErrOutOfBounds = errors.New("read out of archive bounds")
	// ErrDecompression means a compressed chunk failed to decode.
	ErrDecompression = errors.New("chunk decompression failed")
	// ErrSinkOpen means an output file could not be created.
	ErrSinkOpen = errors.New("cannot open output file")
	// ErrNilReader means the reader is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrClosed means the reader is already closed.
	ErrClosed = errors.New("reader already closed")
	// ErrEntryNotFound means the entry is not found.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidExtractPath means archive entry path is invalid for extraction destination.
	ErrInvalidExtractPath = errors.New("invalid extract path")
)
