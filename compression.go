// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import (
	"bytes"
	"fmt"

	lzo "github.com/rasky/go-lzo"
)

// chunkCompressed reports whether a stored chunk holds LZO-compressed data.
// Only interior blocks below the chunk capacity are compressed: a block of
// exactly MaxChunkSize bytes, or one that completes the file's declared
// uncompressed size, is stored raw.
func chunkCompressed(chunkSize uint32, emitted int64, sizeOnDisk uint32) bool {
	return chunkSize < MaxChunkSize && emitted+int64(chunkSize) < int64(sizeOnDisk)
}

// decompressChunk decodes one LZO1X chunk. A chunk may never expand past
// the chunk capacity, whatever the stream encodes. Failures name the
// owning file path and the chunk position within the file.
func decompressChunk(raw []byte, filePath string, chunkIndex int) ([]byte, error) {
	out, err := lzo.Decompress1X(bytes.NewReader(raw), len(raw), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: chunk #%d: %w", ErrDecompression, filePath, chunkIndex, err)
	}
	if len(out) > MaxChunkSize {
		return nil, fmt.Errorf("%w: %s: chunk #%d: decoded to %d bytes, chunk capacity is %d",
			ErrDecompression, filePath, chunkIndex, len(out), MaxChunkSize)
	}

	return out, nil
}
