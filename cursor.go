// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// cursorScanChunkSize is a chunk size used by the null-terminated string scanner.
const cursorScanChunkSize = 256

// cursor is a sequential reader over the fixed archive region [0, end).
// Every read is validated against the region end and fails with
// ErrOutOfBounds instead of touching adjacent memory.
type cursor struct {
	ra  io.ReaderAt
	pos int64
	end int64
}

// newCursor wraps a random-access region of the given size.
func newCursor(ra io.ReaderAt, size int64) *cursor {
	return &cursor{ra: ra, end: size}
}

// position returns the current absolute offset.
func (c *cursor) position() int64 {
	return c.pos
}

// seek moves to an absolute offset within the region.
func (c *cursor) seek(offset int64) error {
	if offset < 0 || offset > c.end {
		return fmt.Errorf("%w: seek to %d in region of %d", ErrOutOfBounds, offset, c.end)
	}

	c.pos = offset
	return nil
}

// skip advances past n bytes.
func (c *cursor) skip(n int64) error {
	return c.seek(c.pos + n)
}

// align advances the position to the next multiple of boundary.
func (c *cursor) align(boundary int64) error {
	if rem := c.pos % boundary; rem != 0 {
		return c.skip(boundary - rem)
	}

	return nil
}

// readU8 reads one byte.
func (c *cursor) readU8() (byte, error) {
	var buf [1]byte
	if err := c.readFull(buf[:]); err != nil {
		return 0, err
	}

	return buf[0], nil
}

// readU32 reads a 4-byte little-endian integer.
func (c *cursor) readU32() (uint32, error) {
	var buf [4]byte
	if err := c.readFull(buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

// readCString reads bytes until a terminating zero byte. The zero byte is
// consumed but excluded from the returned string.
func (c *cursor) readCString() (string, error) {
	var out []byte

	// Scan in chunks to avoid one-byte reads on long names.
	var chunk [cursorScanChunkSize]byte
	for {
		remain := c.end - c.pos
		if remain <= 0 {
			return "", fmt.Errorf("%w: unterminated string at %d", ErrOutOfBounds, c.pos)
		}

		n := int64(len(chunk))
		if n > remain {
			n = remain
		}

		read, err := c.ra.ReadAt(chunk[:n], c.pos)
		if read > 0 {
			part := chunk[:read]
			if idx := bytes.IndexByte(part, 0); idx >= 0 {
				c.pos += int64(idx) + 1
				if len(out) == 0 {
					return string(part[:idx]), nil
				}

				out = append(out, part[:idx]...)
				return string(out), nil
			}

			out = append(out, part...)
			c.pos += int64(read)
		}

		if err != nil && err != io.EOF {
			return "", fmt.Errorf("read string at %d: %w", c.pos, err)
		}

		if read == 0 {
			return "", fmt.Errorf("%w: unterminated string at %d", ErrOutOfBounds, c.pos)
		}
	}
}

// readFull reads exactly len(buf) bytes from the current position.
func (c *cursor) readFull(buf []byte) error {
	if c.pos+int64(len(buf)) > c.end {
		return fmt.Errorf("%w: %d bytes at %d in region of %d", ErrOutOfBounds, len(buf), c.pos, c.end)
	}

	if _, err := c.ra.ReadAt(buf, c.pos); err != nil {
		return fmt.Errorf("read at %d: %w", c.pos, err)
	}

	c.pos += int64(len(buf))
	return nil
}
