// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// extractWorkItem stores one selected entry with prepared output relative paths.
type extractWorkItem struct {
	relPath string
	relDir  string
	entry   FileEntry
}

// Extract writes selected entries from the archive to dstDir. Work is
// split statically across MaxWorkers by index: worker k processes items
// k, k+N, k+2N and so on. Per-file failures are captured so files on
// other workers still complete; the returned error joins all of them.
func (r *Reader) Extract(ctx context.Context, dstDir string, opts ExtractOptions) error {
	if r == nil || r.ra == nil {
		return ErrNilReader
	}
	if r.isClosed() {
		return ErrClosed
	}

	opts.applyDefaults()

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	workItems, pathErrs := prepareExtractWorkItems(r.entries, opts.Filter)

	if len(workItems) == 0 {
		return errors.Join(pathErrs...)
	}

	// All parent directories are created once before workers start, so
	// siblings on different workers never race on mkdir.
	if err := prepareExtractDirs(dstRootAbs, workItems); err != nil {
		return err
	}

	workers := opts.MaxWorkers
	if workers > len(workItems) {
		workers = len(workItems)
	}

	fileErrs := make([][]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			scratch := make([]byte, MaxChunkSize)
			for i := w; i < len(workItems); i += workers {
				if ctx.Err() != nil {
					return
				}

				if err := r.extractPreparedEntry(dstRootAbs, workItems[i], scratch, opts.OnFileDone); err != nil {
					fileErrs[w] = append(fileErrs[w], err)
				}
			}
		})
	}
	wg.Wait()

	all := pathErrs
	for _, errs := range fileErrs {
		all = append(all, errs...)
	}
	if err := ctx.Err(); err != nil {
		all = append(all, err)
	}

	return errors.Join(all...)
}

// prepareExtractWorkItems selects entries through the filter and prepares
// relative fs paths. An absolute or traversal entry path fails that entry
// only; the remaining entries still extract.
func prepareExtractWorkItems(entries []FileEntry, filter func(string) bool) ([]extractWorkItem, []error) {
	workItems := make([]extractWorkItem, 0, len(entries))
	var pathErrs []error
	for _, entry := range entries {
		if strings.TrimSpace(entry.Path) == "" {
			continue
		}
		if filter != nil && !filter(entry.Path) {
			continue
		}

		normalizedPath, err := normalizeExtractEntryPath(entry.Path)
		if err != nil {
			pathErrs = append(pathErrs, fmt.Errorf("normalize entry path %s: %w", entry.Path, err))
			continue
		}

		relPath := filepath.FromSlash(normalizedPath)
		relDir := filepath.Dir(relPath)
		if relDir == "." {
			relDir = ""
		}

		workItems = append(workItems, extractWorkItem{
			entry:   entry,
			relPath: relPath,
			relDir:  relDir,
		})
	}

	return workItems, pathErrs
}

// prepareExtractDirs creates all unique parent directories needed by work items.
func prepareExtractDirs(dstRootAbs string, workItems []extractWorkItem) error {
	seen := make(map[string]struct{}, len(workItems))
	for _, task := range workItems {
		if task.relDir == "" {
			continue
		}

		dirPath := filepath.Join(dstRootAbs, task.relDir)
		if _, exists := seen[dirPath]; exists {
			continue
		}

		seen[dirPath] = struct{}{}
		if err := os.MkdirAll(dirPath, 0o750); err != nil {
			return fmt.Errorf("create output directory %s: %w", dirPath, err)
		}
	}

	return nil
}

// extractPreparedEntry writes one prepared work item to destination root.
func (r *Reader) extractPreparedEntry(
	dstRootAbs string,
	task extractWorkItem,
	scratch []byte,
	onFileDone func(entry FileEntry, written int64, outputPath string),
) error {
	outPath := filepath.Join(dstRootAbs, task.relPath)

	file, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkOpen, outPath, err)
	}

	written, writeErr := r.writeEntryTo(file, task.entry, scratch)
	closeErr := file.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", task.entry.Path, closeErr)
	}

	if onFileDone != nil {
		onFileDone(task.entry, written, outPath)
	}

	return nil
}

// writeEntryTo streams one entry's chunks in archive order through the
// compression decision into w. scratch must hold MaxChunkSize bytes.
func (r *Reader) writeEntryTo(w io.Writer, entry FileEntry, scratch []byte) (int64, error) {
	var written int64
	for i, chunk := range entry.Chunks {
		raw := scratch[:chunk.Size]
		if _, err := r.ra.ReadAt(raw, int64(chunk.Offset)); err != nil {
			return written, fmt.Errorf("read chunk #%d of %s: %w", i, entry.Path, err)
		}

		data := raw
		if chunkCompressed(chunk.Size, written, entry.SizeOnDisk) {
			decoded, err := decompressChunk(raw, entry.Path, i)
			if err != nil {
				return written, err
			}

			data = decoded
		}

		n, err := w.Write(data)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("write %s: %w", entry.Path, err)
		}
	}

	return written, nil
}
