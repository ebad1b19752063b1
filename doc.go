// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

/*
Package pack reads Medieval II: Total War ".pack" archive containers.
An archive bundles many logical files into one blob; each file's content
is split into chunks of at most 64 KiB that are stored either raw or as
LZO1X-compressed blocks. The package parses the container tables into an
immutable in-memory model backed by a memory-mapped region and extracts
files in parallel.

# Reading

Open an archive and list or read entries:

	r, err := pack.Open("data_0.pack")
	if err != nil {
	    return err
	}
	defer r.Close()
	for _, e := range r.Entries() {
	    data, _ := r.ReadEntry(e.Path)
	    // use data
	}

For metadata-only scans without keeping a reader:

	entries, err := pack.ListEntries("data_0.pack")
	if err != nil {
	    return err
	}
	_ = entries

# Extracting

Extract matching entries to a directory (parallel workers):

	err := r.Extract(ctx, "out/", pack.ExtractOptions{
	    MaxWorkers: 4,
	    Filter:     filter,
	    OnFileDone: func(e pack.FileEntry, written int64, outPath string) {
	        // progress callback per written file
	    },
	})

Per-file extraction failures do not stop other files; Extract returns all
of them joined after the workers finish. Entry paths are normalized and
traversal attempts are rejected before any output is written.

Writing archives is out of scope: the format's encoder is not implemented,
and the container carries no checksums to verify.
*/
package pack
