// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

// pack lists and extracts files from Medieval II: Total War .pack archives.
//
// Usage:
//
//	pack list [flags] <archive...>
//	pack extract [flags] <archive...>
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/m2kit/pack"
)

const version = "0.1.0"

// errArchivesFailed marks that at least one archive in the batch failed;
// details were already logged per archive.
var errArchivesFailed = errors.New("one or more archives failed")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logLevel := slog.LevelWarn
	if os.Getenv("PACK_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "list":
		err = listCmd(args, logger)
	case "extract":
		err = extractCmd(args, logger)
	case "version", "--version", "-v":
		fmt.Printf("pack %s\n", version)
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, errArchivesFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`pack - Medieval II: Total War pack archive tool

USAGE
    pack <command> [flags] <archive...>

COMMANDS
    list     List files contained in pack archives
    extract  Extract files from pack archives
    version  Show version

FLAGS
    --filter <regex>    Only entries whose path matches the regex
    --glob <pattern>    Only entries whose path matches the glob pattern
    --long, -l          (list) Show uncompressed entry sizes
    --dest <dir>        (extract) Output directory, default "."
    --parallel <n>      (extract) Number of worker threads, default auto

EXAMPLES
    # List every texture in two archives
    pack list --glob '*.texture' data_0.pack data_1.pack

    # Extract the UI files into ./unpacked
    pack extract --dest unpacked --filter 'data/ui/.*' data_0.pack

ENVIRONMENT
    PACK_DEBUG   Enable debug logging
`)
}

// listCmd prints one "<archive-name>: <relative-path>" line per matching entry.
func listCmd(args []string, logger *slog.Logger) error {
	flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
	filterPattern := flagSet.String("filter", "", "regex for files to list")
	globPattern := flagSet.String("glob", "", "glob pattern for files to list")
	long := flagSet.BoolP("long", "l", false, "show uncompressed entry sizes")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		return errors.New("no archives given")
	}

	filter, err := buildFilter(*filterPattern, *globPattern)
	if err != nil {
		return err
	}

	failed := false
	for _, path := range paths {
		entries, err := pack.ListEntries(path)
		if err != nil {
			logger.Error("cannot read archive", "archive", path, "error", err)
			failed = true
			continue
		}

		name := filepath.Base(path)
		for _, entry := range pack.FilterEntries(entries, filter) {
			if *long {
				fmt.Printf("%s: %10s  %s\n", name, humanize.IBytes(uint64(entry.SizeOnDisk)), entry.Path)
			} else {
				fmt.Printf("%s: %s\n", name, entry.Path)
			}
		}
	}

	if failed {
		return errArchivesFailed
	}

	return nil
}

// extractCmd writes matching files under --dest and prints one
// "<archive-name> => <output-path>" line per extracted file.
func extractCmd(args []string, logger *slog.Logger) error {
	flagSet := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	dest := flagSet.String("dest", ".", "output directory")
	filterPattern := flagSet.String("filter", "", "regex for files to extract")
	globPattern := flagSet.String("glob", "", "glob pattern for files to extract")
	parallel := flagSet.IntP("parallel", "p", 0, "number of extraction workers (0 = auto)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		return errors.New("no archives given")
	}

	filter, err := buildFilter(*filterPattern, *globPattern)
	if err != nil {
		return err
	}

	ctx := context.Background()
	status := &statusPrinter{}

	failed := false
	for _, path := range paths {
		r, err := pack.Open(path)
		if err != nil {
			logger.Error("cannot open archive", "archive", path, "error", err)
			failed = true
			continue
		}

		name := r.Name()
		err = r.Extract(ctx, *dest, pack.ExtractOptions{
			MaxWorkers: *parallel,
			Filter:     filter,
			OnFileDone: func(_ pack.FileEntry, _ int64, outputPath string) {
				status.Printf("%s => %s\n", name, outputPath)
			},
		})
		closeErr := r.Close()
		if err != nil {
			logger.Error("extraction failed", "archive", path, "error", err)
			failed = true
		}
		if closeErr != nil {
			logger.Error("cannot close archive", "archive", path, "error", closeErr)
			failed = true
		}
	}

	if failed {
		return errArchivesFailed
	}

	return nil
}

// buildFilter combines the regex and glob flags into one entry predicate.
func buildFilter(regexPattern, globPattern string) (func(string) bool, error) {
	var filters []func(string) bool
	if regexPattern != "" {
		f, err := pack.MatchRegexp(regexPattern)
		if err != nil {
			return nil, err
		}

		filters = append(filters, f)
	}
	if globPattern != "" {
		f, err := pack.MatchGlob(globPattern)
		if err != nil {
			return nil, err
		}

		filters = append(filters, f)
	}

	return pack.CombineFilters(filters...), nil
}

// statusPrinter serializes per-file status lines from concurrent workers.
type statusPrinter struct {
	mu sync.Mutex
}

// Printf writes one whole line under the printer lock.
func (p *statusPrinter) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf(format, args...)
}
