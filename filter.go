// SPDX-License-Identifier: MIT
// Copyright (c) 2026 m2kit
// Source: github.com/m2kit/pack

package pack

import (
	"fmt"
	"regexp"

	"github.com/woozymasta/pathrules"
)

// MatchRegexp compiles pattern into an entry predicate. The pattern must
// match the whole normalized entry path, not a substring of it.
func MatchRegexp(pattern string) (func(string) bool, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", pattern, err)
	}

	return func(path string) bool {
		return re.MatchString(NormalizePath(path))
	}, nil
}

// MatchGlob compiles a glob pattern into an entry predicate. Matching is
// case-insensitive and a bare extension pattern like "*.tga" matches at
// any depth.
func MatchGlob(pattern string) (func(string) bool, error) {
	matcher, err := pathrules.NewMatcher(
		[]pathrules.Rule{{Action: pathrules.ActionInclude, Pattern: pattern}},
		pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("compile glob filter %q: %w", pattern, err)
	}

	return func(path string) bool {
		candidate := NormalizePath(path)
		if candidate == "" {
			return false
		}

		return matcher.Included(candidate, false)
	}, nil
}

// CombineFilters returns a predicate satisfied only when every given
// predicate accepts the path. Nil predicates are skipped; an empty set
// yields nil, meaning no filtering.
func CombineFilters(filters ...func(string) bool) func(string) bool {
	active := make([]func(string) bool, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}

	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}

	return func(path string) bool {
		for _, f := range active {
			if !f(path) {
				return false
			}
		}

		return true
	}
}

// FilterEntries keeps entries whose path the filter accepts. A nil filter
// keeps everything.
func FilterEntries(entries []FileEntry, filter func(string) bool) []FileEntry {
	if filter == nil {
		return entries
	}

	out := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if filter(entry.Path) {
			out = append(out, entry)
		}
	}

	return out
}
