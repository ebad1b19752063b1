package pack

import "testing"

func TestMatchRegexp(t *testing.T) {
	t.Parallel()

	filter, err := MatchRegexp(`data/ui/.*\.tga`)
	if err != nil {
		t.Fatalf("MatchRegexp: %v", err)
	}

	cases := []struct {
		name string
		path string
		want bool
	}{
		{name: "match", path: "data/ui/icon.tga", want: true},
		{name: "nested match", path: "data/ui/buttons/ok.tga", want: true},
		{name: "backslash separators", path: `data\ui\icon.tga`, want: true},
		{name: "whole-path anchoring", path: "xdata/ui/icon.tga", want: false},
		{name: "wrong extension", path: "data/ui/icon.txt", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := filter(tc.path); got != tc.want {
				t.Fatalf("filter(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestMatchRegexpPartialPatternIsAnchored(t *testing.T) {
	t.Parallel()

	filter, err := MatchRegexp("a")
	if err != nil {
		t.Fatal(err)
	}
	if filter("abc") {
		t.Fatal("bare substring pattern must not match a longer path")
	}
	if !filter("a") {
		t.Fatal("pattern must match the identical path")
	}
}

func TestMatchRegexpInvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := MatchRegexp("("); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{name: "extension rule", pattern: "*.tga", path: "data/ui/icon.tga", want: true},
		{name: "extension rule case-insensitive", pattern: "*.tga", path: `DATA\UI\ICON.TGA`, want: true},
		{name: "extension miss", pattern: "*.tga", path: "data/ui/icon.txt", want: false},
		{name: "dir-only rule", pattern: "ui/", path: "data/ui/icon.tga", want: true},
		{name: "dir-only miss", pattern: "ui/", path: "data/text/names.txt", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			filter, err := MatchGlob(tc.pattern)
			if err != nil {
				t.Fatalf("MatchGlob(%q): %v", tc.pattern, err)
			}
			if got := filter(tc.path); got != tc.want {
				t.Fatalf("glob %q on %q = %v, want %v", tc.pattern, tc.path, got, tc.want)
			}
		})
	}
}

func TestCombineFilters(t *testing.T) {
	t.Parallel()

	if CombineFilters() != nil {
		t.Fatal("empty set must yield nil")
	}
	if CombineFilters(nil, nil) != nil {
		t.Fatal("all-nil set must yield nil")
	}

	hasPrefix := func(p string) bool { return len(p) > 0 && p[0] == 'a' }
	hasSuffix := func(p string) bool { return len(p) > 0 && p[len(p)-1] == 'z' }

	both := CombineFilters(hasPrefix, nil, hasSuffix)
	if !both("abz") {
		t.Error("expected match when every predicate accepts")
	}
	if both("abc") || both("xyz") {
		t.Error("expected miss when any predicate rejects")
	}
}

func TestFilterEntries(t *testing.T) {
	t.Parallel()

	entries := []FileEntry{
		{Path: "a.txt"},
		{Path: "b.dat"},
		{Path: "c.txt"},
	}

	if got := FilterEntries(entries, nil); len(got) != 3 {
		t.Fatalf("nil filter: got %d entries, want 3", len(got))
	}

	filter, err := MatchRegexp(`.*\.txt`)
	if err != nil {
		t.Fatal(err)
	}

	got := FilterEntries(entries, filter)
	if len(got) != 2 || got[0].Path != "a.txt" || got[1].Path != "c.txt" {
		t.Fatalf("unexpected filtered entries: %+v", got)
	}
}
