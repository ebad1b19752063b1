package pack

import (
	"errors"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "data/ui/icon.tga", want: "data/ui/icon.tga"},
		{name: "backslashes", in: `data\ui\icon.tga`, want: "data/ui/icon.tga"},
		{name: "leading dot-slash", in: "./data/a.txt", want: "data/a.txt"},
		{name: "leading slash", in: "/data/a.txt", want: "data/a.txt"},
		{name: "dot segments", in: "data/./ui/../a.txt", want: "data/a.txt"},
		{name: "trailing slash", in: "data/ui/", want: "data/ui"},
		{name: "surrounding spaces", in: "  data/a.txt  ", want: "data/a.txt"},
		{name: "dot only", in: ".", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizePath(tc.in); got != tc.want {
				t.Fatalf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeExtractEntryPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "data/ui/icon.tga", want: "data/ui/icon.tga"},
		{name: "backslashes", in: `data\ui\icon.tga`, want: "data/ui/icon.tga"},
		{name: "redundant segments", in: "data//./a.txt", want: "data/a.txt"},
		{name: "traversal", in: "../evil.txt", wantErr: true},
		{name: "interior traversal", in: "data/../../evil.txt", wantErr: true},
		{name: "absolute unix", in: "/etc/passwd", wantErr: true},
		{name: "absolute backslash", in: `\windows\system32`, wantErr: true},
		{name: "windows drive", in: `C:\windows\system32`, wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "dots only", in: "./.", wantErr: true},
		{name: "embedded nul", in: "a\x00b", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalizeExtractEntryPath(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidExtractPath) {
					t.Fatalf("got %q, %v; want ErrInvalidExtractPath", got, err)
				}
				return
			}

			if err != nil || got != tc.want {
				t.Fatalf("normalizeExtractEntryPath(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
		})
	}
}
