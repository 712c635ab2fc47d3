package goisf_test

import (
	"testing"

	"github.com/reoring/goisf"
)

func TestTopComment(t *testing.T) {
	cases := []struct {
		name string
		src  string
		body string
		off  int
	}{
		{"at start", "/*{}*/void main(){}", "{}", 2},
		{"leading whitespace", "\n\t /* {} */", " {} ", 5},
		{"byte order mark", "\uFEFF/*{}*/", "{}", 5},
		{"first close wins", "/* a */ b */", " a ", 2},
		{"nested opener kept", "/* /* x */", " /* x ", 2},
		{"line comments kept", "/*\n// not stripped\n{}*/", "\n// not stripped\n{}", 2},
		{"empty comment", "/**/", "", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, off, err := goisf.TopComment(tc.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if body != tc.body || off != tc.off {
				t.Fatalf("got (%q, %d), want (%q, %d)", body, off, tc.body, tc.off)
			}
			if tc.src[off:off+len(body)] != body {
				t.Fatalf("offset does not locate the body")
			}
		})
	}
}

func TestTopComment_Missing(t *testing.T) {
	for _, src := range []string{"", "  \n", "void main() {}", "#version 150\n/*{}*/", "/* open"} {
		_, off, err := goisf.TopComment(src)
		if off != -1 {
			t.Fatalf("%q: expected offset -1, got %d", src, off)
		}
		it := firstIssue(t, err)
		if it.Code != goisf.CodeMissingTopComment || it.Stage != goisf.StageExtract {
			t.Fatalf("%q: unexpected issue %v", src, it)
		}
	}
}

func TestTopComment_UnclosedHintNamesPosition(t *testing.T) {
	_, _, err := goisf.TopComment("\n\n  /* {")
	it := firstIssue(t, err)
	if it.Hint != "comment starting at 3:3 is never closed" {
		t.Fatalf("unexpected hint %q", it.Hint)
	}
	if it.Offset != 4 {
		t.Fatalf("expected offset 4, got %d", it.Offset)
	}
}
