package goisf

import (
	"strings"
	"unicode"
)

const (
	commentOpen  = "/*"
	commentClose = "*/"
	utf8BOM      = "\uFEFF"
)

// TopComment returns the text strictly between the leading "/*" and the first
// "*/" after it, together with the byte offset of that text within src.
// Only whitespace (and a UTF-8 byte order mark) may precede the opening
// delimiter. Nested comments and interior "//" lines are not interpreted.
func TopComment(src string) (string, int, error) {
	start := 0
	if strings.HasPrefix(src, utf8BOM) {
		start = len(utf8BOM)
	}
	rest := strings.TrimLeftFunc(src[start:], unicode.IsSpace)
	start = len(src) - len(rest)

	if !strings.HasPrefix(rest, commentOpen) {
		hint := "source is empty"
		if rest != "" {
			hint = "source does not start with /*"
		}
		return "", -1, missingTopComment(hint, int64(start))
	}
	body := start + len(commentOpen)
	end := strings.Index(src[body:], commentClose)
	if end < 0 {
		return "", -1, missingTopComment("comment starting at "+position(src, int64(start))+" is never closed", int64(start))
	}
	return src[body : body+end], body, nil
}

func missingTopComment(hint string, off int64) error {
	it := IssueAt(StageExtract, Root(), CodeMissingTopComment, hint, nil)
	it.Offset = off
	return Issues{it}
}
