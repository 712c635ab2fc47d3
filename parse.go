package goisf

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/reoring/goisf/i18n"
	eng "github.com/reoring/goisf/internal/engine"
)

// decodeTree turns descriptor JSON into a generic tree. doc is the text
// offsets are rendered against and base the position of data within it, so
// that reported offsets point into the shader source rather than into the
// comment body. Duplicate keys under the Warn policy are returned as
// warnings.
func decodeTree(data []byte, opt ParseOpt, doc string, base int64) (any, Issues, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		it := IssueAt(StageDecode, Root(), CodeTruncated,
			"descriptor is "+strconv.Itoa(len(data))+" bytes, limit is "+strconv.FormatInt(opt.MaxBytes, 10),
			map[string]any{"size": len(data), "limit": opt.MaxBytes})
		it.Offset = base
		return nil, nil, Issues{it}
	}
	drv := opt.Driver
	if drv == nil {
		drv = getJSONDriver()
	}
	var warnings Issues
	src := eng.WrapWithEnforcement(engineTokenSource(drv.NewBytes(data)), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		Warn: func(si eng.SimpleIssue) {
			warnings = AppendIssues(warnings, fromEngineIssue(si, Warn, doc, base))
		},
	})
	tree, err := eng.DecodeTree(src)
	if err != nil {
		return nil, nil, decodeError(err, len(data), doc, base)
	}
	return tree, warnings, nil
}

func decodeError(err error, size int, doc string, base int64) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		it := fromEngineIssue(ie.SimpleIssue, Error, doc, base)
		it.Cause = err
		return Issues{it}
	}
	off := int64(-1)
	hint := err.Error()
	var se *eng.SyntaxError
	switch {
	case errors.Is(err, eng.ErrTrailingData):
		hint = "unexpected data after the top-level value"
		if errors.As(err, &se) {
			off = se.Offset
		}
	case errors.As(err, &se):
		off = se.Offset
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		off, hint = int64(size), "unexpected end of JSON input"
	}
	it := IssueAt(StageDecode, Root(), CodeMalformedJSON, hint, nil)
	it.Cause = err
	if off >= 0 {
		it.Offset = base + off
		it.Hint += " at " + position(doc, it.Offset)
	}
	return Issues{it}
}

func fromEngineIssue(si eng.SimpleIssue, sev Severity, doc string, base int64) Issue {
	it := Issue{
		Path:     si.Path,
		Code:     si.Code,
		Message:  i18n.T(si.Code, nil),
		Hint:     si.Message,
		Offset:   -1,
		Stage:    StageDecode,
		Severity: sev,
	}
	if si.Offset >= 0 {
		it.Offset = base + si.Offset
		it.Hint += " at " + position(doc, it.Offset)
	}
	return it
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

// position renders a byte offset as 1-based "line:col"; columns count bytes.
func position(src string, off int64) string {
	if off < 0 {
		return "?"
	}
	if off > int64(len(src)) {
		off = int64(len(src))
	}
	before := src[:off]
	line := strings.Count(before, "\n") + 1
	col := len(before) - strings.LastIndexByte(before, '\n')
	return strconv.Itoa(line) + ":" + strconv.Itoa(col)
}
