package goisf

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. The first seven correspond one to one with the error kinds a
// caller is expected to branch on; the rest refine them.
const (
	CodeMissingTopComment  = "missing_top_comment"
	CodeMalformedJSON      = "malformed_json"
	CodeInvalidType        = "invalid_type" // structural mismatch: wrong JSON type for a field or the root
	CodeRequired           = "required"
	CodeUnknownInputType   = "unknown_input_type"
	CodeInvalidRange       = "invalid_range"
	CodeDuplicateInputName = "duplicate_input_name"

	CodeEmptyName       = "empty_name"
	CodeFieldNotAllowed = "field_not_allowed" // an ISF input key the declared TYPE does not accept
	CodeInvalidEnum     = "invalid_enum"
	CodeUnknownKey      = "unknown_key"
	CodeDuplicateKey    = "duplicate_key"
	CodeTruncated       = "truncated"
)

// Stage names the pipeline step an Issue originated from.
type Stage string

const (
	StageExtract  Stage = "extract"  // locating the leading comment
	StageDecode   Stage = "decode"   // JSON text to generic tree
	StageMap      Stage = "map"      // generic tree to document model
	StageValidate Stage = "validate" // model invariants
	StageEncode   Stage = "encode"   // model to tree or text
)

// Issue represents a single validation entry.
type Issue struct {
	Path     string // JSON Pointer into the descriptor (for example: /INPUTS/2/MAX).
	Code     string // One of the codes listed above.
	Message  string
	Hint     string // Optional: expected shape, offending value, source position.
	Cause    error  // Optional: underlying error.
	Offset   int64  // Byte offset in the shader source (-1 when unknown).
	Stage    Stage
	Severity Severity
	// Params carries structured parameters (e.g., {"min":10, "max":0}) for
	// i18n and tooling.
	Params map[string]any
}

// String renders the issue for humans: "/INPUTS/0/MAX: invalid range (min 10 > max 0)".
func (it Issue) String() string {
	b := &strings.Builder{}
	path := it.Path
	if path == "" {
		path = "/"
	}
	fmt.Fprintf(b, "%s: %s", path, it.Message)
	if it.Hint != "" {
		fmt.Fprintf(b, " (%s)", it.Hint)
	}
	return b.String()
}

func (it Issue) Unwrap() error { return it.Cause }

// Issues is a collection of validation entries that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		path := it.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(b, "%s at %s", it.Code, path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is can see through Issues.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
