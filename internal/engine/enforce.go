package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// Warn receives non-fatal issues (duplicates under DupWarn). Nil drops them.
	Warn func(SimpleIssue)
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes while tracking the JSON
// Pointer of every token.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcer{inner: inner, opt: opt}
}

type container struct {
	object bool
	path   string
	keys   map[string]struct{}
	key    string
	index  int
}

type enforcer struct {
	inner TokenSource
	opt   EnforceOptions
	stack []container
}

func (e *enforcer) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	if e.opt.MaxBytes > 0 {
		if off := e.inner.Location(); off > e.opt.MaxBytes {
			return Token{}, e.fail("truncated", e.valuePath(false), "max bytes exceeded", tok.Offset)
		}
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath(true)
		c := container{object: tok.Kind == KindBeginObject, path: path}
		if c.object {
			c.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, c)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fail("truncated", pointerOrRoot(path), "max depth exceeded", tok.Offset)
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if len(e.stack) == 0 {
			break
		}
		top := &e.stack[len(e.stack)-1]
		if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
			si := SimpleIssue{
				Code:    "duplicate_key",
				Path:    JoinPointer(top.path, tok.String),
				Message: "key '" + tok.String + "' duplicated",
				Offset:  tok.Offset,
			}
			if e.opt.OnDuplicate == DupError {
				return Token{}, IssueError{si}
			}
			if e.opt.Warn != nil {
				e.opt.Warn(si)
			}
		}
		top.keys[tok.String] = struct{}{}
		top.key = tok.String
	default:
		e.valuePath(true)
	}
	return tok, nil
}

// valuePath returns the pointer of the value about to be read. When consume
// is set the parent's key or index cursor advances past it.
func (e *enforcer) valuePath(consume bool) string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		return JoinPointer(top.path, top.key)
	}
	p := top.path + "/" + strconv.Itoa(top.index)
	if consume {
		top.index++
	}
	return p
}

func (e *enforcer) fail(code, path, msg string, off int64) error {
	return IssueError{SimpleIssue{Code: code, Path: pointerOrRoot(path), Message: msg, Offset: off}}
}

func (e *enforcer) Location() int64 { return e.inner.Location() }

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JoinPointer appends an escaped reference token to a JSON Pointer.
func JoinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
