package goisf

import (
	"github.com/reoring/goisf/i18n"
)

// IssueAt creates an error-severity Issue at the given path with a localized
// message for code.
func IssueAt(stage Stage, p PathRef, code, hint string, params map[string]any) Issue {
	return Issue{
		Path:     p.Pointer(),
		Code:     code,
		Message:  i18n.T(code, nil),
		Hint:     hint,
		Offset:   -1,
		Stage:    stage,
		Severity: Error,
		Params:   params,
	}
}

// fail wraps a single issue as the error returned by fail-fast stages.
func fail(stage Stage, p PathRef, code, hint string, params map[string]any) error {
	return Issues{IssueAt(stage, p, code, hint, params)}
}

func warnAt(stage Stage, p PathRef, code, hint string) Issue {
	it := IssueAt(stage, p, code, hint, nil)
	it.Severity = Warn
	return it
}
