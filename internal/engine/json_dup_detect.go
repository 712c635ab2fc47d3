package engine

import (
	"errors"
	"io"
)

// DetectDuplicateKeys drains src and reports every duplicated object key.
// maxIssues < 0 means unlimited; 0 disables collection.
func DetectDuplicateKeys(src TokenSource, maxIssues int) ([]SimpleIssue, error) {
	var issues []SimpleIssue
	truncated := false
	wrapped := WrapWithEnforcement(src, EnforceOptions{
		OnDuplicate: DupWarn,
		Warn: func(si SimpleIssue) {
			if maxIssues == 0 || truncated {
				return
			}
			if maxIssues > 0 && len(issues) >= maxIssues {
				issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached", Offset: -1})
				truncated = true
				return
			}
			issues = append(issues, si)
		},
	})
	for {
		_, err := wrapped.NextToken()
		if errors.Is(err, io.EOF) {
			return issues, nil
		}
		if err != nil {
			return issues, err
		}
	}
}
