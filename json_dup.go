package goisf

import (
	eng "github.com/reoring/goisf/internal/engine"
)

// DetectDuplicateKeys lists every duplicated object key in the descriptor of
// a shader source. Parse stops at the first duplicate; this is the lint
// variant that reports them all, each with its source offset.
func DetectDuplicateKeys(src string, opts ...ParseOpt) (Issues, error) {
	body, off, err := TopComment(src)
	if err != nil {
		return nil, err
	}
	opt := parseOptFrom(opts)
	drv := opt.Driver
	if drv == nil {
		drv = getJSONDriver()
	}
	data := []byte(body)
	found, err := eng.DetectDuplicateKeys(engineTokenSource(drv.NewBytes(data)), -1)
	if err != nil {
		return nil, decodeError(err, len(data), src, int64(off))
	}
	var iss Issues
	for _, si := range found {
		iss = AppendIssues(iss, fromEngineIssue(si, Warn, src, int64(off)))
	}
	return iss, nil
}
