package goisf

// Parse extracts the descriptor from the leading comment of a shader source
// and maps it onto the document model. The first problem aborts parsing;
// errors are Issues tagged with the stage they came from. Warnings are
// dropped; use ParseWithMeta to see them.
func Parse(src string, opts ...ParseOpt) (Isf, error) {
	dm, err := parseSource(src, parseOptFrom(opts), false)
	return dm.Value, err
}

// ParseWithMeta is Parse that also returns the JSON pointers written in the
// source and any warnings raised under the Warn policies.
func ParseWithMeta(src string, opts ...ParseOpt) (Decoded, error) {
	return parseSource(src, parseOptFrom(opts), true)
}

// ParseJSON maps a bare descriptor, without the surrounding comment.
func ParseJSON(data []byte, opts ...ParseOpt) (Isf, error) {
	dm, err := parseDescriptor(data, parseOptFrom(opts), string(data), 0, false)
	return dm.Value, err
}

func parseSource(src string, opt ParseOpt, meta bool) (Decoded, error) {
	body, off, err := TopComment(src)
	if err != nil {
		return Decoded{}, err
	}
	return parseDescriptor([]byte(body), opt, src, int64(off), meta)
}

func parseDescriptor(data []byte, opt ParseOpt, doc string, base int64, meta bool) (Decoded, error) {
	tree, warnings, err := decodeTree(data, opt, doc, base)
	if err != nil {
		return Decoded{}, err
	}
	d, mapped, err := decodeDocument(tree, opt)
	if err != nil {
		return Decoded{}, err
	}
	dm := Decoded{Value: d}
	if meta {
		dm.Warnings = AppendIssues(warnings, mapped...)
		dm.Presence = collectPresence(tree)
	}
	return dm, nil
}
