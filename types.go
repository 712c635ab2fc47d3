package goisf

// UnknownPolicy controls how keys the ISF vocabulary does not define are handled.
type UnknownPolicy int

const (
	UnknownWarn   UnknownPolicy = iota // Keep parsing; report a warning issue.
	UnknownStrict                      // Reject unknown keys with an error.
	UnknownIgnore                      // Drop unknown keys silently.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate JSON keys.
type Strictness struct {
	OnDuplicateKey Severity
}

// ParseOpt bundles parsing options. Callers passing their own value usually
// start from DefaultParseOpt.
type ParseOpt struct {
	Unknown    UnknownPolicy
	Strictness Strictness
	MaxDepth   int   // 0 disables the nesting limit.
	MaxBytes   int64 // 0 disables the size limit on the descriptor JSON.
	// Lenient accepts 0/1 numbers for booleans and numbers where ISF expects
	// version or dimension strings.
	Lenient bool
	// Driver overrides the process-wide JSON driver for this call.
	Driver JSONDriver
}

// DefaultParseOpt returns the options Parse uses when none are given:
// unknown keys warn, duplicate keys are errors, lenient scalars.
func DefaultParseOpt() ParseOpt {
	return ParseOpt{
		Unknown:    UnknownWarn,
		Strictness: Strictness{OnDuplicateKey: Error},
		MaxDepth:   64,
		Lenient:    true,
	}
}

func parseOptFrom(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return DefaultParseOpt()
	}
	return opts[len(opts)-1]
}

// EmptyPolicy decides whether explicitly empty containers (CATEGORIES, INPUTS,
// PASSES, IMPORTED, PERSISTENT_BUFFERS, VALUES/LABELS) are written out.
// Absent containers are never written.
type EmptyPolicy int

const (
	EmptyPreserve EmptyPolicy = iota // Emit [] / {} when the model holds an empty, non-nil container.
	EmptyOmit                        // Drop empty containers; the canonical, smallest form.
)

// EncodeOpt bundles serialization options.
type EncodeOpt struct {
	Empty EmptyPolicy
}

func encodeOptFrom(opts []EncodeOpt) EncodeOpt {
	if len(opts) == 0 {
		return EncodeOpt{}
	}
	return opts[len(opts)-1]
}
