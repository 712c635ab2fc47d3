package engine

// Framer tracks container nesting for drivers whose underlying decoder does
// not tell object keys apart from string values.
type Framer struct {
	stack []frame
}

type frame struct {
	object    bool
	expectKey bool
}

// Delim classifies one of '{', '}', '[' or ']' and updates the nesting.
func (f *Framer) Delim(c byte) Kind {
	switch c {
	case '{':
		f.stack = append(f.stack, frame{object: true, expectKey: true})
		return KindBeginObject
	case '[':
		f.stack = append(f.stack, frame{})
		return KindBeginArray
	case '}':
		f.pop()
		return KindEndObject
	default:
		f.pop()
		return KindEndArray
	}
}

// Text reports whether a string token is an object key or a value.
func (f *Framer) Text() Kind {
	if n := len(f.stack); n > 0 && f.stack[n-1].object && f.stack[n-1].expectKey {
		f.stack[n-1].expectKey = false
		return KindKey
	}
	f.valueDone()
	return KindString
}

// Scalar records that a non-string scalar value was consumed.
func (f *Framer) Scalar() { f.valueDone() }

func (f *Framer) pop() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.valueDone()
}

func (f *Framer) valueDone() {
	if n := len(f.stack); n > 0 && f.stack[n-1].object {
		f.stack[n-1].expectKey = true
	}
}
