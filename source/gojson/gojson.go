// Package gojson adapts github.com/goccy/go-json's streaming decoder to the
// engine token interface. It is the default driver.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/goisf/internal/engine"
)

type source struct {
	dec    *j.Decoder
	framer eng.Framer
	last   int64
	err    error
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// Separators are not checked on this path; use NewBytes for untrusted input.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec, last: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
// The streaming tokenizer skips ',' and ':' without checking their placement,
// so the whole input is validated first; a malformed document reports its
// syntax error from the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	s := &source{dec: j.NewDecoder(bytes.NewReader(b)), last: -1}
	s.dec.UseNumber()
	if !j.Valid(b) {
		var v any
		err := j.Unmarshal(b, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		s.err = s.wrap(err)
	}
	return s
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	start := s.dec.InputOffset()
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, s.wrap(err)
	}
	s.last = s.dec.InputOffset()

	switch v := tok.(type) {
	case j.Delim:
		return eng.Token{Kind: s.framer.Delim(byte(v)), Offset: start}, nil
	case string:
		return eng.Token{Kind: s.framer.Text(), String: v, Offset: start}, nil
	case j.Number:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: start}, nil
	case float64:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: start}, nil
	case bool:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: start}, nil
	default:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNull, Offset: start}, nil
	}
}

func (s *source) Location() int64 { return s.last }

func (s *source) wrap(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	var se *j.SyntaxError
	if errors.As(err, &se) {
		return &eng.SyntaxError{Offset: se.Offset, Err: err}
	}
	return &eng.SyntaxError{Offset: s.dec.InputOffset(), Err: err}
}
