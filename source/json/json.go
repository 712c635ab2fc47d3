// Package json adapts encoding/json's streaming decoder to the engine token
// interface.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	eng "github.com/reoring/goisf/internal/engine"
)

type source struct {
	dec    *json.Decoder
	framer eng.Framer
	last   int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec, last: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	start := s.dec.InputOffset()
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, s.wrap(err)
	}
	s.last = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		return eng.Token{Kind: s.framer.Delim(byte(v)), Offset: start}, nil
	case string:
		return eng.Token{Kind: s.framer.Text(), String: v, Offset: start}, nil
	case json.Number:
		s.framer.Scalar()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: start}, nil
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
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &eng.SyntaxError{Offset: se.Offset, Err: err}
	}
	return &eng.SyntaxError{Offset: s.dec.InputOffset(), Err: err}
}
