package gojson

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	eng "github.com/reoring/goisf/internal/engine"
)

func collect(t *testing.T, src eng.TokenSource) []eng.Token {
	t.Helper()
	var out []eng.Token
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, tok)
	}
}

func TestNewBytes_Tokens(t *testing.T) {
	toks := collect(t, NewBytes([]byte(`{"NAME": "a", "MAX": 2.50, "VALUES": [1, 2], "ON": true, "X": null}`)))
	kinds := make([]eng.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindNumber,
		eng.KindKey, eng.KindBeginArray, eng.KindNumber, eng.KindNumber, eng.KindEndArray,
		eng.KindKey, eng.KindBool,
		eng.KindKey, eng.KindNull,
		eng.KindEndObject,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
	if f, err := strconv.ParseFloat(toks[4].Number, 64); err != nil || f != 2.5 {
		t.Fatalf("unexpected number text %q", toks[4].Number)
	}
}

func TestNewBytes_RejectsMisplacedSeparators(t *testing.T) {
	for _, in := range []string{`{"A" 1}`, `{"A":1 "B":2}`, `[1 2]`, ``} {
		_, err := NewBytes([]byte(in)).NextToken()
		var se *eng.SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("%q: expected SyntaxError, got %v", in, err)
		}
	}
}

func TestNewBytes_DecodesTree(t *testing.T) {
	v, err := eng.DecodeTree(NewBytes([]byte(`{"INPUTS": [{"NAME": "a"}]}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(map[string]any)["INPUTS"].([]any); !ok {
		t.Fatalf("unexpected tree: %#v", v)
	}
}

func TestNewReader_Location(t *testing.T) {
	src := NewReader(strings.NewReader(`[true]`))
	if src.Location() != -1 {
		t.Fatalf("location before the first token should be unknown")
	}
	if _, err := src.NextToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Location() <= 0 {
		t.Fatalf("location should advance, got %d", src.Location())
	}
}
