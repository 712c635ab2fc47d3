package goisf

import (
	"sync"

	eng "github.com/reoring/goisf/internal/engine"
	gojsonsrc "github.com/reoring/goisf/source/gojson"
	jsonsrc "github.com/reoring/goisf/source/json"
)

// TokenKind enumerates JSON token kinds. The order mirrors engine.Kind.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text so integers and floats keep their spelling.
	Bool   bool
	Offset int64
}

// Source abstracts over JSON tokenizers.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts descriptor bytes into a Source. This is the JSON
// Adapter seam: the mapper only ever sees the generic tree built from these
// tokens, so backends can be swapped without touching validation.
type JSONDriver interface {
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// GoJSONDriver returns the default driver backed by github.com/goccy/go-json.
func GoJSONDriver() JSONDriver { return goJSONDriver{} }

// StdJSONDriver returns a driver backed by encoding/json.
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

type goJSONDriver struct{}

func (goJSONDriver) NewBytes(b []byte) Source { return &engineSourceAdapter{inner: gojsonsrc.NewBytes(b)} }
func (goJSONDriver) Name() string             { return "go-json" }

type stdJSONDriver struct{}

func (stdJSONDriver) NewBytes(b []byte) Source { return &engineSourceAdapter{inner: jsonsrc.NewBytes(b)} }
func (stdJSONDriver) Name() string             { return "encoding/json" }

// engineSourceAdapter exposes an engine.TokenSource as a public Source.
type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// tokenSourceAdapter exposes a public Source to the engine.
type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}
