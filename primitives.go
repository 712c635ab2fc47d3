package goisf

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// object is a descriptor object under decoding together with its location
// and the active options.
type object struct {
	m    map[string]any
	path PathRef
	opt  ParseOpt
}

func asObject(v any, p PathRef, opt ParseOpt) (object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return object{}, mismatch(p, "object", v)
	}
	return object{m: m, path: p, opt: opt}, nil
}

// get returns the value under key; JSON null counts as absent.
func (o object) get(key string) (any, bool) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o object) has(key string) bool {
	_, ok := o.get(key)
	return ok
}

// keys returns the object's keys in a stable order so that the first
// reported problem does not depend on map iteration.
func (o object) keys() []string {
	out := make([]string, 0, len(o.m))
	for k := range o.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (o object) str(key string) (string, bool, error) {
	v, ok := o.get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, mismatch(o.path.Field(key), "string", v)
	}
	return s, true, nil
}

func (o object) requiredStr(key string) (string, error) {
	s, ok, err := o.str(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fail(StageMap, o.path.Field(key), CodeRequired, key+" is required", map[string]any{"key": key})
	}
	return s, nil
}

// text reads a string; in lenient mode a number is accepted and kept in its
// written form.
func (o object) text(key string) (string, error) {
	v, ok := o.get(key)
	if !ok {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		if o.opt.Lenient {
			return t.String(), nil
		}
	case float64:
		if o.opt.Lenient {
			return strconv.FormatFloat(t, 'g', -1, 64), nil
		}
	}
	return "", mismatch(o.path.Field(key), "string", v)
}

// flag reads a boolean defaulting to false; lenient mode accepts numbers as
// numericBool does.
func (o object) flag(key string) (bool, error) {
	b, err := o.optBool(key)
	if err != nil || b == nil {
		return false, err
	}
	return *b, nil
}

func (o object) optBool(key string) (*bool, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	if b, ok := v.(bool); ok {
		return &b, nil
	}
	if o.opt.Lenient {
		if b, ok := numericBool(v); ok {
			return &b, nil
		}
	}
	return nil, mismatch(o.path.Field(key), "boolean", v)
}

// numericBool converts a number to a boolean by truncating it to an unsigned
// integer: 0 and fractions below 1 are false, and so are negative fractions,
// which saturate to 0. Negative integers are rejected.
func numericBool(v any) (bool, bool) {
	f, ok := toFloat(v)
	if !ok || (f < 0 && integerLiteral(v)) {
		return false, false
	}
	return f >= 1, true
}

// integerLiteral reports whether v was written without a fraction or exponent.
func integerLiteral(v any) bool {
	switch n := v.(type) {
	case json.Number:
		return !strings.ContainsAny(n.String(), ".eE")
	case int, int64, int32, uint, uint64, uint32:
		return true
	}
	return false
}

func (o object) float(key string) (*float64, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, mismatch(o.path.Field(key), "number", v)
	}
	return &f, nil
}

func (o object) integer(key string) (*int64, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, mismatch(o.path.Field(key), "integer", v)
	}
	return &n, nil
}

// count reads a non-negative integer such as an audio sample hint.
func (o object) count(key string) (*int, error) {
	n, err := o.integer(key)
	if err != nil || n == nil {
		return nil, err
	}
	if *n < 0 || *n > math.MaxInt32 {
		return nil, fail(StageMap, o.path.Field(key), CodeInvalidRange, "expected a non-negative count, got "+strconv.FormatInt(*n, 10), map[string]any{"got": *n})
	}
	c := int(*n)
	return &c, nil
}

// vector reads an array of exactly n numbers.
func (o object) vector(key string, n int) ([]float64, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	p := o.path.Field(key)
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(p, "array of "+strconv.Itoa(n)+" numbers", v)
	}
	if len(arr) != n {
		return nil, fail(StageMap, p, CodeInvalidType,
			"expected "+strconv.Itoa(n)+" components, got "+strconv.Itoa(len(arr)),
			map[string]any{"expected": n, "actual": len(arr)})
	}
	out := make([]float64, n)
	for i, e := range arr {
		f, ok := toFloat(e)
		if !ok {
			return nil, mismatch(p.Index(i), "number", e)
		}
		out[i] = f
	}
	return out, nil
}

// strings reads an array of strings; nil when absent, non-nil when present.
func (o object) strings(key string) ([]string, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	p := o.path.Field(key)
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(p, "array of strings", v)
	}
	out := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, mismatch(p.Index(i), "string", e)
		}
		out[i] = s
	}
	return out, nil
}

// ints reads an array of integers; nil when absent, non-nil when present.
func (o object) ints(key string) ([]int64, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	p := o.path.Field(key)
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(p, "array of integers", v)
	}
	out := make([]int64, len(arr))
	for i, e := range arr {
		n, ok := toInt(e)
		if !ok {
			return nil, mismatch(p.Index(i), "integer", e)
		}
		out[i] = n
	}
	return out, nil
}

func mismatch(p PathRef, expected string, got any) error {
	actual := jsonTypeName(got)
	return fail(StageMap, p, CodeInvalidType, "expected "+expected+", got "+actual,
		map[string]any{"expected": expected, "actual": actual})
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return "unsupported"
}

// toFloat accepts json.Number as produced by the drivers and the native Go
// numeric types a hand-built tree may contain.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

// toInt accepts integral numbers, including ones written with a fraction
// part such as 2.0.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
