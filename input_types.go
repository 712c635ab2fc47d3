package goisf

import (
	"strconv"
)

// Input keys shared by every variant.
const (
	keyName  = "NAME"
	keyType  = "TYPE"
	keyLabel = "LABEL"
)

// Variant-specific input keys.
const (
	keyDefault  = "DEFAULT"
	keyMin      = "MIN"
	keyMax      = "MAX"
	keyIdentity = "IDENTITY"
	keyValues   = "VALUES"
	keyLabels   = "LABELS"
)

var variantKeys = []string{keyDefault, keyMin, keyMax, keyIdentity, keyValues, keyLabels}

// variant binds an input TYPE to the keys it accepts and to the functions
// that move it between the generic tree and the model.
type variant struct {
	keys   []string
	decode func(o object) (InputType, error)
	encode func(t InputType, out map[string]any, opt EncodeOpt)
}

func (v variant) allows(key string) bool {
	for _, k := range v.keys {
		if k == key {
			return true
		}
	}
	return false
}

var numericKeys = []string{keyDefault, keyMin, keyMax, keyIdentity}

var variants map[InputKind]variant

func init() {
	variants = map[InputKind]variant{
		KindEvent: {
			decode: func(object) (InputType, error) { return InputEvent{}, nil },
			encode: func(InputType, map[string]any, EncodeOpt) {},
		},
		KindBool: {
			keys: []string{keyDefault},
			decode: func(o object) (InputType, error) {
				def, err := o.optBool(keyDefault)
				if err != nil {
					return nil, err
				}
				return InputBool{Default: def}, nil
			},
			encode: func(t InputType, out map[string]any, _ EncodeOpt) {
				if b := t.(InputBool); b.Default != nil {
					out[keyDefault] = *b.Default
				}
			},
		},
		KindLong: {
			keys:   variantKeys,
			decode: decodeLong,
			encode: encodeLong,
		},
		KindFloat: {
			keys: numericKeys,
			decode: func(o object) (InputType, error) {
				var f InputFloat
				for _, field := range []struct {
					key string
					dst **float64
				}{{keyDefault, &f.Default}, {keyMin, &f.Min}, {keyMax, &f.Max}, {keyIdentity, &f.Identity}} {
					v, err := o.float(field.key)
					if err != nil {
						return nil, err
					}
					*field.dst = v
				}
				return f, nil
			},
			encode: func(t InputType, out map[string]any, _ EncodeOpt) {
				f := t.(InputFloat)
				putFloat(out, keyDefault, f.Default)
				putFloat(out, keyMin, f.Min)
				putFloat(out, keyMax, f.Max)
				putFloat(out, keyIdentity, f.Identity)
			},
		},
		KindPoint2D: {
			keys: numericKeys,
			decode: func(o object) (InputType, error) {
				var pt InputPoint2D
				for _, field := range []struct {
					key string
					dst **Vec2
				}{{keyDefault, &pt.Default}, {keyMin, &pt.Min}, {keyMax, &pt.Max}, {keyIdentity, &pt.Identity}} {
					v, err := o.vector(field.key, 2)
					if err != nil {
						return nil, err
					}
					if v != nil {
						*field.dst = &Vec2{v[0], v[1]}
					}
				}
				return pt, nil
			},
			encode: func(t InputType, out map[string]any, _ EncodeOpt) {
				pt := t.(InputPoint2D)
				for key, v := range map[string]*Vec2{keyDefault: pt.Default, keyMin: pt.Min, keyMax: pt.Max, keyIdentity: pt.Identity} {
					if v != nil {
						out[key] = []any{v[0], v[1]}
					}
				}
			},
		},
		KindColor: {
			keys: numericKeys,
			decode: func(o object) (InputType, error) {
				var c InputColor
				for _, field := range []struct {
					key string
					dst **RGBA
				}{{keyDefault, &c.Default}, {keyMin, &c.Min}, {keyMax, &c.Max}, {keyIdentity, &c.Identity}} {
					v, err := o.vector(field.key, 4)
					if err != nil {
						return nil, err
					}
					if v != nil {
						*field.dst = &RGBA{v[0], v[1], v[2], v[3]}
					}
				}
				return c, nil
			},
			encode: func(t InputType, out map[string]any, _ EncodeOpt) {
				c := t.(InputColor)
				for key, v := range map[string]*RGBA{keyDefault: c.Default, keyMin: c.Min, keyMax: c.Max, keyIdentity: c.Identity} {
					if v != nil {
						out[key] = []any{v[0], v[1], v[2], v[3]}
					}
				}
			},
		},
		KindImage: {
			decode: func(object) (InputType, error) { return InputImage{}, nil },
			encode: func(InputType, map[string]any, EncodeOpt) {},
		},
		KindAudio: {
			keys: []string{keyMax},
			decode: func(o object) (InputType, error) {
				n, err := o.count(keyMax)
				if err != nil {
					return nil, err
				}
				return InputAudio{Samples: n}, nil
			},
			encode: func(t InputType, out map[string]any, _ EncodeOpt) {
				if a := t.(InputAudio); a.Samples != nil {
					out[keyMax] = int64(*a.Samples)
				}
			},
		},
		KindAudioFFT: {
			keys: []string{keyMax},
			decode: func(o object) (InputType, error) {
				n, err := o.count(keyMax)
				if err != nil {
					return nil, err
				}
				return InputAudioFFT{Columns: n}, nil
			},
			encode: func(t InputType, out map[string]any, _ EncodeOpt) {
				if a := t.(InputAudioFFT); a.Columns != nil {
					out[keyMax] = int64(*a.Columns)
				}
			},
		},
	}
}

// KnownInputKinds lists every TYPE value the mapper accepts.
func KnownInputKinds() []InputKind {
	return []InputKind{KindEvent, KindBool, KindLong, KindFloat, KindPoint2D, KindColor, KindImage, KindAudio, KindAudioFFT}
}

func decodeLong(o object) (InputType, error) {
	var l InputLong
	for _, field := range []struct {
		key string
		dst **int64
	}{{keyDefault, &l.Default}, {keyMin, &l.Min}, {keyMax, &l.Max}, {keyIdentity, &l.Identity}} {
		v, err := o.integer(field.key)
		if err != nil {
			return nil, err
		}
		*field.dst = v
	}

	values, err := o.ints(keyValues)
	if err != nil {
		return nil, err
	}
	labels, err := o.strings(keyLabels)
	if err != nil {
		return nil, err
	}
	switch {
	case values == nil && labels != nil:
		return nil, fail(StageMap, o.path.Field(keyLabels), CodeInvalidEnum, "LABELS requires VALUES", nil)
	case values != nil && labels != nil && len(values) != len(labels):
		return nil, fail(StageMap, o.path.Field(keyLabels), CodeInvalidEnum,
			strconv.Itoa(len(labels))+" labels for "+strconv.Itoa(len(values))+" values",
			map[string]any{"values": len(values), "labels": len(labels)})
	}
	if values != nil {
		l.Options = make([]LongOption, len(values))
		for i, v := range values {
			l.Options[i].Value = v
			if labels != nil {
				l.Options[i].Label = labels[i]
			}
		}
		l.Unlabeled = labels == nil
	}
	return l, nil
}

func encodeLong(t InputType, out map[string]any, opt EncodeOpt) {
	l := t.(InputLong)
	putInt(out, keyDefault, l.Default)
	putInt(out, keyMin, l.Min)
	putInt(out, keyMax, l.Max)
	putInt(out, keyIdentity, l.Identity)
	if l.Options == nil || (len(l.Options) == 0 && opt.Empty == EmptyOmit) {
		return
	}
	values := make([]any, len(l.Options))
	for i, o := range l.Options {
		values[i] = o.Value
	}
	out[keyValues] = values
	if l.Unlabeled {
		return
	}
	labels := make([]any, len(l.Options))
	for i, o := range l.Options {
		labels[i] = o.Label
	}
	out[keyLabels] = labels
}

func putFloat(out map[string]any, key string, v *float64) {
	if v != nil {
		out[key] = *v
	}
}

func putInt(out map[string]any, key string, v *int64) {
	if v != nil {
		out[key] = *v
	}
}
