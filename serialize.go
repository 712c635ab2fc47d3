package goisf

import (
	json "github.com/goccy/go-json"
)

// Encode converts a document into the generic JSON tree Decode accepts, so
// that Decode(Encode(d)) equals d. The document is validated first; fields
// that are unset in the model are omitted, as are false flags.
func Encode(d Isf, opts ...EncodeOpt) (map[string]any, error) {
	return encodeWith(d, encoder{opt: encodeOptFrom(opts)})
}

// Marshal encodes the document as compact JSON text. Object keys are sorted.
func Marshal(d Isf, opts ...EncodeOpt) ([]byte, error) {
	tree, err := Encode(d, opts...)
	if err != nil {
		return nil, err
	}
	return marshalTree(json.Marshal(tree))
}

// MarshalIndent is Marshal with indentation, the form usually written back
// into a shader's leading comment.
func MarshalIndent(d Isf, prefix, indent string, opts ...EncodeOpt) ([]byte, error) {
	tree, err := Encode(d, opts...)
	if err != nil {
		return nil, err
	}
	return marshalTree(json.MarshalIndent(tree, prefix, indent))
}

func marshalTree(b []byte, err error) ([]byte, error) {
	if err != nil {
		it := IssueAt(StageEncode, Root(), CodeInvalidType, err.Error(), nil)
		it.Cause = err
		return nil, Issues{it}
	}
	return b, nil
}

// encoder writes the model back out. seen is nil for canonical output; when
// set, values explicitly written in the source survive even where the
// canonical form drops them.
type encoder struct {
	opt  EncodeOpt
	seen PresenceMap
}

func (e encoder) explicit(p PathRef) bool { return e.seen.Seen(p.Pointer()) }

// container reports whether a list or map of length n belongs in the output.
func (e encoder) container(p PathRef, isNil bool, n int) bool {
	if isNil {
		return false
	}
	return n > 0 || e.opt.Empty == EmptyPreserve || e.explicit(p)
}

func (e encoder) flag(out map[string]any, p PathRef, key string, v bool) {
	if v || e.explicit(p.Field(key)) {
		out[key] = v
	}
}

func putString(out map[string]any, key, v string) {
	if v != "" {
		out[key] = v
	}
}

func encodeWith(d Isf, e encoder) (map[string]any, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	root := Root()
	out := make(map[string]any)
	putString(out, keyVersion, d.Version)
	putString(out, keyShaderVersion, d.ShaderVersion)
	putString(out, keyDescription, d.Description)
	putString(out, keyCredit, d.Credit)

	if e.container(root.Field(keyCategories), d.Categories == nil, len(d.Categories)) {
		cats := make([]any, len(d.Categories))
		for i, c := range d.Categories {
			cats[i] = c
		}
		out[keyCategories] = cats
	}

	if e.container(root.Field(keyInputs), d.Inputs == nil, len(d.Inputs)) {
		inputs := make([]any, len(d.Inputs))
		for i, in := range d.Inputs {
			inputs[i] = e.input(root.Field(keyInputs).Index(i), in)
		}
		out[keyInputs] = inputs
	}

	if e.container(root.Field(keyPasses), d.Passes == nil, len(d.Passes)) {
		passes := make([]any, len(d.Passes))
		for i, p := range d.Passes {
			po := make(map[string]any)
			pp := root.Field(keyPasses).Index(i)
			putString(po, keyTarget, p.Target)
			e.flag(po, pp, keyPersistent, p.Persistent)
			e.flag(po, pp, keyFloat, p.Float)
			putString(po, keyWidth, p.Width)
			putString(po, keyHeight, p.Height)
			passes[i] = po
		}
		out[keyPasses] = passes
	}

	if e.container(root.Field(keyImported), d.Imported == nil, len(d.Imported)) {
		imported := make(map[string]any, len(d.Imported))
		for name, r := range d.Imported {
			imported[name] = map[string]any{keyPath: r.Path}
		}
		out[keyImported] = imported
	}

	if e.container(root.Field(keyPersistentBuffers), d.PersistentBuffers == nil, len(d.PersistentBuffers)) {
		buffers := make(map[string]any, len(d.PersistentBuffers))
		for name, b := range d.PersistentBuffers {
			bo := make(map[string]any)
			putString(bo, keyWidth, b.Width)
			putString(bo, keyHeight, b.Height)
			e.flag(bo, root.Field(keyPersistentBuffers).Field(name), keyFloat, b.Float)
			buffers[name] = bo
		}
		out[keyPersistentBuffers] = buffers
	}
	return out, nil
}

func (e encoder) input(p PathRef, in Input) map[string]any {
	out := map[string]any{keyName: in.Name, keyType: string(in.Kind())}
	putString(out, keyLabel, in.Label)
	opt := e.opt
	if e.explicit(p.Field(keyValues)) {
		opt.Empty = EmptyPreserve
	}
	variants[in.Kind()].encode(in.Type, out, opt)
	return out
}
