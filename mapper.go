package goisf

import (
	"fmt"
	"strings"
)

// Top-level descriptor keys.
const (
	keyVersion           = "ISFVSN"
	keyShaderVersion     = "VSN"
	keyDescription       = "DESCRIPTION"
	keyCredit            = "CREDIT"
	keyCategories        = "CATEGORIES"
	keyInputs            = "INPUTS"
	keyPasses            = "PASSES"
	keyImported          = "IMPORTED"
	keyPersistentBuffers = "PERSISTENT_BUFFERS"
)

// Pass, buffer and import keys.
const (
	keyTarget     = "TARGET"
	keyPersistent = "PERSISTENT"
	keyFloat      = "FLOAT"
	keyWidth      = "WIDTH"
	keyHeight     = "HEIGHT"
	keyPath       = "PATH"
)

var (
	topLevelKeys = []string{keyVersion, keyShaderVersion, keyDescription, keyCredit, keyCategories,
		keyInputs, keyPasses, keyImported, keyPersistentBuffers}
	passKeys   = []string{keyTarget, keyPersistent, keyFloat, keyWidth, keyHeight}
	bufferKeys = []string{keyWidth, keyHeight, keyFloat}
)

// Decode maps a generic JSON tree (as produced by the JSON drivers or by
// encoding/json into an any) onto the document model. The first problem
// aborts decoding; no partial document is returned.
func Decode(tree any, opts ...ParseOpt) (Isf, error) {
	d, _, err := decodeDocument(tree, parseOptFrom(opts))
	return d, err
}

// mapper carries options and collects warnings during one decode.
type mapper struct {
	opt      ParseOpt
	warnings Issues
}

func decodeDocument(tree any, opt ParseOpt) (Isf, Issues, error) {
	m := &mapper{opt: opt}
	d, err := m.document(tree)
	if err != nil {
		return Isf{}, nil, err
	}
	return d, m.warnings, nil
}

// unknown applies the UnknownPolicy to every key of o not listed in known.
func (m *mapper) unknown(o object, known ...[]string) error {
	if m.opt.Unknown == UnknownIgnore {
		return nil
	}
	for _, k := range o.keys() {
		if contains(k, known...) {
			continue
		}
		if m.opt.Unknown == UnknownStrict {
			return fail(StageMap, o.path.Field(k), CodeUnknownKey, "key "+k+" is not part of ISF", map[string]any{"key": k})
		}
		m.warnings = AppendIssues(m.warnings, warnAt(StageMap, o.path.Field(k), CodeUnknownKey, "key "+k+" is not part of ISF"))
	}
	return nil
}

func contains(k string, sets ...[]string) bool {
	for _, set := range sets {
		for _, s := range set {
			if s == k {
				return true
			}
		}
	}
	return false
}

func (m *mapper) document(tree any) (Isf, error) {
	o, err := asObject(tree, Root(), m.opt)
	if err != nil {
		return Isf{}, err
	}
	var d Isf
	if d.Version, err = o.text(keyVersion); err != nil {
		return Isf{}, err
	}
	if d.ShaderVersion, err = o.text(keyShaderVersion); err != nil {
		return Isf{}, err
	}
	if d.Description, _, err = o.str(keyDescription); err != nil {
		return Isf{}, err
	}
	if d.Credit, _, err = o.str(keyCredit); err != nil {
		return Isf{}, err
	}
	if d.Categories, err = o.strings(keyCategories); err != nil {
		return Isf{}, err
	}
	if d.Inputs, err = m.inputs(o); err != nil {
		return Isf{}, err
	}
	if d.Passes, err = m.passes(o); err != nil {
		return Isf{}, err
	}
	if d.Imported, err = m.imported(o); err != nil {
		return Isf{}, err
	}
	if d.PersistentBuffers, err = m.persistentBuffers(o); err != nil {
		return Isf{}, err
	}
	if err := m.unknown(o, topLevelKeys); err != nil {
		return Isf{}, err
	}
	return d, nil
}

func (m *mapper) array(o object, key string) ([]any, bool, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, false, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, true, mismatch(o.path.Field(key), "array", v)
	}
	return arr, true, nil
}

func (m *mapper) inputs(o object) ([]Input, error) {
	arr, ok, err := m.array(o, keyInputs)
	if !ok || err != nil {
		return nil, err
	}
	out := make([]Input, 0, len(arr))
	seen := make(map[string]int, len(arr))
	for i, raw := range arr {
		p := o.path.Field(keyInputs).Index(i)
		in, err := m.input(raw, p)
		if err != nil {
			return nil, err
		}
		if err := validateInput(StageMap, p, in); err != nil {
			return nil, err
		}
		if err := checkUnique(StageMap, p, in.Name, i, seen); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func (m *mapper) input(raw any, p PathRef) (Input, error) {
	o, err := asObject(raw, p, m.opt)
	if err != nil {
		return Input{}, err
	}
	name, err := o.requiredStr(keyName)
	if err != nil {
		return Input{}, err
	}
	if name == "" {
		return Input{}, fail(StageMap, p.Field(keyName), CodeEmptyName, "", nil)
	}
	typ, err := o.requiredStr(keyType)
	if err != nil {
		return Input{}, err
	}
	v, ok := variants[InputKind(typ)]
	if !ok {
		return Input{}, fail(StageMap, p.Field(keyType), CodeUnknownInputType,
			fmt.Sprintf("input %q declares TYPE %q; expected one of %s", name, typ, kindList()),
			map[string]any{"name": name, "type": typ})
	}
	label, _, err := o.str(keyLabel)
	if err != nil {
		return Input{}, err
	}

	// ISF input keys the variant does not accept are errors regardless of
	// the unknown-key policy: dropping them would lose data.
	for _, k := range o.keys() {
		if contains(k, variantKeys) && !v.allows(k) && o.has(k) {
			return Input{}, fail(StageMap, p.Field(k), CodeFieldNotAllowed,
				fmt.Sprintf("%s is not valid for TYPE %q", k, typ),
				map[string]any{"key": k, "type": typ})
		}
	}
	t, err := v.decode(o)
	if err != nil {
		return Input{}, err
	}
	if err := m.unknown(o, []string{keyName, keyType, keyLabel}, v.keys); err != nil {
		return Input{}, err
	}
	return Input{Name: name, Label: label, Type: t}, nil
}

func kindList() string {
	kinds := KnownInputKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (m *mapper) passes(o object) ([]Pass, error) {
	arr, ok, err := m.array(o, keyPasses)
	if !ok || err != nil {
		return nil, err
	}
	out := make([]Pass, 0, len(arr))
	for i, raw := range arr {
		po, err := asObject(raw, o.path.Field(keyPasses).Index(i), m.opt)
		if err != nil {
			return nil, err
		}
		var p Pass
		if p.Target, _, err = po.str(keyTarget); err != nil {
			return nil, err
		}
		if p.Persistent, err = po.flag(keyPersistent); err != nil {
			return nil, err
		}
		if p.Float, err = po.flag(keyFloat); err != nil {
			return nil, err
		}
		if p.Width, err = po.text(keyWidth); err != nil {
			return nil, err
		}
		if p.Height, err = po.text(keyHeight); err != nil {
			return nil, err
		}
		if err := m.unknown(po, passKeys); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// imported accepts the ISF 2 object form {"name": {"PATH": ...}} and the
// ISF 1 array form [{"NAME": ..., "PATH": ...}].
func (m *mapper) imported(o object) (map[string]ImportedResource, error) {
	v, ok := o.get(keyImported)
	if !ok {
		return nil, nil
	}
	p := o.path.Field(keyImported)
	out := make(map[string]ImportedResource)
	switch t := v.(type) {
	case map[string]any:
		entries := object{m: t, path: p, opt: m.opt}
		for _, name := range entries.keys() {
			eo, err := asObject(t[name], p.Field(name), m.opt)
			if err != nil {
				return nil, err
			}
			path, err := eo.requiredStr(keyPath)
			if err != nil {
				return nil, err
			}
			if err := m.unknown(eo, []string{keyPath}); err != nil {
				return nil, err
			}
			out[name] = ImportedResource{Path: path}
		}
	case []any:
		for i, raw := range t {
			eo, err := asObject(raw, p.Index(i), m.opt)
			if err != nil {
				return nil, err
			}
			name, err := eo.requiredStr(keyName)
			if err != nil {
				return nil, err
			}
			path, err := eo.requiredStr(keyPath)
			if err != nil {
				return nil, err
			}
			if _, dup := out[name]; dup {
				return nil, fail(StageMap, p.Index(i).Field(keyName), CodeDuplicateKey, "resource "+name+" imported twice", map[string]any{"name": name})
			}
			if err := m.unknown(eo, []string{keyName, keyPath}); err != nil {
				return nil, err
			}
			out[name] = ImportedResource{Path: path}
		}
	default:
		return nil, mismatch(p, "object", v)
	}
	return out, nil
}

// persistentBuffers accepts a list of buffer names or an object mapping names
// to {WIDTH, HEIGHT, FLOAT}.
func (m *mapper) persistentBuffers(o object) (map[string]PersistentBuffer, error) {
	v, ok := o.get(keyPersistentBuffers)
	if !ok {
		return nil, nil
	}
	p := o.path.Field(keyPersistentBuffers)
	out := make(map[string]PersistentBuffer)
	switch t := v.(type) {
	case []any:
		for i, raw := range t {
			name, ok := raw.(string)
			if !ok {
				return nil, mismatch(p.Index(i), "string", raw)
			}
			if _, dup := out[name]; dup {
				return nil, fail(StageMap, p.Index(i), CodeDuplicateKey, "buffer "+name+" declared twice", map[string]any{"name": name})
			}
			out[name] = PersistentBuffer{}
		}
	case map[string]any:
		bo := object{m: t, path: p, opt: m.opt}
		for _, name := range bo.keys() {
			eo, err := asObject(t[name], p.Field(name), m.opt)
			if err != nil {
				return nil, err
			}
			var b PersistentBuffer
			if b.Width, err = eo.text(keyWidth); err != nil {
				return nil, err
			}
			if b.Height, err = eo.text(keyHeight); err != nil {
				return nil, err
			}
			if b.Float, err = eo.flag(keyFloat); err != nil {
				return nil, err
			}
			if err := m.unknown(eo, bufferKeys); err != nil {
				return nil, err
			}
			out[name] = b
		}
	default:
		return nil, mismatch(p, "array or object", v)
	}
	return out, nil
}
