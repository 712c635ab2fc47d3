package goisf

import (
	"slices"

	js "github.com/reoring/goisf/jsonschema"
)

// ParamsSchema describes, as JSON Schema, the parameter object a host sends
// to drive the shader: one property per input, keyed by input name, in the
// shape the host supplies values in. Image and audio inputs are references
// to host-side resources and are typed as strings.
func (d Isf) ParamsSchema() *js.Schema {
	s := &js.Schema{
		SchemaURI:            js.Draft,
		Description:          d.Description,
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, len(d.Inputs)),
		AdditionalProperties: false,
	}
	for _, in := range d.Inputs {
		ps := inputSchema(in.Type)
		ps.Title = in.Label
		s.Properties[in.Name] = ps
	}
	return s
}

func inputSchema(t InputType) *js.Schema {
	switch t := t.(type) {
	case InputEvent:
		return &js.Schema{Type: "boolean", Description: "momentary trigger"}
	case InputBool:
		s := &js.Schema{Type: "boolean"}
		if t.Default != nil {
			s.Default = *t.Default
		}
		return s
	case InputFloat:
		s := &js.Schema{Type: "number", Minimum: t.Min, Maximum: t.Max}
		if t.Default != nil {
			s.Default = *t.Default
		}
		return s
	case InputLong:
		s := &js.Schema{Type: "integer", Minimum: intBound(t.Min), Maximum: intBound(t.Max)}
		if t.Default != nil {
			s.Default = *t.Default
		}
		for _, v := range t.Values() {
			s.Enum = append(s.Enum, v)
		}
		return s
	case InputPoint2D:
		s := vectorSchema(vec2Slice(t.Min), vec2Slice(t.Max), 2)
		if t.Default != nil {
			s.Default = slices.Clone(t.Default[:])
		}
		return s
	case InputColor:
		s := vectorSchema(rgbaSlice(t.Min), rgbaSlice(t.Max), 4)
		if t.Default != nil {
			s.Default = slices.Clone(t.Default[:])
		}
		return s
	case InputImage:
		return &js.Schema{Type: "string", Format: "image"}
	case InputAudio:
		return &js.Schema{Type: "string", Format: "audio"}
	case InputAudioFFT:
		return &js.Schema{Type: "string", Format: "audio-fft"}
	}
	return &js.Schema{}
}

// vectorSchema builds a fixed-length number tuple with per-component bounds.
func vectorSchema(lo, hi []float64, n int) *js.Schema {
	items := make([]*js.Schema, n)
	for i := range items {
		items[i] = &js.Schema{Type: "number"}
		if lo != nil {
			items[i].Minimum = Ptr(lo[i])
		}
		if hi != nil {
			items[i].Maximum = Ptr(hi[i])
		}
	}
	return js.Tuple(items...)
}

func intBound(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
