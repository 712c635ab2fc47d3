package goisf

import (
	"maps"
	"slices"
)

// Builder assembles a document in code. Build applies the checks Parse
// applies, so a builder can never produce a document Parse would reject.
//
//	d, err := goisf.NewBuilder().
//		Description("fades to black").
//		Input("level", goisf.InputFloat{Default: goisf.Ptr(0.5), Min: goisf.Ptr(0.0), Max: goisf.Ptr(1.0)}).
//		Label("Level").
//		Build()
type Builder struct {
	d Isf
}

// NewBuilder starts an empty document with ISFVSN 2.0.
func NewBuilder() *Builder {
	return &Builder{d: Isf{Version: "2.0"}}
}

// InputStep is the builder state right after Input. Label applies to that
// input; every other method continues the document chain.
type InputStep struct {
	b *Builder
	i int
}

// Version sets ISFVSN.
func (b *Builder) Version(v string) *Builder { b.d.Version = v; return b }

// ShaderVersion sets VSN, the version of the shader itself.
func (b *Builder) ShaderVersion(v string) *Builder { b.d.ShaderVersion = v; return b }

// Description sets DESCRIPTION.
func (b *Builder) Description(s string) *Builder { b.d.Description = s; return b }

// Credit sets CREDIT.
func (b *Builder) Credit(s string) *Builder { b.d.Credit = s; return b }

// Categories appends category tags.
func (b *Builder) Categories(tags ...string) *Builder {
	b.d.Categories = append(b.d.Categories, tags...)
	return b
}

// Input appends an input; the returned step can attach a label.
func (b *Builder) Input(name string, t InputType) *InputStep {
	b.d.Inputs = append(b.d.Inputs, Input{Name: name, Type: t})
	return &InputStep{b: b, i: len(b.d.Inputs) - 1}
}

// Pass appends a render pass.
func (b *Builder) Pass(p Pass) *Builder {
	b.d.Passes = append(b.d.Passes, p)
	return b
}

// Import binds an image file to a sampler name.
func (b *Builder) Import(name, path string) *Builder {
	if b.d.Imported == nil {
		b.d.Imported = map[string]ImportedResource{}
	}
	b.d.Imported[name] = ImportedResource{Path: path}
	return b
}

// PersistentBuffer declares a buffer that keeps its contents across frames.
func (b *Builder) PersistentBuffer(name string, pb PersistentBuffer) *Builder {
	if b.d.PersistentBuffers == nil {
		b.d.PersistentBuffers = map[string]PersistentBuffer{}
	}
	b.d.PersistentBuffers[name] = pb
	return b
}

// Build validates and returns a copy of the document; the builder may keep
// being used afterwards.
func (b *Builder) Build() (Isf, error) {
	d := b.d
	d.Categories = slices.Clone(d.Categories)
	d.Inputs = slices.Clone(d.Inputs)
	d.Passes = slices.Clone(d.Passes)
	d.Imported = maps.Clone(d.Imported)
	d.PersistentBuffers = maps.Clone(d.PersistentBuffers)
	if err := d.Validate(); err != nil {
		return Isf{}, err
	}
	return d, nil
}

// MustBuild is Build that panics on error.
func (b *Builder) MustBuild() Isf {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// Label sets the current input's label and returns the builder.
func (s *InputStep) Label(l string) *Builder {
	s.b.d.Inputs[s.i].Label = l
	return s.b
}

// The remaining InputStep methods continue the chain on the builder.

func (s *InputStep) Version(v string) *Builder                 { return s.b.Version(v) }
func (s *InputStep) ShaderVersion(v string) *Builder           { return s.b.ShaderVersion(v) }
func (s *InputStep) Description(d string) *Builder             { return s.b.Description(d) }
func (s *InputStep) Credit(c string) *Builder                  { return s.b.Credit(c) }
func (s *InputStep) Categories(tags ...string) *Builder        { return s.b.Categories(tags...) }
func (s *InputStep) Input(name string, t InputType) *InputStep { return s.b.Input(name, t) }
func (s *InputStep) Pass(p Pass) *Builder                      { return s.b.Pass(p) }
func (s *InputStep) Import(name, path string) *Builder         { return s.b.Import(name, path) }
func (s *InputStep) Build() (Isf, error)                       { return s.b.Build() }
func (s *InputStep) MustBuild() Isf                            { return s.b.MustBuild() }

// PersistentBuffer continues the chain; see Builder.PersistentBuffer.
func (s *InputStep) PersistentBuffer(name string, pb PersistentBuffer) *Builder {
	return s.b.PersistentBuffer(name, pb)
}
