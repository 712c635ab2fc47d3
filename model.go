package goisf

// Isf is the descriptor embedded in the leading comment of an ISF shader
// (the "top-level dict" of the ISF specification).
//
// Optional text fields are empty when absent. Slices and maps are nil when
// the source omitted the key and non-nil (possibly empty) when it was
// written, which is what lets an explicit [] or {} survive a round trip.
type Isf struct {
	Version           string // ISFVSN
	ShaderVersion     string // VSN
	Description       string
	Credit            string
	Categories        []string
	Inputs            []Input
	Passes            []Pass
	Imported          map[string]ImportedResource
	PersistentBuffers map[string]PersistentBuffer
}

// Input is a declared, typed parameter. Names are unique within an Isf.
type Input struct {
	Name  string
	Label string
	Type  InputType
}

// Kind returns the discriminant of the input's variant, or "" when Type is nil.
func (in Input) Kind() InputKind {
	if in.Type == nil {
		return ""
	}
	return in.Type.Kind()
}

// InputKind is the value of an input's TYPE key. Matching is case-sensitive.
type InputKind string

const (
	KindEvent    InputKind = "event"
	KindBool     InputKind = "bool"
	KindLong     InputKind = "long"
	KindFloat    InputKind = "float"
	KindPoint2D  InputKind = "point2D"
	KindColor    InputKind = "color"
	KindImage    InputKind = "image"
	KindAudio    InputKind = "audio"
	KindAudioFFT InputKind = "audioFFT"
)

// InputType is the closed set of input variants. Each variant carries only
// the fields legal for its TYPE.
type InputType interface {
	Kind() InputKind
	isInputType()
}

// Vec2 is a point2D value.
type Vec2 [2]float64

// RGBA is a color value with components in the order red, green, blue, alpha.
type RGBA [4]float64

// InputEvent is a momentary trigger. It has no extra fields.
type InputEvent struct{}

// InputBool is a toggle.
type InputBool struct {
	Default *bool
}

// InputLong is an integer input, usually rendered as a pop-up menu when
// Options is set.
type InputLong struct {
	Default  *int64
	Min      *int64
	Max      *int64
	Identity *int64
	// Options pairs VALUES with LABELS in declaration order.
	Options []LongOption
	// Unlabeled records that VALUES was declared without LABELS. It requires
	// a non-nil Options whose labels are all empty.
	Unlabeled bool
}

// LongOption is one entry of a long input's enumeration.
type LongOption struct {
	Value int64
	Label string
}

// Values returns the enumerated integers in declaration order.
func (l InputLong) Values() []int64 {
	if l.Options == nil {
		return nil
	}
	out := make([]int64, len(l.Options))
	for i, o := range l.Options {
		out[i] = o.Value
	}
	return out
}

// Labels returns the display labels in declaration order, or nil when the
// enumeration is unlabeled.
func (l InputLong) Labels() []string {
	if l.Options == nil || l.Unlabeled {
		return nil
	}
	out := make([]string, len(l.Options))
	for i, o := range l.Options {
		out[i] = o.Label
	}
	return out
}

// InputFloat is a scalar slider. min <= default <= max when present.
type InputFloat struct {
	Default  *float64
	Min      *float64
	Max      *float64
	Identity *float64
}

// InputPoint2D is a 2D position. Range checks apply per axis.
type InputPoint2D struct {
	Default  *Vec2
	Min      *Vec2
	Max      *Vec2
	Identity *Vec2
}

// InputColor is an RGBA color. Range checks apply per component.
type InputColor struct {
	Default  *RGBA
	Min      *RGBA
	Max      *RGBA
	Identity *RGBA
}

// InputImage identifies a texture-sampler input.
type InputImage struct{}

// InputAudio is an audio waveform texture. Samples mirrors the MAX key.
type InputAudio struct {
	Samples *int
}

// InputAudioFFT is an audio spectrum texture. Columns mirrors the MAX key.
type InputAudioFFT struct {
	Columns *int
}

func (InputEvent) Kind() InputKind    { return KindEvent }
func (InputBool) Kind() InputKind     { return KindBool }
func (InputLong) Kind() InputKind     { return KindLong }
func (InputFloat) Kind() InputKind    { return KindFloat }
func (InputPoint2D) Kind() InputKind  { return KindPoint2D }
func (InputColor) Kind() InputKind    { return KindColor }
func (InputImage) Kind() InputKind    { return KindImage }
func (InputAudio) Kind() InputKind    { return KindAudio }
func (InputAudioFFT) Kind() InputKind { return KindAudioFFT }

func (InputEvent) isInputType()    {}
func (InputBool) isInputType()     {}
func (InputLong) isInputType()     {}
func (InputFloat) isInputType()    {}
func (InputPoint2D) isInputType()  {}
func (InputColor) isInputType()    {}
func (InputImage) isInputType()    {}
func (InputAudio) isInputType()    {}
func (InputAudioFFT) isInputType() {}

// Pass is one render invocation. Width and Height hold the dimension
// expression as written (for example "$WIDTH/2.0" or "512"); empty means the
// pass matches the viewport.
type Pass struct {
	Target     string
	Persistent bool
	Float      bool
	Width      string
	Height     string
}

// ImportedResource is an external image bound to a sampler at load time.
type ImportedResource struct {
	Path string
}

// PersistentBuffer is the ISF 1.x declaration of a buffer that keeps its
// contents between frames.
type PersistentBuffer struct {
	Width  string
	Height string
	Float  bool
}

// Input returns the input declared with name.
func (d Isf) Input(name string) (Input, bool) {
	for _, in := range d.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return Input{}, false
}

// InputsOfKind returns the inputs of the given kind in declaration order.
func (d Isf) InputsOfKind(kind InputKind) []Input {
	var out []Input
	for _, in := range d.Inputs {
		if in.Kind() == kind {
			out = append(out, in)
		}
	}
	return out
}

// Ptr returns a pointer to v. It keeps literal construction of optional
// fields short: InputFloat{Default: goisf.Ptr(0.5)}.
func Ptr[T any](v T) *T { return &v }
