package goisf_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goisf"
)

func TestBuilder_MatchesParsedDocument(t *testing.T) {
	built, err := goisf.NewBuilder().
		Description("fades to black").
		Categories("Transition").
		Input("startImage", goisf.InputImage{}).
		Input("progress", goisf.InputFloat{Default: goisf.Ptr(0.0), Min: goisf.Ptr(0.0), Max: goisf.Ptr(1.0)}).
		Label("Progress").
		Pass(goisf.Pass{Target: "half", Width: "$WIDTH/2", Height: "$HEIGHT/2"}).
		Import("noise", "noise.png").
		Build()
	require.NoError(t, err)

	parsed, err := goisf.Parse(shader(`{
		"ISFVSN": "2.0",
		"DESCRIPTION": "fades to black",
		"CATEGORIES": ["Transition"],
		"INPUTS": [
			{"NAME": "startImage", "TYPE": "image"},
			{"NAME": "progress", "LABEL": "Progress", "TYPE": "float", "DEFAULT": 0, "MIN": 0, "MAX": 1}
		],
		"PASSES": [{"TARGET": "half", "WIDTH": "$WIDTH/2", "HEIGHT": "$HEIGHT/2"}],
		"IMPORTED": {"noise": {"PATH": "noise.png"}}
	}`))
	require.NoError(t, err)
	if diff := cmp.Diff(parsed, built); diff != "" {
		t.Fatalf("built document differs from parsed one (-parsed +built):\n%s", diff)
	}
}

func TestBuilder_LongEnumerationRoundTrip(t *testing.T) {
	for name, long := range map[string]goisf.InputLong{
		"labeled":      {Options: []goisf.LongOption{{Value: 1, Label: "One"}, {Value: 2, Label: "Two"}}},
		"unlabeled":    {Options: []goisf.LongOption{{Value: 1}, {Value: 2}}, Unlabeled: true},
		"blank labels": {Options: []goisf.LongOption{{Value: 1}, {Value: 2}}},
		"empty":        {Options: []goisf.LongOption{}, Unlabeled: true},
		"range only":   {Min: goisf.Ptr[int64](0), Max: goisf.Ptr[int64](4)},
	} {
		t.Run(name, func(t *testing.T) {
			built, err := goisf.NewBuilder().Input("mode", long).Build()
			require.NoError(t, err)
			text, err := goisf.Marshal(built)
			require.NoError(t, err)
			back, err := goisf.ParseJSON(text)
			require.NoError(t, err)
			if diff := cmp.Diff(built, back); diff != "" {
				t.Fatalf("round trip changed the document (-built +parsed):\n%s", diff)
			}
		})
	}
}

func TestBuilder_RejectsInconsistentEnumeration(t *testing.T) {
	_, err := goisf.NewBuilder().
		Input("mode", goisf.InputLong{Options: []goisf.LongOption{{Value: 1, Label: "One"}}, Unlabeled: true}).
		Build()
	it := firstIssue(t, err)
	require.Equal(t, goisf.CodeInvalidEnum, it.Code)
	require.Equal(t, goisf.StageValidate, it.Stage)
}

func TestBuilder_ChainContinuesAfterInput(t *testing.T) {
	d := goisf.NewBuilder().
		Input("a", goisf.InputEvent{}).Description("after input").
		Input("b", goisf.InputEvent{}).Categories("Stylize").
		Input("c", goisf.InputEvent{}).PersistentBuffer("feedback", goisf.PersistentBuffer{Float: true}).
		Input("d", goisf.InputEvent{}).ShaderVersion("1.1").
		Input("e", goisf.InputEvent{}).Credit("someone").
		MustBuild()
	require.Len(t, d.Inputs, 5)
	require.Equal(t, "after input", d.Description)
	require.Equal(t, []string{"Stylize"}, d.Categories)
	require.Equal(t, goisf.PersistentBuffer{Float: true}, d.PersistentBuffers["feedback"])
	require.Equal(t, "1.1", d.ShaderVersion)
	require.Equal(t, "someone", d.Credit)
}

func TestBuilder_DuplicateNames(t *testing.T) {
	_, err := goisf.NewBuilder().
		Input("level", goisf.InputFloat{}).
		Input("level", goisf.InputLong{}).
		Build()
	it := firstIssue(t, err)
	require.Equal(t, goisf.CodeDuplicateInputName, it.Code)
	require.Equal(t, "/INPUTS/1/NAME", it.Path)
	require.Equal(t, goisf.StageValidate, it.Stage)
}

func TestBuilder_BuildReturnsCopy(t *testing.T) {
	b := goisf.NewBuilder().Input("a", goisf.InputEvent{}).Import("x", "x.png")
	first := b.MustBuild()
	b.Input("b", goisf.InputEvent{}).Import("y", "y.png")
	second := b.MustBuild()
	require.Len(t, first.Inputs, 1)
	require.Len(t, first.Imported, 1)
	require.Len(t, second.Inputs, 2)
	require.Len(t, second.Imported, 2)
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	require.Panics(t, func() {
		goisf.NewBuilder().Input("", goisf.InputEvent{}).MustBuild()
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		in   goisf.Input
		code string
		path string
		hint string
	}{
		{"empty name", goisf.Input{Type: goisf.InputEvent{}}, goisf.CodeEmptyName, "/INPUTS/0/NAME", ""},
		{"color component", goisf.Input{Name: "c", Type: goisf.InputColor{
			Default: &goisf.RGBA{0.5, 0.5, 2, 1},
			Max:     &goisf.RGBA{1, 1, 1, 1},
		}}, goisf.CodeInvalidRange, "/INPUTS/0/DEFAULT", "component 2: DEFAULT 2 > MAX 1"},
		{"long repeated value", goisf.Input{Name: "l", Type: goisf.InputLong{Options: []goisf.LongOption{{Value: 3}, {Value: 3}}}},
			goisf.CodeInvalidEnum, "/INPUTS/0/VALUES/1", "value 3 repeats entry 0"},
		{"labels on unlabeled enumeration", goisf.Input{Name: "l", Type: goisf.InputLong{
			Options:   []goisf.LongOption{{Value: 1, Label: "One"}, {Value: 2, Label: "Two"}},
			Unlabeled: true,
		}}, goisf.CodeInvalidEnum, "/INPUTS/0/LABELS/0", ""},
		{"unlabeled without values", goisf.Input{Name: "l", Type: goisf.InputLong{Unlabeled: true}},
			goisf.CodeInvalidEnum, "/INPUTS/0/VALUES", ""},
		{"negative fft columns", goisf.Input{Name: "f", Type: goisf.InputAudioFFT{Columns: goisf.Ptr(-4)}}, goisf.CodeInvalidRange, "/INPUTS/0/MAX", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := goisf.Isf{Inputs: []goisf.Input{tc.in}}.Validate()
			it := firstIssue(t, err)
			require.Equal(t, tc.code, it.Code)
			require.Equal(t, tc.path, it.Path)
			if tc.hint != "" {
				require.Equal(t, tc.hint, it.Hint)
			}
		})
	}

	ok := goisf.Isf{Inputs: []goisf.Input{
		{Name: "p", Type: goisf.InputPoint2D{Min: &goisf.Vec2{0, 0}, Default: &goisf.Vec2{0, 1}, Max: &goisf.Vec2{1, 1}}},
		{Name: "l", Type: goisf.InputLong{Min: goisf.Ptr[int64](0), Max: goisf.Ptr[int64](0), Default: goisf.Ptr[int64](0)}},
	}}
	require.NoError(t, ok.Validate())
}
