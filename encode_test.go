package goisf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/goisf"
)

func TestEncode_CanonicalShape(t *testing.T) {
	d := goisf.Isf{
		Passes: []goisf.Pass{
			{Target: "a", Persistent: false, Float: true, Width: "$WIDTH/2"},
			{},
		},
		Inputs: []goisf.Input{
			{Name: "on", Type: goisf.InputBool{Default: goisf.Ptr(false)}},
			{Name: "mode", Type: goisf.InputLong{Options: []goisf.LongOption{{Value: 1}, {Value: 2}}, Unlabeled: true}},
			{Name: "wave", Type: goisf.InputAudio{Samples: goisf.Ptr(128)}},
		},
		Imported: map[string]goisf.ImportedResource{"noise": {Path: "noise.png"}},
	}
	tree, err := goisf.Encode(d)
	require.NoError(t, err)

	passes := tree["PASSES"].([]any)
	require.Equal(t, map[string]any{"TARGET": "a", "FLOAT": true, "WIDTH": "$WIDTH/2"}, passes[0])
	require.Equal(t, map[string]any{}, passes[1])

	inputs := tree["INPUTS"].([]any)
	require.Equal(t, map[string]any{"NAME": "on", "TYPE": "bool", "DEFAULT": false}, inputs[0])
	require.Equal(t, map[string]any{"NAME": "mode", "TYPE": "long", "VALUES": []any{int64(1), int64(2)}}, inputs[1])
	require.Equal(t, map[string]any{"NAME": "wave", "TYPE": "audio", "MAX": int64(128)}, inputs[2])

	require.Equal(t, map[string]any{"noise": map[string]any{"PATH": "noise.png"}}, tree["IMPORTED"])
	for _, absent := range []string{"ISFVSN", "VSN", "DESCRIPTION", "CREDIT", "CATEGORIES", "PERSISTENT_BUFFERS"} {
		require.NotContains(t, tree, absent)
	}
}

func TestEncode_EmptyPolicy(t *testing.T) {
	d := goisf.Isf{
		Categories: []string{},
		Inputs:     []goisf.Input{{Name: "mode", Type: goisf.InputLong{Options: []goisf.LongOption{}}}},
	}

	tree, err := goisf.Encode(d)
	require.NoError(t, err)
	require.Equal(t, []any{}, tree["CATEGORIES"])
	require.Equal(t, []any{}, tree["INPUTS"].([]any)[0].(map[string]any)["VALUES"])

	tree, err = goisf.Encode(d, goisf.EncodeOpt{Empty: goisf.EmptyOmit})
	require.NoError(t, err)
	require.NotContains(t, tree, "CATEGORIES")
	require.NotContains(t, tree["INPUTS"].([]any)[0].(map[string]any), "VALUES")
}

func TestEncode_ValidatesFirst(t *testing.T) {
	cases := []struct {
		name string
		d    goisf.Isf
		code string
		path string
	}{
		{"duplicate names", goisf.Isf{Inputs: []goisf.Input{{Name: "a", Type: goisf.InputEvent{}}, {Name: "a", Type: goisf.InputImage{}}}}, goisf.CodeDuplicateInputName, "/INPUTS/1/NAME"},
		{"missing type", goisf.Isf{Inputs: []goisf.Input{{Name: "a"}}}, goisf.CodeRequired, "/INPUTS/0/TYPE"},
		{"pointer variant", goisf.Isf{Inputs: []goisf.Input{{Name: "a", Type: &goisf.InputBool{}}}}, goisf.CodeUnknownInputType, "/INPUTS/0/TYPE"},
		{"bad range", goisf.Isf{Inputs: []goisf.Input{{Name: "a", Type: goisf.InputFloat{Min: goisf.Ptr(10.0), Max: goisf.Ptr(0.0)}}}}, goisf.CodeInvalidRange, "/INPUTS/0/MIN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := goisf.Marshal(tc.d)
			it := firstIssue(t, err)
			require.Equal(t, tc.code, it.Code)
			require.Equal(t, tc.path, it.Path)
			require.Equal(t, goisf.StageValidate, it.Stage)
		})
	}
}

func TestEncodePreserving_KeepsExplicitValues(t *testing.T) {
	src := shader(`{"CATEGORIES": [], "DESCRIPTION": null, "PASSES": [{"PERSISTENT": false, "FLOAT": false}, {}],
		"PERSISTENT_BUFFERS": {"buf": {"FLOAT": false}},
		"INPUTS": [{"NAME": "mode", "TYPE": "long", "VALUES": [], "LABELS": []}]}`)
	dm, err := goisf.ParseWithMeta(src)
	require.NoError(t, err)

	require.True(t, dm.Presence.Seen("/"))
	require.True(t, dm.Presence.Seen("/PASSES/0/PERSISTENT"))
	require.False(t, dm.Presence.Seen("/PASSES/1/PERSISTENT"))
	require.NotZero(t, dm.Presence["/DESCRIPTION"]&goisf.PresenceWasNull)

	omit := goisf.EncodeOpt{Empty: goisf.EmptyOmit}
	canonical, err := goisf.Encode(dm.Value, omit)
	require.NoError(t, err)
	require.NotContains(t, canonical, "CATEGORIES")
	require.Equal(t, map[string]any{}, canonical["PASSES"].([]any)[0])

	preserved, err := goisf.EncodePreserving(dm, omit)
	require.NoError(t, err)
	require.Equal(t, []any{}, preserved["CATEGORIES"])
	require.Equal(t, map[string]any{"PERSISTENT": false, "FLOAT": false}, preserved["PASSES"].([]any)[0])
	require.Equal(t, map[string]any{}, preserved["PASSES"].([]any)[1])
	require.Equal(t, map[string]any{"FLOAT": false}, preserved["PERSISTENT_BUFFERS"].(map[string]any)["buf"])
	mode := preserved["INPUTS"].([]any)[0].(map[string]any)
	require.Equal(t, []any{}, mode["VALUES"])
	require.NotContains(t, preserved, "DESCRIPTION")

	again, err := goisf.Decode(preserved)
	require.NoError(t, err)
	require.Equal(t, dm.Value, again)
}

func TestEncodePreserving_EmptyBufferName(t *testing.T) {
	dm, err := goisf.ParseWithMeta(shader(`{"PERSISTENT_BUFFERS": {"": {"FLOAT": false}}}`))
	require.NoError(t, err)
	require.True(t, dm.Presence.Seen("/PERSISTENT_BUFFERS/"))
	require.True(t, dm.Presence.Seen("/PERSISTENT_BUFFERS//FLOAT"))

	preserved, err := goisf.EncodePreserving(dm)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"FLOAT": false}, preserved["PERSISTENT_BUFFERS"].(map[string]any)[""])
}
