package goisf

import (
	"cmp"
	"fmt"
	"strconv"
)

// Validate checks the invariants the mapper enforces while parsing: input
// names are present and unique, each input carries a known variant, ranges
// are ordered and long enumerations hold distinct values. It returns the
// first violation as Issues.
func (d Isf) Validate() error {
	root := Root()
	seen := make(map[string]int, len(d.Inputs))
	for i, in := range d.Inputs {
		p := root.Field("INPUTS").Index(i)
		if err := validateInput(StageValidate, p, in); err != nil {
			return err
		}
		if err := checkUnique(StageValidate, p, in.Name, i, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkUnique(stage Stage, p PathRef, name string, i int, seen map[string]int) error {
	if first, dup := seen[name]; dup {
		return fail(stage, p.Field(keyName), CodeDuplicateInputName,
			fmt.Sprintf("%q already declared by input %d", name, first),
			map[string]any{"name": name, "first": first, "index": i})
	}
	seen[name] = i
	return nil
}

// validateInput checks a single, structurally complete input.
func validateInput(stage Stage, p PathRef, in Input) error {
	if in.Name == "" {
		return fail(stage, p.Field(keyName), CodeEmptyName, "", nil)
	}
	switch t := in.Type.(type) {
	case nil:
		return fail(stage, p.Field(keyType), CodeRequired, "TYPE is required", map[string]any{"key": keyType})
	case InputEvent, InputBool, InputImage:
		return nil
	case InputFloat:
		return checkScalarRange(stage, p, t.Min, t.Default, t.Max)
	case InputLong:
		if err := checkScalarRange(stage, p, t.Min, t.Default, t.Max); err != nil {
			return err
		}
		return checkOptions(stage, p, t)
	case InputPoint2D:
		return checkVectorRange(stage, p, vec2Slice(t.Min), vec2Slice(t.Default), vec2Slice(t.Max))
	case InputColor:
		return checkVectorRange(stage, p, rgbaSlice(t.Min), rgbaSlice(t.Default), rgbaSlice(t.Max))
	case InputAudio:
		return checkCount(stage, p, t.Samples)
	case InputAudioFFT:
		return checkCount(stage, p, t.Columns)
	default:
		return fail(stage, p.Field(keyType), CodeUnknownInputType, fmt.Sprintf("unsupported variant %T", in.Type), nil)
	}
}

// checkScalarRange enforces min <= max, min <= default and default <= max
// for whichever of the three are present.
func checkScalarRange[T cmp.Ordered](stage Stage, p PathRef, lo, def, hi *T) error {
	var at, hint string
	switch {
	case lo != nil && hi != nil && *lo > *hi:
		at, hint = keyMin, fmt.Sprintf("MIN %v > MAX %v", *lo, *hi)
	case def != nil && lo != nil && *def < *lo:
		at, hint = keyDefault, fmt.Sprintf("DEFAULT %v < MIN %v", *def, *lo)
	case def != nil && hi != nil && *def > *hi:
		at, hint = keyDefault, fmt.Sprintf("DEFAULT %v > MAX %v", *def, *hi)
	default:
		return nil
	}
	params := map[string]any{}
	for key, v := range map[string]*T{"min": lo, "default": def, "max": hi} {
		if v != nil {
			params[key] = *v
		}
	}
	return fail(stage, p.Field(at), CodeInvalidRange, hint, params)
}

func checkVectorRange(stage Stage, p PathRef, lo, def, hi []float64) error {
	n := max(len(lo), len(def), len(hi))
	for axis := 0; axis < n; axis++ {
		var l, d, h *float64
		if lo != nil {
			l = &lo[axis]
		}
		if def != nil {
			d = &def[axis]
		}
		if hi != nil {
			h = &hi[axis]
		}
		if err := checkScalarRange(stage, p, l, d, h); err != nil {
			iss, _ := AsIssues(err)
			iss[0].Hint = "component " + strconv.Itoa(axis) + ": " + iss[0].Hint
			return iss
		}
	}
	return nil
}

// checkOptions requires distinct VALUES and an Unlabeled flag that agrees
// with Options: set only on a non-nil enumeration whose labels are all empty.
func checkOptions(stage Stage, p PathRef, l InputLong) error {
	if l.Unlabeled {
		if l.Options == nil {
			return fail(stage, p.Field(keyValues), CodeInvalidEnum, "Unlabeled set without VALUES", nil)
		}
		for i, o := range l.Options {
			if o.Label != "" {
				return fail(stage, p.Field(keyLabels).Index(i), CodeInvalidEnum,
					fmt.Sprintf("label %q on an unlabeled enumeration", o.Label),
					map[string]any{"label": o.Label, "index": i})
			}
		}
	}
	seen := make(map[int64]int, len(l.Options))
	for i, o := range l.Options {
		if first, dup := seen[o.Value]; dup {
			return fail(stage, p.Field(keyValues).Index(i), CodeInvalidEnum,
				fmt.Sprintf("value %d repeats entry %d", o.Value, first),
				map[string]any{"value": o.Value, "first": first, "index": i})
		}
		seen[o.Value] = i
	}
	return nil
}

func checkCount(stage Stage, p PathRef, n *int) error {
	if n != nil && *n < 0 {
		return fail(stage, p.Field(keyMax), CodeInvalidRange, "expected a non-negative count, got "+strconv.Itoa(*n), map[string]any{"got": *n})
	}
	return nil
}

func vec2Slice(v *Vec2) []float64 {
	if v == nil {
		return nil
	}
	return v[:]
}

func rgbaSlice(v *RGBA) []float64 {
	if v == nil {
		return nil
	}
	return v[:]
}
