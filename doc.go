// Package goisf reads and writes ISF (Interactive Shader Format) descriptors:
// the JSON object an ISF shader carries in its leading comment to declare
// its inputs, render passes and imported images.
//
// The pipeline has three stages, each reachable on its own:
//
//   - TopComment locates the leading /* ... */ block.
//   - A JSONDriver tokenizes the descriptor into a generic tree
//     (map[string]any, []any, json.Number, string, bool, nil) while enforcing
//     duplicate-key, depth and size limits.
//   - Decode maps the tree onto the typed model (Isf, Input and its variants,
//     Pass, ImportedResource), stopping at the first problem.
//
// Encode is the inverse of Decode: Decode(Encode(d)) equals d for every
// valid document. Every failure is an Issues value whose entries carry a
// JSON Pointer, a stable code and the stage that produced it.
//
// Typical usage:
//
//	d, err := goisf.Parse(shaderSource)
//	if goisf.HasCode(err, goisf.CodeMissingTopComment) {
//		// plain GLSL, not an ISF shader
//	}
//	out, err := goisf.MarshalIndent(d, "", "\t")
package goisf
