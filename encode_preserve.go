package goisf

// EncodePreserving is Encode for a document obtained from ParseWithMeta. It
// keeps what the source wrote explicitly but the canonical form drops: false
// PERSISTENT and FLOAT flags, and empty containers under EmptyOmit.
// Presence pointers refer to source positions, so inputs and passes should
// not be reordered between parsing and encoding.
func EncodePreserving(dm Decoded, opts ...EncodeOpt) (map[string]any, error) {
	return encodeWith(dm.Value, encoder{opt: encodeOptFrom(opts), seen: dm.Presence})
}
