package goisf

import (
	"strconv"

	eng "github.com/reoring/goisf/internal/engine"
)

// Presence is the bit flag collected by ParseWithMeta.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                      // Field value was null (and therefore treated as absent).
)

// PresenceMap maps JSON Pointers, as written in the source, to Presence flags.
type PresenceMap map[string]Presence

// Seen reports whether the pointer appeared in the source.
func (pm PresenceMap) Seen(pointer string) bool { return pm[pointer]&PresenceSeen != 0 }

// Decoded carries the parsed document along with presence metadata and the
// warnings raised while parsing.
type Decoded struct {
	Value    Isf
	Presence PresenceMap
	Warnings Issues
}

// collectPresence walks the generic tree and records every object member
// and array element. The root "/" is always marked seen.
func collectPresence(tree any) PresenceMap {
	pm := PresenceMap{"/": PresenceSeen}
	collectPresenceRecurse(tree, "", pm)
	return pm
}

func collectPresenceRecurse(v any, cur string, pm PresenceMap) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			p := eng.JoinPointer(cur, k)
			pm[p] |= PresenceSeen
			if val == nil {
				pm[p] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	case []any:
		for i, val := range t {
			p := cur + "/" + strconv.Itoa(i)
			pm[p] |= PresenceSeen
			if val == nil {
				pm[p] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	}
}
