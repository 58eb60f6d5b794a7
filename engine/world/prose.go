package world

import "github.com/nathoo/thicket/types"

// Producer computes prose from the current world.
type Producer func(w *World, id types.ID) string

// Prose is one slot of descriptive text: fixed, or produced on demand.
type Prose struct {
	Text     string
	Producer Producer
}

// Prose resolves the slot of the given kind. Producers are invoked on every
// call so the text always reflects the current world. A missing slot
// returns false.
func (w *World) Prose(id types.ID, kind types.ProseKind) (string, bool) {
	p, ok := w.entity(id).prose[kind]
	if !ok {
		return "", false
	}
	if p.Producer != nil {
		return p.Producer(w, id), true
	}
	return p.Text, true
}

// HasProse reports whether id has a slot of the given kind.
func (w *World) HasProse(id types.ID, kind types.ProseKind) bool {
	_, ok := w.entity(id).prose[kind]
	return ok
}
