package world

import "github.com/nathoo/thicket/types"

// Hook reacts to an event on one entity. The returned text, if any, is shown
// to the player.
type Hook func(w *World, id types.ID, ev types.EventKind) string

// OnEvent registers fn for ev on id, replacing any earlier hook.
func (w *World) OnEvent(id types.ID, ev types.EventKind, fn Hook) {
	e := w.entity(id)
	if e.hooks == nil {
		e.hooks = map[types.EventKind]Hook{}
	}
	e.hooks[ev] = fn
}

// Dispatch runs the hook for (id, ev). It reports false when none is
// registered, in which case nothing happens.
func (w *World) Dispatch(id types.ID, ev types.EventKind) (string, bool) {
	fn, ok := w.entity(id).hooks[ev]
	if !ok {
		return "", false
	}
	return fn(w, id, ev), true
}

// HasHook reports whether a hook is registered for (id, ev).
func (w *World) HasHook(id types.ID, ev types.EventKind) bool {
	_, ok := w.entity(id).hooks[ev]
	return ok
}
