package world

import (
	"fmt"

	"github.com/nathoo/thicket/types"
)

// Loc returns the container id is currently in.
func (w *World) Loc(id types.ID) types.ID {
	return w.entity(id).loc
}

// Holds reports whether id has a contents list.
func (w *World) Holds(id types.ID) bool {
	return w.entity(id).holds
}

// Contents returns a copy of the ids directly inside container, in the order
// they were put there. Entities without a contents list return nil.
func (w *World) Contents(container types.ID) []types.ID {
	e := w.entity(container)
	if !e.holds {
		return nil
	}
	return append([]types.ID(nil), e.contents...)
}

// Contains reports whether id is directly inside container.
func (w *World) Contains(container, id types.ID) bool {
	return w.Loc(id) == container
}

// Within reports whether id is container or lies anywhere inside it.
func (w *World) Within(id, container types.ID) bool {
	for cur := id; cur != detached; cur = w.entities[cur].loc {
		if cur == container {
			return true
		}
	}
	return false
}

// PutIn places a detached entity into container.
func (w *World) PutIn(id, container types.ID) {
	e := w.entity(id)
	c := w.entity(container)
	if e.loc != detached {
		panic(fmt.Sprintf("world: put %s in %s: still in %s",
			w.describe(id), w.describe(container), w.describe(e.loc)))
	}
	w.checkDestination(id, container)
	c.contents = append(c.contents, id)
	e.loc = container
}

// TakeOut detaches id from container. It must be followed by PutIn.
func (w *World) TakeOut(id, container types.ID) {
	e := w.entity(id)
	c := w.entity(container)
	if e.loc != container {
		panic(fmt.Sprintf("world: take out %s from %s: not there",
			w.describe(id), w.describe(container)))
	}
	for i, cid := range c.contents {
		if cid == id {
			c.contents = append(c.contents[:i], c.contents[i+1:]...)
			e.loc = detached
			return
		}
	}
	panic(fmt.Sprintf("world: take out %s from %s: missing from contents list",
		w.describe(id), w.describe(container)))
}

// Move transfers id from wherever it is into to. The destination is checked
// before anything changes.
func (w *World) Move(id, to types.ID) {
	w.checkDestination(id, to)
	w.TakeOut(id, w.Loc(id))
	w.PutIn(id, to)
}

// Remove moves id out of play into Limbo.
func (w *World) Remove(id types.ID) {
	w.Move(id, types.Limbo)
}

func (w *World) checkDestination(id, container types.ID) {
	c := w.entity(container)
	if !c.holds {
		panic(fmt.Sprintf("world: %s cannot hold %s", w.describe(container), w.describe(id)))
	}
	if w.Within(container, id) {
		panic(fmt.Sprintf("world: put %s in %s: would create a cycle",
			w.describe(id), w.describe(container)))
	}
}
