// Package resolve maps names typed by the player to entity IDs, scoped to
// what the player can see.
package resolve

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// NotFoundError indicates no visible entity matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't see %q here", e.Name)
}

// Visible resolves name among everything the player can see, in priority
// order: carried items, then the room's contents, then the room's scenery.
func Visible(w *world.World, name string) (types.ID, error) {
	if id, ok := Carried(w, name); ok {
		return id, nil
	}
	if id, ok := InRoom(w, name); ok {
		return id, nil
	}
	if id, ok := Scenery(w, name); ok {
		return id, nil
	}
	return 0, &NotFoundError{Name: name}
}

// Carried finds name among the player's carried items.
func Carried(w *world.World, name string) (types.ID, bool) {
	return find(w, w.Contents(w.PlayerID()), name, func(types.ID) bool { return true })
}

// InRoom finds name among the non-scenery contents of the player's location.
func InRoom(w *world.World, name string) (types.ID, bool) {
	pid := w.PlayerID()
	return find(w, w.Contents(w.Here()), name, func(id types.ID) bool {
		return id != pid && !w.IsScenery(id)
	})
}

// Scenery finds name among the scenery of the player's location.
func Scenery(w *world.World, name string) (types.ID, bool) {
	return find(w, w.Contents(w.Here()), name, w.IsScenery)
}

// Matches reports whether name refers to id. Comparison is caseless but
// otherwise exact.
func Matches(w *world.World, id types.ID, name string) bool {
	fold := cases.Fold()
	return fold.String(w.Name(id)) == fold.String(name)
}

func find(w *world.World, ids []types.ID, name string, keep func(types.ID) bool) (types.ID, bool) {
	for _, id := range ids {
		if keep(id) && Matches(w, id, name) {
			return id, true
		}
	}
	return 0, false
}
