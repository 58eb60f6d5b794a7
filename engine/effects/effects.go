// Package effects interprets rule action scripts. Every action is one atomic
// world mutation; there is no rollback if a later action panics.
package effects

import (
	"fmt"

	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// Print shows text to the player.
func Print(text string) types.Action {
	return types.Action{Type: types.ActionPrint, Text: text}
}

// SetFlag sets f on id.
func SetFlag(id types.ID, f types.Flag) types.Action {
	return types.Action{Type: types.ActionSetFlag, Entity: id, Flag: f}
}

// ClearFlag clears f on id.
func ClearFlag(id types.ID, f types.Flag) types.Action {
	return types.Action{Type: types.ActionClearFlag, Entity: id, Flag: f}
}

// Swap replaces a, wherever it is, with b from limbo. a goes to limbo.
func Swap(a, b types.ID) types.Action {
	return types.Action{Type: types.ActionSwap, Entity: a, Other: b}
}

// Apply runs the actions in order against the world and returns the text
// they printed.
func Apply(w *world.World, actions []types.Action) []string {
	var output []string

	for _, a := range actions {
		switch a.Type {
		case types.ActionPrint:
			output = append(output, a.Text)

		case types.ActionSetFlag:
			w.SetFlag(a.Entity, a.Flag)

		case types.ActionClearFlag:
			w.ClearFlag(a.Entity, a.Flag)

		case types.ActionSwap:
			swap(w, a.Entity, a.Other)

		default:
			panic(fmt.Sprintf("effects: unknown action type %q", a.Type))
		}
	}

	return output
}

// swap moves a into limbo and b from limbo into a's old container.
func swap(w *world.World, a, b types.ID) {
	loc := w.Loc(a)
	w.TakeOut(a, loc)
	w.PutIn(a, types.Limbo)
	w.TakeOut(b, types.Limbo)
	w.PutIn(b, loc)
}
