// Package scenario builds the demo world: a short woodland trail with a
// grubby note and a stream to wash your hands in.
package scenario

import (
	"github.com/nathoo/thicket/engine/effects"
	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// Title is the demo's display title.
const Title = "The Trail"

// Prose shared with tests and the Lua version of the demo.
const (
	NoteClean     = "A note, on plain paper"
	NoteDirty     = "A note, on plain paper.  It looks pretty grubby; someone's been mishandling it."
	NoteWelcome   = "Welcome, dear friend.  Your mission, should you choose to accept it, is to figure out how to get to the end of the trail.  You've already taken the first big step!"
	NoteSpoiled   = "You've gotten it too dirty to read."
	NoteSmudged   = "The dirt from your hands got all over the note."
	Backstory     = "You don't know where you are.  You don't even know where you want to be.  All you know is that your feet are wet, your hands are dirty, and gosh, this doesn't look anything like the toy aisle."
	FairyRevival  = "A fairy godmother hovers over your limp body.  She frowns; then, apparently against her better judgment, she waves her wand.  There's a flash, and she disappears.\n\n*** You are alive! ***"
	TrailNorthEnd = "The brambles are too thick that way."
)

// Build creates the demo world. The player starts in the Clearing with
// dirty hands.
func Build() *world.World {
	w := world.New()

	pid := w.Add("self").
		Player().
		Name("self").
		ProseFunc(types.ProseThing, playerVisual).
		Flag(flags.DirtyHands).
		ID()

	// Rooms.
	clearing := w.Add("clearing").
		Room("Clearing").
		Prose(types.ProseRoom, "A wide spot in the woods.  You can go east.").
		ID()

	trail := w.Add("trail").
		Room("Trail").
		Prose(types.ProseRoom, "A trail from hither to yon.  You can go east or west.").
		ID()

	bridge := w.Add("bridge").
		Room("Bridge").
		Prose(types.ProseRoom, "The trail crosses a small stream here.  You can go east or west.").
		Flag(flags.HasWater).
		ID()

	w.Add("stream").
		Thing("stream").
		Prose(types.ProseThing, "The stream comes from the north, down a little waterfall, and runs away under the bridge.  It looks surprisingly deep, considering how narrow it is.").
		Flag(flags.Scenery).
		In(bridge)

	// Links.
	w.Twoway(clearing, types.East, types.West, trail)
	w.Twoway(trail, types.East, types.West, bridge)
	w.DeadEnd(trail, types.North, TrailNorthEnd)

	// The note.
	w.Add("note").
		Thing("note").
		ProseFunc(types.ProseThing, whenDirty(NoteDirty, NoteClean)).
		ProseFunc(types.ProseBook, whenDirty(NoteSpoiled, NoteWelcome)).
		On(types.EventGet, onNoteGet).
		In(clearing)

	// Stories: rules that supply backstory to the player.
	w.Add("rule-story-1").
		Once(func(w *world.World) bool { return w.Clock() == 2 }).
		Action(effects.Print(Backstory))

	w.Add("fairy-godmother-rule").
		Always(func(w *world.World) bool { return w.HasFlag(w.PlayerID(), flags.Killed) }).
		Action(effects.Print(FairyRevival)).
		Action(effects.ClearFlag(pid, flags.Killed))

	// Starting location.
	w.Move(pid, clearing)
	w.SetFlag(pid, flags.Seen(clearing))

	return w
}

func playerVisual(w *world.World, id types.ID) string {
	text := "You've got all the usual bits."
	if w.HasFlag(id, flags.DirtyHands) {
		return text + "  Your hands are kind of dirty, though."
	}
	return text + "  Plus, they're clean bits!"
}

// whenDirty picks between two texts on the entity's dirty flag.
func whenDirty(dirty, clean string) world.Producer {
	return func(w *world.World, id types.ID) string {
		if w.HasFlag(id, flags.Dirty) {
			return dirty
		}
		return clean
	}
}

func onNoteGet(w *world.World, note types.ID, _ types.EventKind) string {
	if w.HasFlag(w.PlayerID(), flags.DirtyHands) && !w.HasFlag(note, flags.Dirty) {
		w.SetFlag(note, flags.Dirty)
		return NoteSmudged
	}
	return ""
}
