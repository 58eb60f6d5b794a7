package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/thicket/engine/debug"
	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/engine/parser"
	"github.com/nathoo/thicket/engine/resolve"
	"github.com/nathoo/thicket/types"
)

// Messages shared by several commands.
var (
	errNotHere       = errors.New("You don't see any such thing.")
	errCantGo        = errors.New("You can't go that way.")
	errNotUnderstood = errors.New("I don't understand.")
)

const helpText = "You've got the usual commands: n, s, e, w, look, get, drop, quit.\nYou know.  Like that."

type detail int

const (
	brief detail = iota
	full
)

// command runs one parsed command. A returned error is shown to the player
// and means the world was not changed.
func (e *Engine) command(intent types.Intent, r *types.Result) error {
	obj := intent.Object

	switch intent.Verb {
	case "go":
		return e.cmdGo(obj, r)
	case "look":
		if obj != "" {
			return e.cmdExamine(obj, r)
		}
		r.Output = append(r.Output, e.describe(e.World.Here(), full)...)
		return nil
	case "inventory":
		return e.cmdInventory(r)
	case "examine":
		return e.cmdExamine(obj, r)
	case "read":
		return e.cmdRead(obj, r)
	case "get":
		return e.cmdGet(obj, r)
	case "drop":
		return e.cmdDrop(obj, r)
	case "wash":
		return e.cmdWash(obj, r)
	case "help":
		r.Output = append(r.Output, helpText)
		return nil
	case "dump":
		return e.cmdDump(obj, r)
	case "list":
		r.Output = append(r.Output, debug.List(e.World)...)
		return nil
	default:
		return errNotUnderstood
	}
}

func (e *Engine) cmdGo(obj string, r *types.Result) error {
	if obj == "" {
		return errors.New("Go where?")
	}
	dir, ok := parser.Direction(obj)
	if !ok {
		return errCantGo
	}

	w := e.World
	link, ok := w.Follow(w.Here(), dir)
	if !ok {
		return errCantGo
	}
	if link.IsDeadEnd() {
		r.Output = append(r.Output, link.DeadEnd)
		return nil
	}

	pid := w.PlayerID()
	w.Move(pid, link.To)

	d := brief
	if !w.HasFlag(pid, flags.Seen(link.To)) {
		d = full
	}
	r.Output = append(r.Output, e.describe(link.To, d)...)
	w.SetFlag(pid, flags.Seen(link.To))

	e.dispatch(r, link.To, types.EventEnter)
	return nil
}

func (e *Engine) cmdInventory(r *types.Result) error {
	carried := e.World.Contents(e.World.PlayerID())
	if len(carried) == 0 {
		r.Output = append(r.Output, "You aren't carrying anything.")
		return nil
	}
	r.Output = append(r.Output, "You have: "+e.names(carried)+".")
	return nil
}

func (e *Engine) cmdExamine(obj string, r *types.Result) error {
	if obj == "" {
		return errors.New("Examine what?")
	}
	w := e.World
	if obj == "self" || obj == "me" {
		text, ok := w.Prose(w.PlayerID(), types.ProseThing)
		if !ok {
			text = "You look about the same as usual."
		}
		r.Output = append(r.Output, text)
		return nil
	}

	id, err := resolve.Visible(w, obj)
	if err != nil {
		return errNotHere
	}

	text, ok := "", false
	if w.IsScenery(id) {
		text, ok = w.Prose(id, types.ProseScenery)
	}
	if !ok {
		text, ok = w.Prose(id, types.ProseThing)
	}
	if !ok {
		text = "You see nothing special about it."
	}
	r.Output = append(r.Output, text)

	e.dispatch(r, id, types.EventExamine)
	return nil
}

func (e *Engine) cmdRead(obj string, r *types.Result) error {
	if obj == "" {
		return errors.New("Read what?")
	}
	id, err := resolve.Visible(e.World, obj)
	if err != nil {
		return errNotHere
	}
	text, ok := e.World.Prose(id, types.ProseBook)
	if !ok {
		return errors.New("There's nothing written on it.")
	}
	r.Output = append(r.Output, text)

	e.dispatch(r, id, types.EventRead)
	return nil
}

func (e *Engine) cmdGet(obj string, r *types.Result) error {
	if obj == "" {
		return errors.New("Get what?")
	}
	w := e.World
	if _, ok := resolve.Carried(w, obj); ok {
		return errors.New("You already have it.")
	}
	if _, ok := resolve.Scenery(w, obj); ok {
		return errors.New("You can't take that!")
	}
	id, ok := resolve.InRoom(w, obj)
	if !ok {
		return errNotHere
	}

	w.Move(id, w.PlayerID())
	r.Output = append(r.Output, "Taken.")

	e.dispatch(r, id, types.EventGet)
	return nil
}

func (e *Engine) cmdDrop(obj string, r *types.Result) error {
	if obj == "" {
		return errors.New("Drop what?")
	}
	w := e.World
	id, ok := resolve.Carried(w, obj)
	if !ok {
		if _, err := resolve.Visible(w, obj); err == nil {
			return errors.New("You aren't carrying that.")
		}
		return errNotHere
	}

	w.Move(id, w.Here())
	r.Output = append(r.Output, "Dropped.")

	e.dispatch(r, id, types.EventDrop)
	return nil
}

func (e *Engine) cmdWash(obj string, r *types.Result) error {
	if obj != "hands" {
		return errors.New("Whatever for?")
	}
	w := e.World
	if !w.HasFlag(w.Here(), flags.HasWater) {
		return errors.New("That'd be a neat trick.")
	}

	msg := "You wash your hands in the water."
	pid := w.PlayerID()
	if w.HasFlag(pid, flags.DirtyHands) {
		msg += " They look much cleaner."
		w.ClearFlag(pid, flags.DirtyHands)
	}
	r.Output = append(r.Output, msg)
	return nil
}

func (e *Engine) cmdDump(obj string, r *types.Result) error {
	if obj == "" {
		out, err := debug.DumpWorld(e.World)
		if err != nil {
			return err
		}
		r.Output = append(r.Output, out)
		return nil
	}

	n, err := strconv.Atoi(obj)
	if err != nil {
		return fmt.Errorf("Not an ID: %s", obj)
	}
	out, err := debug.Dump(e.World, types.ID(n))
	if err != nil {
		return fmt.Errorf("Out of range: %s", obj)
	}
	r.Output = append(r.Output, out)
	return nil
}

// describe produces a location's description: its name, its interior prose
// when full, and the non-scenery things lying there.
func (e *Engine) describe(loc types.ID, d detail) []string {
	w := e.World
	output := []string{w.Name(loc)}

	if d == full {
		if text, ok := w.Prose(loc, types.ProseRoom); ok {
			output = append(output, text)
		}
	}

	pid := w.PlayerID()
	var visible []types.ID
	for _, id := range w.Contents(loc) {
		if id != pid && !w.IsScenery(id) {
			visible = append(visible, id)
		}
	}
	if len(visible) > 0 {
		output = append(output, "You see: "+e.names(visible)+".")
	}

	return output
}

// names lists display names, separated by commas.
func (e *Engine) names(ids []types.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = e.World.Name(id)
	}
	return strings.Join(names, ", ")
}
