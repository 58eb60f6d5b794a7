package world

import (
	"sort"

	"github.com/nathoo/thicket/types"
)

// Link is a directed exit from a room: either to another room, or a dead
// end with its own prose.
type Link struct {
	To      types.ID
	DeadEnd string
}

// IsDeadEnd reports whether the link leads nowhere.
func (l Link) IsDeadEnd() bool {
	return l.To == types.Limbo
}

// Link adds a one-way exit from one room to another.
func (w *World) Link(from types.ID, dir types.Dir, to types.ID) {
	w.Room(to)
	w.Room(from).Exits[dir] = Link{To: to}
}

// DeadEnd adds an exit that goes nowhere but describes why.
func (w *World) DeadEnd(from types.ID, dir types.Dir, prose string) {
	w.Room(from).Exits[dir] = Link{DeadEnd: prose}
}

// Twoway links a to b by dir, and b back to a by back.
func (w *World) Twoway(a types.ID, dir, back types.Dir, b types.ID) {
	w.Link(a, dir, b)
	w.Link(b, back, a)
}

// Follow returns the exit from loc in direction dir. A location without a
// room capability has no exits.
func (w *World) Follow(loc types.ID, dir types.Dir) (Link, bool) {
	r, ok := w.AsRoom(loc)
	if !ok {
		return Link{}, false
	}
	l, ok := r.Exits[dir]
	return l, ok
}

// Exits returns the directions out of loc, sorted.
func (w *World) Exits(loc types.ID) []types.Dir {
	r, ok := w.AsRoom(loc)
	if !ok {
		return nil
	}
	dirs := make([]types.Dir, 0, len(r.Exits))
	for d := range r.Exits {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}
