// Package flags implements the per-entity flag set.
package flags

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/thicket/types"
)

// Set is an unordered, duplicate-free collection of flags.
// The zero value is not usable; call New.
type Set struct {
	m mapset.Set[types.Flag]
}

// New returns a set holding the given flags.
func New(fs ...types.Flag) *Set {
	return &Set{m: mapset.Of(fs...)}
}

// Set adds f. Setting a flag that is already present is a no-op.
func (s *Set) Set(f types.Flag) {
	s.m.Put(f)
}

// Clear removes f. Clearing an absent flag is a no-op.
func (s *Set) Clear(f types.Flag) {
	s.m.Remove(f)
}

// Has reports whether exactly f (including its subject) is present.
func (s *Set) Has(f types.Flag) bool {
	return s.m.Has(f)
}

// Len returns the number of flags held.
func (s *Set) Len() int {
	return s.m.Size()
}

// List returns the flags sorted by kind, then subject.
func (s *Set) List() []types.Flag {
	out := make([]types.Flag, 0, s.m.Size())
	s.m.Each(func(f types.Flag) {
		out = append(out, f)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

// Of returns the unparameterized flag of the given kind.
func Of(kind types.FlagKind) types.Flag {
	return types.Flag{Kind: kind}
}

// About returns a flag of the given kind applying to subject.
func About(kind types.FlagKind, subject types.ID) types.Flag {
	return types.Flag{Kind: kind, Subject: subject}
}

// Seen returns the "has been seen" flag for a room.
func Seen(room types.ID) types.Flag {
	return About(types.Seen, room)
}

// Well-known plain flags.
var (
	Killed     = Of(types.Killed)
	Scenery    = Of(types.Scenery)
	Dirty      = Of(types.Dirty)
	DirtyHands = Of(types.DirtyHands)
	HasWater   = Of(types.HasWater)
)
