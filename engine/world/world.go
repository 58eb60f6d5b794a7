// Package world is the entity store at the heart of the engine. It owns every
// entity record, hands out stable IDs, and exposes capability projections,
// the containment forest, room links, flags, prose slots, event hooks and the
// turn clock.
//
// A World is owned by exactly one driver and is not safe for concurrent use.
// Authoring defects (unknown IDs, missing capabilities, inconsistent
// containment) panic rather than corrupt the world.
package world

import (
	"errors"
	"fmt"

	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/types"
)

// ErrOutOfRange is returned by Get for an ID that was never allocated.
var ErrOutOfRange = errors.New("entity id out of range")

// detached marks an entity that is between TakeOut and PutIn.
const detached types.ID = -1

// Entity is one record in the store. Components are optional; a nil
// component means the entity lacks that capability.
type Entity struct {
	ID    types.ID
	Tag   string // machine name, unique
	Name  string // display name
	Flags *flags.Set

	Room   *Room
	Thing  *Thing
	Player *Player
	Rule   *Rule

	loc      types.ID
	holds    bool // has a contents list
	contents []types.ID
	prose    map[types.ProseKind]Prose
	hooks    map[types.EventKind]Hook
}

// Room is the capability of being a location.
type Room struct {
	Exits map[types.Dir]Link
}

// Thing is the capability of being an object the player can see and handle.
type Thing struct{}

// Player marks the entity the commands act on. Its location is its
// container; its carried items are its contents.
type Player struct{}

// Rule is a predicate/action pair evaluated once per turn.
type Rule struct {
	Predicate func(w *World) bool
	Actions   []types.Action
	OnceOnly  bool
	Fired     bool
}

// World holds every entity, indexed by ID.
type World struct {
	entities []*Entity
	tags     map[string]types.ID
	rules    []types.ID
	pid      types.ID
	clock    int
	sealed   bool
}

// New creates a world holding only Limbo.
func New() *World {
	w := &World{tags: map[string]types.ID{}}
	limbo := &Entity{
		ID:    types.Limbo,
		Tag:   "limbo",
		Name:  "nowhere",
		Flags: flags.New(),
		loc:   detached,
		holds: true,
	}
	w.entities = append(w.entities, limbo)
	w.tags[limbo.Tag] = limbo.ID
	return w
}

// Seal ends the build phase. Adding entities afterwards panics.
func (w *World) Seal() {
	w.sealed = true
}

// Sealed reports whether the build phase is over.
func (w *World) Sealed() bool {
	return w.sealed
}

// Len returns the number of allocated IDs, including Limbo.
func (w *World) Len() int {
	return len(w.entities)
}

// Get returns the entity record for id.
func (w *World) Get(id types.ID) (*Entity, error) {
	if id < 0 || int(id) >= len(w.entities) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, id)
	}
	return w.entities[id], nil
}

// entity is Get for callers that know id is valid.
func (w *World) entity(id types.ID) *Entity {
	e, err := w.Get(id)
	if err != nil {
		panic(fmt.Sprintf("world: %v", err))
	}
	return e
}

// Each calls fn for every entity in ID order.
func (w *World) Each(fn func(e *Entity)) {
	for _, e := range w.entities {
		fn(e)
	}
}

// LookupID finds an entity by tag.
func (w *World) LookupID(tag string) (types.ID, bool) {
	id, ok := w.tags[tag]
	return id, ok
}

// Tag returns the entity's machine name.
func (w *World) Tag(id types.ID) string {
	return w.entity(id).Tag
}

// Name returns the entity's display name.
func (w *World) Name(id types.ID) string {
	return w.entity(id).Name
}

// PlayerID returns the player entity. Panics if no player was built.
func (w *World) PlayerID() types.ID {
	if w.pid == types.Limbo {
		panic("world: no player entity")
	}
	return w.pid
}

// Here returns the player's current location.
func (w *World) Here() types.ID {
	return w.Loc(w.PlayerID())
}

// Clock returns the number of completed turns.
func (w *World) Clock() int {
	return w.clock
}

// Tick advances the clock by one turn. Only the turn driver calls this.
func (w *World) Tick() {
	w.clock++
}

// Rules returns the rule entities in authoring order. The slice is a copy,
// so rules added later do not appear in it.
func (w *World) Rules() []types.ID {
	return append([]types.ID(nil), w.rules...)
}

// describe formats an entity for panic messages.
func (w *World) describe(id types.ID) string {
	if id < 0 || int(id) >= len(w.entities) {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%d (%q)", id, w.entities[id].Tag)
}

// Capability projections. The As* forms report presence; the bare forms
// panic when the capability is missing. The returned pointers are live.

func (w *World) AsRoom(id types.ID) (*Room, bool) {
	r := w.entity(id).Room
	return r, r != nil
}

func (w *World) AsThing(id types.ID) (*Thing, bool) {
	t := w.entity(id).Thing
	return t, t != nil
}

func (w *World) AsPlayer(id types.ID) (*Player, bool) {
	p := w.entity(id).Player
	return p, p != nil
}

func (w *World) AsRule(id types.ID) (*Rule, bool) {
	r := w.entity(id).Rule
	return r, r != nil
}

func (w *World) Room(id types.ID) *Room {
	r, ok := w.AsRoom(id)
	if !ok {
		panic(fmt.Sprintf("world: %s is not a room", w.describe(id)))
	}
	return r
}

func (w *World) Thing(id types.ID) *Thing {
	t, ok := w.AsThing(id)
	if !ok {
		panic(fmt.Sprintf("world: %s is not a thing", w.describe(id)))
	}
	return t
}

func (w *World) Player(id types.ID) *Player {
	p, ok := w.AsPlayer(id)
	if !ok {
		panic(fmt.Sprintf("world: %s is not a player", w.describe(id)))
	}
	return p
}

func (w *World) Rule(id types.ID) *Rule {
	r, ok := w.AsRule(id)
	if !ok {
		panic(fmt.Sprintf("world: %s is not a rule", w.describe(id)))
	}
	return r
}

// Flags returns the entity's flag set. Every entity bears flags.
func (w *World) Flags(id types.ID) *flags.Set {
	return w.entity(id).Flags
}

// SetFlag sets f on id.
func (w *World) SetFlag(id types.ID, f types.Flag) {
	w.Flags(id).Set(f)
}

// ClearFlag clears f on id.
func (w *World) ClearFlag(id types.ID, f types.Flag) {
	w.Flags(id).Clear(f)
}

// HasFlag reports whether id carries exactly f.
func (w *World) HasFlag(id types.ID, f types.Flag) bool {
	return w.Flags(id).Has(f)
}

// IsScenery reports whether id is flagged as scenery.
func (w *World) IsScenery(id types.ID) bool {
	return w.HasFlag(id, flags.Scenery)
}
