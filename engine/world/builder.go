package world

import (
	"fmt"

	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/types"
)

// Builder attaches components to a freshly created entity. Components can
// only be attached here.
type Builder struct {
	w *World
	e *Entity
}

// Add creates an entity with the given tag, initially in Limbo.
func (w *World) Add(tag string) *Builder {
	if w.sealed {
		panic(fmt.Sprintf("world: add %q: world is sealed", tag))
	}
	if _, dup := w.tags[tag]; dup {
		panic(fmt.Sprintf("world: add %q: duplicate tag", tag))
	}
	e := &Entity{
		ID:    types.ID(len(w.entities)),
		Tag:   tag,
		Name:  tag,
		Flags: flags.New(),
		loc:   detached,
	}
	w.entities = append(w.entities, e)
	w.tags[tag] = e.ID
	w.PutIn(e.ID, types.Limbo)
	return &Builder{w: w, e: e}
}

// ID returns the new entity's ID.
func (b *Builder) ID() types.ID {
	return b.e.ID
}

// Name sets the display name.
func (b *Builder) Name(name string) *Builder {
	b.e.Name = name
	return b
}

// Room makes the entity a location with the given display name.
func (b *Builder) Room(name string) *Builder {
	b.e.Room = &Room{Exits: map[types.Dir]Link{}}
	b.e.Name = name
	b.e.holds = true
	return b
}

// Thing makes the entity a visible object with the given display name.
func (b *Builder) Thing(name string) *Builder {
	b.e.Thing = &Thing{}
	b.e.Name = name
	return b
}

// Container gives the entity a contents list.
func (b *Builder) Container() *Builder {
	b.e.holds = true
	return b
}

// Player makes the entity the player. There can be only one.
func (b *Builder) Player() *Builder {
	if b.w.pid != types.Limbo {
		panic(fmt.Sprintf("world: %q: player already defined as %s",
			b.e.Tag, b.w.describe(b.w.pid)))
	}
	b.e.Player = &Player{}
	b.e.holds = true
	b.w.pid = b.e.ID
	return b
}

// Prose sets a fixed prose slot.
func (b *Builder) Prose(kind types.ProseKind, text string) *Builder {
	return b.setProse(kind, Prose{Text: text})
}

// ProseFunc sets a prose slot computed at query time.
func (b *Builder) ProseFunc(kind types.ProseKind, fn Producer) *Builder {
	return b.setProse(kind, Prose{Producer: fn})
}

func (b *Builder) setProse(kind types.ProseKind, p Prose) *Builder {
	if b.e.prose == nil {
		b.e.prose = map[types.ProseKind]Prose{}
	}
	b.e.prose[kind] = p
	return b
}

// Flag sets an initial flag.
func (b *Builder) Flag(f types.Flag) *Builder {
	b.e.Flags.Set(f)
	return b
}

// On registers an event hook.
func (b *Builder) On(ev types.EventKind, fn Hook) *Builder {
	b.w.OnEvent(b.e.ID, ev, fn)
	return b
}

// In moves the entity into container.
func (b *Builder) In(container types.ID) *Builder {
	b.w.Move(b.e.ID, container)
	return b
}

// Once makes the entity a rule that fires at most once.
func (b *Builder) Once(pred func(w *World) bool) *Builder {
	return b.rule(pred, true)
}

// Always makes the entity a rule that fires on every turn its predicate holds.
func (b *Builder) Always(pred func(w *World) bool) *Builder {
	return b.rule(pred, false)
}

func (b *Builder) rule(pred func(w *World) bool, once bool) *Builder {
	if b.e.Rule != nil {
		panic(fmt.Sprintf("world: %q: rule already defined", b.e.Tag))
	}
	b.e.Rule = &Rule{Predicate: pred, OnceOnly: once}
	b.w.rules = append(b.w.rules, b.e.ID)
	return b
}

// Action appends an action to the entity's rule.
func (b *Builder) Action(a types.Action) *Builder {
	if b.e.Rule == nil {
		panic(fmt.Sprintf("world: %q: action before Once/Always", b.e.Tag))
	}
	b.e.Rule.Actions = append(b.e.Rule.Actions, a)
	return b
}
