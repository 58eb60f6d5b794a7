package loader

import (
	"strings"

	"github.com/nathoo/thicket/engine/effects"
	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/engine/parser"
	"github.com/nathoo/thicket/engine/rules"
	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// builder turns validated defs into a world. Entities are allocated first so
// that everything else can refer to any tag.
type builder struct {
	w   *world.World
	bs  map[string]*world.Builder
	pid types.ID
}

// build creates the world described by defs. defs must have passed
// validate; any inconsistency left panics inside the world.
func build(defs *Defs) *world.World {
	b := &builder{w: world.New(), bs: map[string]*world.Builder{}}

	// Pass 1: allocate.
	player := b.w.Add("self").Player().Name(defs.Player.Name)
	b.pid = player.ID()
	b.bs["self"] = player

	for _, r := range defs.Rooms {
		b.bs[r.Tag] = b.w.Add(r.Tag).Room(r.Name)
	}
	for _, t := range defs.Things {
		tb := b.w.Add(t.Tag).Thing(t.Name)
		if t.Container {
			tb.Container()
		}
		b.bs[t.Tag] = tb
	}
	for _, r := range defs.Rules {
		b.bs[r.Tag] = b.w.Add(r.Tag)
	}

	// Pass 2: fill in.
	b.flags(player, defs.Player.Flags)
	b.prose(player, types.ProseThing, defs.Player.Prose)

	for _, r := range defs.Rooms {
		rb := b.bs[r.Tag]
		b.flags(rb, r.Flags)
		b.prose(rb, types.ProseRoom, r.Prose)
		b.hooks(rb, r.Hooks)
	}

	for _, t := range defs.Things {
		tb := b.bs[t.Tag]
		if t.Scenery {
			tb.Flag(flags.Scenery)
		}
		b.flags(tb, t.Flags)
		b.prose(tb, types.ProseThing, t.Prose)
		b.prose(tb, types.ProseBook, t.Book)
		b.prose(tb, types.ProseScenery, t.Blurb)
		b.hooks(tb, t.Hooks)
	}
	// Locations last, once every container exists.
	for _, t := range defs.Things {
		if t.Location != "" {
			b.bs[t.Tag].In(b.id(t.Location))
		}
	}

	for _, l := range defs.Links {
		dir, _ := parser.Direction(l.Dir)
		back, _ := parser.Direction(l.Back)
		b.w.Twoway(b.id(l.From), dir, back, b.id(l.To))
	}
	for _, x := range defs.Exits {
		dir, _ := parser.Direction(x.Dir)
		b.w.DeadEnd(b.id(x.From), dir, x.Prose)
	}

	for _, r := range defs.Rules {
		rb := b.bs[r.Tag]
		pred := rules.When(b.conditions(r.When)...)
		if r.Once {
			rb.Once(pred)
		} else {
			rb.Always(pred)
		}
		for _, a := range b.actions(r.Actions) {
			rb.Action(a)
		}
	}

	// Start.
	start := b.id(defs.Game.Start)
	b.w.Move(b.pid, start)
	b.w.SetFlag(b.pid, flags.Seen(start))

	return b.w
}

// id resolves a tag. "self" and "player" both name the player.
func (b *builder) id(tag string) types.ID {
	if playerTags[tag] {
		return b.pid
	}
	return b.bs[tag].ID()
}

func (b *builder) flag(f FlagRef) types.Flag {
	if f.Subject == "" {
		return flags.Of(f.Kind)
	}
	return flags.About(f.Kind, b.id(f.Subject))
}

func (b *builder) flags(eb *world.Builder, fs []FlagRef) {
	for _, f := range fs {
		eb.Flag(b.flag(f))
	}
}

// prose attaches a slot. A single unconditional variant is stored as fixed
// text; anything else becomes a producer.
func (b *builder) prose(eb *world.Builder, kind types.ProseKind, variants []Variant) {
	switch {
	case len(variants) == 0:
		return
	case len(variants) == 1 && len(variants[0].When) == 0:
		eb.Prose(kind, variants[0].Text)
		return
	}

	type compiled struct {
		when []types.Condition
		text string
	}
	cs := make([]compiled, len(variants))
	for i, v := range variants {
		cs[i] = compiled{when: b.conditions(v.When), text: v.Text}
	}

	eb.ProseFunc(kind, func(w *world.World, _ types.ID) string {
		for _, c := range cs {
			if rules.EvalAll(c.when, w) {
				return c.text
			}
		}
		return ""
	})
}

func (b *builder) hooks(eb *world.Builder, hooks []HookDef) {
	for _, h := range hooks {
		when := b.conditions(h.When)
		actions := b.actions(h.Actions)
		eb.On(h.Event, func(w *world.World, _ types.ID, _ types.EventKind) string {
			if !rules.EvalAll(when, w) {
				return ""
			}
			return strings.Join(effects.Apply(w, actions), "\n")
		})
	}
}

func (b *builder) conditions(defs []CondDef) []types.Condition {
	out := make([]types.Condition, 0, len(defs))
	for _, d := range defs {
		out = append(out, b.condition(d))
	}
	return out
}

func (b *builder) condition(d CondDef) types.Condition {
	c := types.Condition{Type: d.Type, Value: d.Value}
	if d.Entity != "" {
		c.Entity = b.id(d.Entity)
	}
	if d.Other != "" {
		c.Other = b.id(d.Other)
	}
	if d.Flag.Kind != "" {
		c.Flag = b.flag(d.Flag)
	}
	if d.Inner != nil {
		inner := b.condition(*d.Inner)
		c.Inner = &inner
	}
	return c
}

func (b *builder) actions(defs []ActionDef) []types.Action {
	out := make([]types.Action, 0, len(defs))
	for _, d := range defs {
		a := types.Action{Type: d.Type, Text: d.Text}
		if d.Entity != "" {
			a.Entity = b.id(d.Entity)
		}
		if d.Other != "" {
			a.Other = b.id(d.Other)
		}
		if d.Flag.Kind != "" {
			a.Flag = b.flag(d.Flag)
		}
		out = append(out, a)
	}
	return out
}
