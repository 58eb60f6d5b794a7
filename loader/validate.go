package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/thicket/engine/parser"
	"github.com/nathoo/thicket/engine/rules"
	"github.com/nathoo/thicket/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Tags that always name the player.
var playerTags = map[string]bool{"self": true, "player": true}

// Known condition types.
var validConditionTypes = map[string]bool{
	rules.CondClockIs:      true,
	rules.CondClockAtLeast: true,
	rules.CondHasFlag:      true,
	rules.CondFlagNot:      true,
	rules.CondCarries:      true,
	rules.CondInRoom:       true,
	rules.CondLocatedIn:    true,
	rules.CondNot:          true,
}

// Known action types.
var validActionTypes = map[types.ActionType]bool{
	types.ActionPrint:     true,
	types.ActionSetFlag:   true,
	types.ActionClearFlag: true,
	types.ActionSwap:      true,
}

// Known hook events.
var validEvents = map[types.EventKind]bool{
	types.EventGet:     true,
	types.EventDrop:    true,
	types.EventEnter:   true,
	types.EventExamine: true,
	types.EventRead:    true,
}

// index records what kind of entity each tag names.
type index struct {
	rooms      map[string]bool
	things     map[string]bool
	containers map[string]bool
	rules      map[string]bool
}

func (ix *index) known(tag string) bool {
	return playerTags[tag] || ix.rooms[tag] || ix.things[tag] || ix.rules[tag]
}

// validator accumulates problems while walking the defs.
type validator struct {
	ix *index
	ve *ValidationError
}

func (v *validator) errorf(format string, args ...any) {
	v.ve.Errors = append(v.ve.Errors, fmt.Sprintf(format, args...))
}

func (v *validator) warnf(format string, args ...any) {
	v.ve.Warnings = append(v.ve.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled defs for referential integrity. It returns
// the warnings it found, and a *ValidationError if there were errors.
func validate(defs *Defs) ([]string, error) {
	v := &validator{
		ix: &index{
			rooms:      map[string]bool{},
			things:     map[string]bool{},
			containers: map[string]bool{},
			rules:      map[string]bool{},
		},
		ve: &ValidationError{},
	}

	v.indexTags(defs)

	// Game metadata.
	if defs.Game.Title == "" {
		v.errorf("Game.title is required")
	}
	if defs.Game.Start == "" {
		v.errorf("Game.start is required")
	} else if !v.ix.rooms[defs.Game.Start] {
		v.errorf("start room %q not found in defined rooms", defs.Game.Start)
	}

	// Player.
	v.flags("player", defs.Player.Flags)
	v.prose("player", defs.Player.Prose)

	// Rooms.
	for _, r := range defs.Rooms {
		owner := fmt.Sprintf("room %q", r.Tag)
		v.flags(owner, r.Flags)
		v.prose(owner, r.Prose)
		v.hooks(owner, r.Hooks)
	}

	// Things.
	for _, t := range defs.Things {
		owner := fmt.Sprintf("thing %q", t.Tag)
		v.flags(owner, t.Flags)
		v.prose(owner, t.Prose)
		v.prose(owner, t.Book)
		v.prose(owner, t.Blurb)
		v.hooks(owner, t.Hooks)
		v.location(t)
	}

	v.cycles(defs.Things)

	// Links and dead ends.
	for _, l := range defs.Links {
		v.room("link", l.From)
		v.room("link", l.To)
		v.direction("link", l.Dir)
		v.direction("link", l.Back)
	}
	for _, x := range defs.Exits {
		v.room("exit", x.From)
		v.direction("exit", x.Dir)
	}

	// Rules.
	for _, r := range defs.Rules {
		owner := fmt.Sprintf("rule %q", r.Tag)
		if len(r.When) == 0 {
			v.warnf("%s has no conditions and fires every turn", owner)
		}
		v.conditions(owner, r.When)
		v.actions(owner, r.Actions)
	}

	if len(v.ve.Errors) > 0 {
		return v.ve.Warnings, v.ve
	}
	return v.ve.Warnings, nil
}

// indexTags records every declared tag and reports duplicates.
func (v *validator) indexTags(defs *Defs) {
	seen := map[string]bool{}
	claim := func(kind, tag string) bool {
		switch {
		case tag == "":
			v.errorf("%s with an empty tag", kind)
			return false
		case playerTags[tag] || tag == "limbo":
			v.errorf("%s %q uses a reserved tag", kind, tag)
			return false
		case seen[tag]:
			v.errorf("duplicate tag %q", tag)
			return false
		}
		seen[tag] = true
		return true
	}

	for _, r := range defs.Rooms {
		if claim("room", r.Tag) {
			v.ix.rooms[r.Tag] = true
		}
	}
	for _, t := range defs.Things {
		if claim("thing", t.Tag) {
			v.ix.things[t.Tag] = true
			if t.Container {
				v.ix.containers[t.Tag] = true
			}
		}
	}
	for _, r := range defs.Rules {
		if claim("rule", r.Tag) {
			v.ix.rules[r.Tag] = true
		}
	}
}

func (v *validator) entity(owner, tag string) {
	if !v.ix.known(tag) {
		v.errorf("%s references undefined entity %q", owner, tag)
	}
}

func (v *validator) room(owner, tag string) {
	if !v.ix.rooms[tag] {
		v.errorf("%s references undefined room %q", owner, tag)
	}
}

func (v *validator) direction(owner, dir string) {
	if _, ok := parser.Direction(dir); !ok {
		v.errorf("%s uses unknown direction %q", owner, dir)
	}
}

func (v *validator) flag(owner string, f FlagRef) {
	if f.Kind == "" {
		v.errorf("%s has an empty flag", owner)
	}
	if f.Subject != "" {
		v.entity(owner, f.Subject)
	}
}

func (v *validator) flags(owner string, fs []FlagRef) {
	for _, f := range fs {
		v.flag(owner, f)
	}
}

func (v *validator) prose(owner string, variants []Variant) {
	for i, pv := range variants {
		if pv.Text == "" {
			v.errorf("%s prose variant %d has no text", owner, i+1)
		}
		v.conditions(owner, pv.When)
	}
	if n := len(variants); n > 0 && len(variants[n-1].When) > 0 {
		v.warnf("%s prose has no fallback variant and may be empty", owner)
	}
}

func (v *validator) hooks(owner string, hooks []HookDef) {
	for _, h := range hooks {
		if !validEvents[h.Event] {
			v.errorf("%s hooks unknown event %q", owner, h.Event)
		}
		v.conditions(owner, h.When)
		v.actions(owner, h.Actions)
	}
}

func (v *validator) location(t ThingDef) {
	owner := fmt.Sprintf("thing %q", t.Tag)
	switch {
	case t.Location == "":
		v.warnf("%s has no location and starts in limbo", owner)
	case t.Location == t.Tag:
		v.errorf("%s cannot be inside itself", owner)
	case playerTags[t.Location], v.ix.rooms[t.Location], v.ix.containers[t.Location]:
	case v.ix.things[t.Location]:
		v.errorf("%s location %q is not a container", owner, t.Location)
	default:
		v.errorf("%s location %q is not defined", owner, t.Location)
	}
}

// cycles reports things that end up inside themselves through a chain of
// containers.
func (v *validator) cycles(things []ThingDef) {
	loc := map[string]string{}
	for _, t := range things {
		loc[t.Tag] = t.Location
	}
	for _, t := range things {
		if t.Location == t.Tag {
			continue // reported by location
		}
		steps := 0
		for cur := loc[t.Tag]; v.ix.things[cur]; cur = loc[cur] {
			if cur == t.Tag {
				v.errorf("thing %q is inside itself through its containers", t.Tag)
				break
			}
			if steps++; steps > len(things) {
				break
			}
		}
	}
}

func (v *validator) conditions(owner string, conds []CondDef) {
	for _, c := range conds {
		v.condition(owner, c)
	}
}

func (v *validator) condition(owner string, c CondDef) {
	if !validConditionTypes[c.Type] {
		v.errorf("%s uses unknown condition type %q", owner, c.Type)
		return
	}
	switch c.Type {
	case rules.CondHasFlag, rules.CondFlagNot:
		v.entity(owner, c.Entity)
		v.flag(owner, c.Flag)
	case rules.CondCarries, rules.CondLocatedIn:
		v.entity(owner, c.Entity)
		v.entity(owner, c.Other)
	case rules.CondInRoom:
		v.room(owner, c.Entity)
	case rules.CondNot:
		if c.Inner != nil {
			v.condition(owner, *c.Inner)
		}
	}
}

func (v *validator) actions(owner string, actions []ActionDef) {
	for _, a := range actions {
		if !validActionTypes[a.Type] {
			v.errorf("%s uses unknown action type %q", owner, a.Type)
			continue
		}
		switch a.Type {
		case types.ActionSetFlag, types.ActionClearFlag:
			v.entity(owner, a.Entity)
			v.flag(owner, a.Flag)
		case types.ActionSwap:
			v.entity(owner, a.Entity)
			v.entity(owner, a.Other)
		}
	}
}
