// Package debug renders entities for the dump and list commands.
package debug

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

var proseKinds = []types.ProseKind{
	types.ProseRoom, types.ProseThing, types.ProseBook, types.ProseScenery,
}

var eventKinds = []types.EventKind{
	types.EventGet, types.EventDrop, types.EventEnter, types.EventExamine, types.EventRead,
}

// Snapshot is the dumpable view of one entity.
type Snapshot struct {
	ID         types.ID          `yaml:"id"`
	Tag        string            `yaml:"tag"`
	Name       string            `yaml:"name"`
	Loc        string            `yaml:"loc,omitempty"`
	Components []string          `yaml:"components,omitempty"`
	Flags      []string          `yaml:"flags,omitempty"`
	Contents   []string          `yaml:"contents,omitempty"`
	Exits      map[string]string `yaml:"exits,omitempty"`
	Prose      map[string]string `yaml:"prose,omitempty"`
	Hooks      []string          `yaml:"hooks,omitempty"`
	Rule       *RuleSnapshot     `yaml:"rule,omitempty"`
}

// RuleSnapshot summarizes a rule component.
type RuleSnapshot struct {
	Once    bool     `yaml:"once"`
	Fired   bool     `yaml:"fired"`
	Actions []string `yaml:"actions,omitempty"`
}

// Snap captures the current state of id. Prose producers are invoked, so
// the snapshot shows what the player would see right now.
func Snap(w *world.World, id types.ID) Snapshot {
	s := Snapshot{ID: id, Tag: w.Tag(id), Name: w.Name(id)}

	if id != types.Limbo {
		s.Loc = ref(w, w.Loc(id))
	}
	s.Components = components(w, id)

	for _, f := range w.Flags(id).List() {
		s.Flags = append(s.Flags, FlagString(w, f))
	}
	for _, cid := range w.Contents(id) {
		s.Contents = append(s.Contents, ref(w, cid))
	}

	for _, dir := range w.Exits(id) {
		if s.Exits == nil {
			s.Exits = map[string]string{}
		}
		link, _ := w.Follow(id, dir)
		if link.IsDeadEnd() {
			s.Exits[string(dir)] = "dead end"
		} else {
			s.Exits[string(dir)] = ref(w, link.To)
		}
	}

	for _, kind := range proseKinds {
		text, ok := w.Prose(id, kind)
		if !ok {
			continue
		}
		if s.Prose == nil {
			s.Prose = map[string]string{}
		}
		s.Prose[string(kind)] = text
	}

	for _, ev := range eventKinds {
		if w.HasHook(id, ev) {
			s.Hooks = append(s.Hooks, string(ev))
		}
	}

	if r, ok := w.AsRule(id); ok {
		rs := &RuleSnapshot{Once: r.OnceOnly, Fired: r.Fired}
		for _, a := range r.Actions {
			rs.Actions = append(rs.Actions, ActionString(w, a))
		}
		s.Rule = rs
	}

	return s
}

// Dump renders one entity as YAML.
func Dump(w *world.World, id types.ID) (string, error) {
	if _, err := w.Get(id); err != nil {
		return "", err
	}
	out, err := yaml.Marshal(Snap(w, id))
	if err != nil {
		return "", fmt.Errorf("dumping %d: %w", id, err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// DumpWorld renders every entity as a YAML document stream.
func DumpWorld(w *world.World) (string, error) {
	var docs []string
	var err error
	w.Each(func(e *world.Entity) {
		if err != nil {
			return
		}
		var doc string
		doc, err = Dump(w, e.ID)
		docs = append(docs, doc)
	})
	if err != nil {
		return "", err
	}
	return strings.Join(docs, "\n---\n"), nil
}

// List returns one line per entity: ID, name and capabilities.
func List(w *world.World) []string {
	var lines []string
	w.Each(func(e *world.Entity) {
		line := fmt.Sprintf("[%d] %s", e.ID, e.Name)
		if comps := components(w, e.ID); len(comps) > 0 {
			line += " (" + strings.Join(comps, ", ") + ")"
		}
		lines = append(lines, line)
	})
	return lines
}

// FlagString formats a flag, naming its subject by tag.
func FlagString(w *world.World, f types.Flag) string {
	if f.Subject == types.Limbo {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s(%s)", f.Kind, ref(w, f.Subject))
}

// ActionString formats one rule action.
func ActionString(w *world.World, a types.Action) string {
	switch a.Type {
	case types.ActionPrint:
		return fmt.Sprintf("print %q", a.Text)
	case types.ActionSetFlag, types.ActionClearFlag:
		return fmt.Sprintf("%s %s %s", a.Type, ref(w, a.Entity), FlagString(w, a.Flag))
	case types.ActionSwap:
		return fmt.Sprintf("swap %s %s", ref(w, a.Entity), ref(w, a.Other))
	default:
		return string(a.Type)
	}
}

func components(w *world.World, id types.ID) []string {
	title := cases.Title(language.English)
	var out []string
	add := func(name string, ok bool) {
		if ok {
			out = append(out, title.String(name))
		}
	}
	_, ok := w.AsRoom(id)
	add("room", ok)
	_, ok = w.AsThing(id)
	add("thing", ok)
	add("container", ok && w.Holds(id))
	_, ok = w.AsPlayer(id)
	add("player", ok)
	_, ok = w.AsRule(id)
	add("rule", ok)
	return out
}

// ref names an entity for humans. IDs outside the store are shown bare.
func ref(w *world.World, id types.ID) string {
	if _, err := w.Get(id); err != nil {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s#%d", w.Tag(id), id)
}

// State summarizes the player: clock, location, inventory and flags.
func State(w *world.World) []string {
	pid := w.PlayerID()
	lines := []string{
		fmt.Sprintf("Clock: %d", w.Clock()),
		fmt.Sprintf("Location: %s", w.Name(w.Here())),
	}

	var held []string
	for _, id := range w.Contents(pid) {
		held = append(held, w.Name(id))
	}
	if len(held) > 0 {
		lines = append(lines, "Inventory: "+strings.Join(held, ", "))
	}

	var fs []string
	for _, f := range w.Flags(pid).List() {
		fs = append(fs, FlagString(w, f))
	}
	if len(fs) > 0 {
		lines = append(lines, "Flags: "+strings.Join(fs, " "))
	}
	return lines
}

// Trace lists the rules that fired in r, the actions they ran and the
// hooks that were dispatched.
func Trace(w *world.World, r types.Result) []string {
	var lines []string
	for _, tag := range r.Fired {
		lines = append(lines, "[trace] fired "+tag)
	}
	for _, a := range r.Actions {
		lines = append(lines, "[trace]   "+ActionString(w, a))
	}
	for _, ev := range r.Events {
		lines = append(lines, fmt.Sprintf("[trace] event %s on %s", ev.Kind, ref(w, ev.Entity)))
	}
	return lines
}
