// Package loader loads Lua scenario content and builds a world from it.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/thicket/types"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an integer field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// eachTable calls fn for every table in the array part of tbl.
func eachTable(tbl *lua.LTable, fn func(*lua.LTable) error) error {
	if tbl == nil {
		return nil
	}
	for i := 1; i <= tbl.MaxN(); i++ {
		t, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return fmt.Errorf("entry %d: expected a table, got %s", i, tbl.RawGetInt(i).Type())
		}
		if err := fn(t); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// compile converts all collected Lua data into Defs.
func compile(coll *collector) (*Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	defs := &Defs{
		Links: coll.links,
		Exits: coll.exits,
	}

	var err error
	defs.Game, defs.Player, err = compileGame(coll.game)
	if err != nil {
		return nil, fmt.Errorf("compiling game: %w", err)
	}

	for _, raw := range coll.rooms {
		room, err := compileRoom(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling room %s: %w", raw.tag, err)
		}
		defs.Rooms = append(defs.Rooms, room)
	}

	for _, raw := range coll.things {
		thing, err := compileThing(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling thing %s: %w", raw.tag, err)
		}
		defs.Things = append(defs.Things, thing)
	}

	for _, raw := range coll.rules {
		rule, err := compileRule(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling rule %s: %w", raw.tag, err)
		}
		defs.Rules = append(defs.Rules, rule)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) (GameDef, PlayerDef, error) {
	game := GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Intro:   getString(tbl, "intro"),
	}

	player := PlayerDef{Name: "self"}
	if ptbl := getTable(tbl, "player"); ptbl != nil {
		if name := getString(ptbl, "name"); name != "" {
			player.Name = name
		}
		var err error
		if player.Prose, err = compileProse(ptbl, "prose"); err != nil {
			return game, player, fmt.Errorf("player prose: %w", err)
		}
		player.Flags = compileFlags(getTable(ptbl, "flags"))
	}
	return game, player, nil
}

func compileRoom(raw rawDecl) (RoomDef, error) {
	tbl := raw.table
	room := RoomDef{
		Tag:   raw.tag,
		Name:  getString(tbl, "name"),
		Flags: compileFlags(getTable(tbl, "flags")),
	}
	if room.Name == "" {
		room.Name = raw.tag
	}

	var err error
	if room.Prose, err = compileProse(tbl, "prose"); err != nil {
		return room, fmt.Errorf("prose: %w", err)
	}
	if room.Hooks, err = compileHooks(getTable(tbl, "on")); err != nil {
		return room, err
	}
	return room, nil
}

func compileThing(raw rawDecl) (ThingDef, error) {
	tbl := raw.table
	thing := ThingDef{
		Tag:       raw.tag,
		Name:      getString(tbl, "name"),
		Location:  getString(tbl, "location"),
		Scenery:   getBool(tbl, "scenery", false),
		Container: getBool(tbl, "container", false),
		Flags:     compileFlags(getTable(tbl, "flags")),
	}
	if thing.Name == "" {
		thing.Name = raw.tag
	}

	var err error
	if thing.Prose, err = compileProse(tbl, "prose"); err != nil {
		return thing, fmt.Errorf("prose: %w", err)
	}
	if thing.Book, err = compileProse(tbl, "book"); err != nil {
		return thing, fmt.Errorf("book: %w", err)
	}
	if thing.Blurb, err = compileProse(tbl, "blurb"); err != nil {
		return thing, fmt.Errorf("blurb: %w", err)
	}
	if thing.Hooks, err = compileHooks(getTable(tbl, "on")); err != nil {
		return thing, err
	}
	return thing, nil
}

func compileRule(raw rawDecl) (RuleDef, error) {
	tbl := raw.table
	rule := RuleDef{
		Tag:  raw.tag,
		Once: getBool(tbl, "once", false),
	}

	var err error
	if rule.When, err = compileConditions(getTable(tbl, "when")); err != nil {
		return rule, fmt.Errorf("when: %w", err)
	}
	if rule.Actions, err = compileActions(getTable(tbl, "actions")); err != nil {
		return rule, fmt.Errorf("actions: %w", err)
	}
	return rule, nil
}

// compileProse reads a prose field: either a plain string, or a list of
// { when = {...}, text = "..." } variants tried in order.
func compileProse(tbl *lua.LTable, key string) ([]Variant, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LString:
		return []Variant{{Text: string(v)}}, nil
	case *lua.LTable:
		var variants []Variant
		err := eachTable(v, func(vt *lua.LTable) error {
			when, err := compileConditions(getTable(vt, "when"))
			if err != nil {
				return err
			}
			variants = append(variants, Variant{When: when, Text: getString(vt, "text")})
			return nil
		})
		return variants, err
	default:
		return nil, fmt.Errorf("expected a string or a list of variants, got %s", v.Type())
	}
}

// compileHooks reads an on = { get = { when = ..., actions = ... } } table.
func compileHooks(tbl *lua.LTable) ([]HookDef, error) {
	if tbl == nil {
		return nil, nil
	}

	var hooks []HookDef
	var err error
	tbl.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		ev, ok := k.(lua.LString)
		if !ok {
			return
		}
		htbl, ok := v.(*lua.LTable)
		if !ok {
			err = fmt.Errorf("hook %s: expected a table", ev)
			return
		}
		hook := HookDef{Event: types.EventKind(ev)}
		if hook.When, err = compileConditions(getTable(htbl, "when")); err != nil {
			err = fmt.Errorf("hook %s: %w", ev, err)
			return
		}
		if hook.Actions, err = compileActions(getTable(htbl, "actions")); err != nil {
			err = fmt.Errorf("hook %s: %w", ev, err)
			return
		}
		hooks = append(hooks, hook)
	})

	// ForEach order is unspecified.
	sort.Slice(hooks, func(i, j int) bool { return hooks[i].Event < hooks[j].Event })
	return hooks, err
}

func compileConditions(tbl *lua.LTable) ([]CondDef, error) {
	var conds []CondDef
	err := eachTable(tbl, func(ct *lua.LTable) error {
		conds = append(conds, compileCondition(ct))
		return nil
	})
	return conds, err
}

func compileCondition(tbl *lua.LTable) CondDef {
	c := CondDef{
		Type:   getString(tbl, "type"),
		Entity: getString(tbl, "entity"),
		Other:  getString(tbl, "other"),
		Flag:   parseFlag(getString(tbl, "flag")),
		Value:  getInt(tbl, "value"),
	}
	if inner := getTable(tbl, "inner"); inner != nil {
		ic := compileCondition(inner)
		c.Inner = &ic
	}
	return c
}

func compileActions(tbl *lua.LTable) ([]ActionDef, error) {
	var actions []ActionDef
	err := eachTable(tbl, func(at *lua.LTable) error {
		actions = append(actions, ActionDef{
			Type:   types.ActionType(getString(at, "type")),
			Text:   getString(at, "text"),
			Entity: getString(at, "entity"),
			Other:  getString(at, "other"),
			Flag:   parseFlag(getString(at, "flag")),
		})
		return nil
	})
	return actions, err
}

// compileFlags reads a list of flag strings.
func compileFlags(tbl *lua.LTable) []FlagRef {
	if tbl == nil {
		return nil
	}
	var out []FlagRef
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, parseFlag(string(s)))
		}
	}
	return out
}

// parseFlag reads "kind" or "kind:subject-tag".
func parseFlag(s string) FlagRef {
	kind, subject, _ := strings.Cut(s, ":")
	return FlagRef{Kind: types.FlagKind(kind), Subject: subject}
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
