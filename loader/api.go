package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/thicket/engine/rules"
	"github.com/nathoo/thicket/types"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerActionHelpers(L)
}

// tagged returns a curried constructor: Name "tag" { ... }.
func tagged(L *lua.LState, add func(rawDecl)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(rawDecl{tag: tag, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "room", player = { ... } }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Room "tag" { name = "...", prose = ..., flags = {...}, on = {...} }
	L.SetGlobal("Room", tagged(L, func(d rawDecl) { coll.rooms = append(coll.rooms, d) }))

	// Thing "tag" { name = "...", location = "tag", prose = ..., book = ..., ... }
	L.SetGlobal("Thing", tagged(L, func(d rawDecl) { coll.things = append(coll.things, d) }))

	// Rule "tag" { once = true, when = {...}, actions = {...} }
	L.SetGlobal("Rule", tagged(L, func(d rawDecl) { coll.rules = append(coll.rules, d) }))

	// Link("a", "east", "west", "b")
	L.SetGlobal("Link", L.NewFunction(func(L *lua.LState) int {
		coll.links = append(coll.links, LinkDef{
			From: L.CheckString(1),
			Dir:  L.CheckString(2),
			Back: L.CheckString(3),
			To:   L.CheckString(4),
		})
		return 0
	}))

	// Exit("room", "north", "The brambles are too thick.")
	L.SetGlobal("Exit", L.NewFunction(func(L *lua.LState) int {
		coll.exits = append(coll.exits, ExitDef{
			From:  L.CheckString(1),
			Dir:   L.CheckString(2),
			Prose: L.CheckString(3),
		})
		return 0
	}))
}

// helper builds a table { type = name, ... } from the call's arguments.
func helper(L *lua.LState, name string, fill func(L *lua.LState, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(name))
		fill(L, tbl)
		L.Push(tbl)
		return 1
	})
}

func registerConditionHelpers(L *lua.LState) {
	clock := func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("value", lua.LNumber(L.CheckInt(1)))
	}
	entityFlag := func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("entity", lua.LString(L.CheckString(1)))
		tbl.RawSetString("flag", lua.LString(L.CheckString(2)))
	}
	pair := func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("entity", lua.LString(L.CheckString(1)))
		tbl.RawSetString("other", lua.LString(L.CheckString(2)))
	}

	// ClockIs(2), ClockAtLeast(5)
	L.SetGlobal("ClockIs", helper(L, rules.CondClockIs, clock))
	L.SetGlobal("ClockAtLeast", helper(L, rules.CondClockAtLeast, clock))

	// HasFlag("self", "dirty-hands"), FlagNot("note", "dirty")
	L.SetGlobal("HasFlag", helper(L, rules.CondHasFlag, entityFlag))
	L.SetGlobal("FlagNot", helper(L, rules.CondFlagNot, entityFlag))

	// Carries("self", "note"): the holder comes first.
	L.SetGlobal("Carries", helper(L, rules.CondCarries, pair))

	// LocatedIn("note", "clearing")
	L.SetGlobal("LocatedIn", helper(L, rules.CondLocatedIn, pair))

	// InRoom("bridge")
	L.SetGlobal("InRoom", helper(L, rules.CondInRoom, func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("entity", lua.LString(L.CheckString(1)))
	}))

	// Not(condition)
	L.SetGlobal("Not", helper(L, rules.CondNot, func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("inner", L.CheckTable(1))
	}))
}

func registerActionHelpers(L *lua.LState) {
	entityFlag := func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("entity", lua.LString(L.CheckString(1)))
		tbl.RawSetString("flag", lua.LString(L.CheckString(2)))
	}

	// Print("text")
	L.SetGlobal("Print", helper(L, string(types.ActionPrint), func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("text", lua.LString(L.CheckString(1)))
	}))

	// SetFlag("note", "dirty"), ClearFlag("self", "killed")
	L.SetGlobal("SetFlag", helper(L, string(types.ActionSetFlag), entityFlag))
	L.SetGlobal("ClearFlag", helper(L, string(types.ActionClearFlag), entityFlag))

	// Swap("note", "torn-note"): the second must be waiting in limbo.
	L.SetGlobal("Swap", helper(L, string(types.ActionSwap), func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("entity", lua.LString(L.CheckString(1)))
		tbl.RawSetString("other", lua.LString(L.CheckString(2)))
	}))
}
