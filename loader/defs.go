package loader

import "github.com/nathoo/thicket/types"

// Defs is a compiled scenario: every declaration from the Lua files, with
// entity references still expressed as tags.
type Defs struct {
	Game   GameDef
	Player PlayerDef
	Rooms  []RoomDef
	Things []ThingDef
	Links  []LinkDef
	Exits  []ExitDef
	Rules  []RuleDef
}

// GameDef holds game metadata.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
	Start   string // tag of the starting room
}

// PlayerDef describes the player entity. Its tag is always "self".
type PlayerDef struct {
	Name  string
	Prose []Variant
	Flags []FlagRef
}

// RoomDef describes a location.
type RoomDef struct {
	Tag   string
	Name  string
	Prose []Variant
	Flags []FlagRef
	Hooks []HookDef
}

// ThingDef describes an object. An empty Location leaves it in limbo.
type ThingDef struct {
	Tag       string
	Name      string
	Location  string
	Prose     []Variant
	Book      []Variant
	Blurb     []Variant // scenery prose
	Scenery   bool
	Container bool
	Flags     []FlagRef
	Hooks     []HookDef
}

// LinkDef is a two-way connection between rooms.
type LinkDef struct {
	From string
	Dir  string
	Back string
	To   string
}

// ExitDef is a one-way dead end.
type ExitDef struct {
	From  string
	Dir   string
	Prose string
}

// RuleDef is a rule entity.
type RuleDef struct {
	Tag     string
	Once    bool
	When    []CondDef
	Actions []ActionDef
}

// HookDef reacts to one event on its owner when all conditions hold.
type HookDef struct {
	Event   types.EventKind
	When    []CondDef
	Actions []ActionDef
}

// Variant is one candidate text for a prose slot. The first variant whose
// conditions all hold is shown.
type Variant struct {
	When []CondDef
	Text string
}

// FlagRef is a flag whose subject, if any, is named by tag.
type FlagRef struct {
	Kind    types.FlagKind
	Subject string
}

// CondDef is a condition with tag references.
type CondDef struct {
	Type   string
	Entity string
	Other  string
	Flag   FlagRef
	Value  int
	Inner  *CondDef
}

// ActionDef is an action with tag references.
type ActionDef struct {
	Type   types.ActionType
	Text   string
	Entity string
	Other  string
	Flag   FlagRef
}
