// Package types defines the shared data structures for the thicket engine.
// This package contains only type definitions and constants, no logic.
package types

// ID identifies an entity in the world. IDs are assigned in creation order
// and are never reused.
type ID int

// Limbo is the reserved "nowhere" container. Entities removed from play are
// moved here; it is never a room, thing or player.
const Limbo ID = 0

// Dir is a compass or vertical direction used as a room exit key.
type Dir string

const (
	North Dir = "north"
	South Dir = "south"
	East  Dir = "east"
	West  Dir = "west"
	Up    Dir = "up"
	Down  Dir = "down"
	In    Dir = "in"
	Out   Dir = "out"
)

// FlagKind names a flag. The engine defines a handful; scenarios may add
// their own simply by declaring new constants.
type FlagKind string

const (
	Killed     FlagKind = "killed"
	Seen       FlagKind = "seen"
	Scenery    FlagKind = "scenery"
	Dirty      FlagKind = "dirty"
	DirtyHands FlagKind = "dirty-hands"
	HasWater   FlagKind = "has-water"
)

// Flag is a marker of state on an entity. Subject is non-zero for
// parameterized flags, e.g. {Seen, room} records that a room was seen.
type Flag struct {
	Kind    FlagKind
	Subject ID
}

// ProseKind selects one of an entity's prose slots.
type ProseKind string

const (
	ProseRoom    ProseKind = "room"    // a room's interior
	ProseThing   ProseKind = "thing"   // a thing's visible appearance
	ProseBook    ProseKind = "book"    // readable contents of a note, book, ...
	ProseScenery ProseKind = "scenery" // blurb for scenery
)

// EventKind names something that happened to an entity.
type EventKind string

const (
	EventGet     EventKind = "get"
	EventDrop    EventKind = "drop"
	EventEnter   EventKind = "enter"
	EventExamine EventKind = "examine"
	EventRead    EventKind = "read"
)

// ActionType discriminates the Action union.
type ActionType string

const (
	ActionPrint     ActionType = "print"
	ActionSetFlag   ActionType = "set_flag"
	ActionClearFlag ActionType = "clear_flag"
	ActionSwap      ActionType = "swap"
)

// Action is a single step of a rule's action script.
//
//	print:      Text
//	set_flag:   Entity, Flag
//	clear_flag: Entity, Flag
//	swap:       Entity (in play) with Other (in limbo)
type Action struct {
	Type   ActionType
	Text   string
	Entity ID
	Other  ID
	Flag   Flag
}

// Condition is a declarative predicate over the world.
type Condition struct {
	Type   string // "clock_is", "has_flag", "carries", "in_room", "not", ...
	Entity ID
	Other  ID
	Flag   Flag
	Value  int
	Inner  *Condition // for "not"
}

// Intent is the tokenized form of a player command.
type Intent struct {
	Verb   string
	Object string // remaining tokens, space separated; may be empty
}

// Event records a hook dispatch that happened during a turn.
type Event struct {
	Kind   EventKind
	Entity ID
}

// Result is the output of a single game step.
type Result struct {
	Output  []string
	Events  []Event
	Actions []Action // actions executed by rules this turn
	Fired   []string // tags of rules that fired this turn
	Failed  bool     // the command was rejected and had no effect
	Quit    bool     // the player asked to end the game
}
