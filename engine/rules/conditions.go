// Package rules implements the per-turn rule engine and the declarative
// condition vocabulary used by data-driven predicates.
package rules

import (
	"fmt"

	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// Condition types.
const (
	CondClockIs      = "clock_is"
	CondClockAtLeast = "clock_at_least"
	CondHasFlag      = "has_flag"
	CondFlagNot      = "flag_not"
	CondCarries      = "carries"
	CondInRoom       = "in_room"
	CondLocatedIn    = "located_in"
	CondNot          = "not"
)

// EvalCondition evaluates a single condition against the current world.
func EvalCondition(c types.Condition, w *world.World) bool {
	switch c.Type {
	case CondClockIs:
		return w.Clock() == c.Value

	case CondClockAtLeast:
		return w.Clock() >= c.Value

	case CondHasFlag:
		return w.HasFlag(c.Entity, c.Flag)

	case CondFlagNot:
		return !w.HasFlag(c.Entity, c.Flag)

	case CondCarries:
		return w.Loc(c.Other) == c.Entity

	case CondInRoom:
		return w.Here() == c.Entity

	case CondLocatedIn:
		return w.Loc(c.Entity) == c.Other

	case CondNot:
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, w)

	default:
		panic(fmt.Sprintf("rules: unknown condition type %q", c.Type))
	}
}

// EvalAll returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAll(conditions []types.Condition, w *world.World) bool {
	for _, c := range conditions {
		if !EvalCondition(c, w) {
			return false
		}
	}
	return true
}

// When turns a condition list into a rule predicate.
func When(conditions ...types.Condition) func(w *world.World) bool {
	return func(w *world.World) bool {
		return EvalAll(conditions, w)
	}
}

func ClockIs(n int) types.Condition {
	return types.Condition{Type: CondClockIs, Value: n}
}

func ClockAtLeast(n int) types.Condition {
	return types.Condition{Type: CondClockAtLeast, Value: n}
}

func HasFlag(id types.ID, f types.Flag) types.Condition {
	return types.Condition{Type: CondHasFlag, Entity: id, Flag: f}
}

func FlagNot(id types.ID, f types.Flag) types.Condition {
	return types.Condition{Type: CondFlagNot, Entity: id, Flag: f}
}

// Carries holds when item is directly inside holder.
func Carries(holder, item types.ID) types.Condition {
	return types.Condition{Type: CondCarries, Entity: holder, Other: item}
}

// InRoom holds when the player is in room.
func InRoom(room types.ID) types.Condition {
	return types.Condition{Type: CondInRoom, Entity: room}
}

func LocatedIn(id, container types.ID) types.Condition {
	return types.Condition{Type: CondLocatedIn, Entity: id, Other: container}
}

func Not(c types.Condition) types.Condition {
	return types.Condition{Type: CondNot, Inner: &c}
}
