package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/types"
)

// testWorld builds two linked rooms, a player, a box and a coin.
func testWorld(t *testing.T) (w *World, hall, yard, pid, box, coin types.ID) {
	t.Helper()
	w = New()
	hall = w.Add("hall").Room("Hall").Prose(types.ProseRoom, "A long hall.").ID()
	yard = w.Add("yard").Room("Yard").ID()
	w.Twoway(hall, types.North, types.South, yard)
	pid = w.Add("self").Player().In(hall).ID()
	box = w.Add("box").Thing("box").Container().In(hall).ID()
	coin = w.Add("coin").Thing("coin").In(box).ID()
	return
}

// memberships counts the contents lists each entity appears in.
func memberships(w *World) map[types.ID]int {
	counts := map[types.ID]int{}
	w.Each(func(e *Entity) {
		for _, id := range w.Contents(e.ID) {
			counts[id]++
		}
	})
	return counts
}

func assertForest(t *testing.T, w *World) {
	t.Helper()
	counts := memberships(w)
	w.Each(func(e *Entity) {
		if e.ID == types.Limbo {
			assert.Zero(t, counts[e.ID], "limbo must not be contained")
			return
		}
		assert.Equal(t, 1, counts[e.ID], "entity %q must be in exactly one container", e.Tag)
		assert.Contains(t, w.Contents(w.Loc(e.ID)), e.ID)
		assert.NotEqual(t, e.ID, w.Loc(e.ID))
	})
}

func TestNew_HasOnlyLimbo(t *testing.T) {
	w := New()

	assert.Equal(t, 1, w.Len())
	id, ok := w.LookupID("limbo")
	require.True(t, ok)
	assert.Equal(t, types.Limbo, id)
}

func TestAdd_AssignsIncreasingIDs(t *testing.T) {
	w := New()
	a := w.Add("a").ID()
	b := w.Add("b").ID()

	assert.Equal(t, types.ID(1), a)
	assert.Equal(t, types.ID(2), b)
	assert.Equal(t, types.Limbo, w.Loc(a), "new entities start in limbo")
}

func TestAdd_DuplicateTagPanics(t *testing.T) {
	w := New()
	w.Add("note")

	assert.Panics(t, func() { w.Add("note") })
}

func TestAdd_AfterSealPanics(t *testing.T) {
	w := New()
	w.Seal()

	assert.True(t, w.Sealed())
	assert.Panics(t, func() { w.Add("late") })
}

func TestGet_OutOfRange(t *testing.T) {
	w, _, _, _, _, _ := testWorld(t)

	_, err := w.Get(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = w.Get(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestLookupID(t *testing.T) {
	w, _, _, _, _, coin := testWorld(t)

	id, ok := w.LookupID("coin")
	assert.True(t, ok)
	assert.Equal(t, coin, id)

	_, ok = w.LookupID("dragon")
	assert.False(t, ok)
}

func TestProjections(t *testing.T) {
	w, hall, _, pid, box, _ := testWorld(t)

	_, ok := w.AsRoom(hall)
	assert.True(t, ok)
	_, ok = w.AsRoom(box)
	assert.False(t, ok)
	_, ok = w.AsPlayer(pid)
	assert.True(t, ok)
	_, ok = w.AsRule(pid)
	assert.False(t, ok)

	assert.NotNil(t, w.Thing(box))
	assert.Panics(t, func() { w.Room(box) })
	assert.Panics(t, func() { w.Rule(hall) })
	assert.Panics(t, func() { w.Player(hall) })
}

func TestProjections_AreLive(t *testing.T) {
	w := New()
	id := w.Add("r").Once(func(*World) bool { return true }).ID()

	w.Rule(id).Fired = true

	r, _ := w.AsRule(id)
	assert.True(t, r.Fired)
}

func TestPlayer_OnlyOne(t *testing.T) {
	w := New()
	w.Add("self").Player()

	assert.Panics(t, func() { w.Add("other").Player() })
}

func TestPlayerID_PanicsWithoutPlayer(t *testing.T) {
	assert.Panics(t, func() { New().PlayerID() })
}

func TestContainment_InitialForest(t *testing.T) {
	w, hall, _, pid, box, coin := testWorld(t)

	assertForest(t, w)
	assert.Equal(t, hall, w.Here())
	assert.Equal(t, []types.ID{pid, box}, w.Contents(hall))
	assert.Equal(t, box, w.Loc(coin))
	assert.True(t, w.Within(coin, hall))
}

func TestContainment_TransferKeepsForest(t *testing.T) {
	w, hall, yard, pid, box, coin := testWorld(t)

	w.TakeOut(coin, box)
	w.PutIn(coin, pid)
	assertForest(t, w)
	assert.Equal(t, pid, w.Loc(coin))
	assert.Empty(t, w.Contents(box))

	w.Move(pid, yard)
	assertForest(t, w)
	assert.True(t, w.Within(coin, yard))
	assert.False(t, w.Within(coin, hall))
}

func TestContainment_TakeOutFromWrongContainerPanics(t *testing.T) {
	w, hall, _, _, _, coin := testWorld(t)

	assert.Panics(t, func() { w.TakeOut(coin, hall) })
	assertForest(t, w)
}

func TestContainment_PutInWithoutTakeOutPanics(t *testing.T) {
	w, _, _, pid, _, coin := testWorld(t)

	assert.Panics(t, func() { w.PutIn(coin, pid) })
	assertForest(t, w)
}

func TestContainment_CyclesRejected(t *testing.T) {
	w, _, _, _, box, coin := testWorld(t)
	purse := w.Add("purse").Thing("purse").Container().In(box).ID()

	assert.Panics(t, func() { w.Move(box, box) })
	assert.Panics(t, func() { w.Move(box, purse) })
	assertForest(t, w)

	w.Move(coin, purse)
	assert.True(t, w.Within(coin, box))
}

func TestContainment_NonContainerRejected(t *testing.T) {
	w, _, _, _, box, coin := testWorld(t)
	w.Move(coin, box)

	assert.Panics(t, func() { w.Move(box, coin) })
	assertForest(t, w)
}

func TestRemove_GoesToLimbo(t *testing.T) {
	w, _, _, _, box, coin := testWorld(t)

	w.Remove(coin)

	assert.Equal(t, types.Limbo, w.Loc(coin))
	assert.NotContains(t, w.Contents(box), coin)
	assertForest(t, w)
}

func TestLinks(t *testing.T) {
	w, hall, yard, _, box, _ := testWorld(t)
	w.DeadEnd(hall, types.East, "A wall.")

	l, ok := w.Follow(hall, types.North)
	require.True(t, ok)
	assert.Equal(t, yard, l.To)
	assert.False(t, l.IsDeadEnd())

	l, ok = w.Follow(yard, types.South)
	require.True(t, ok)
	assert.Equal(t, hall, l.To)

	l, ok = w.Follow(hall, types.East)
	require.True(t, ok)
	assert.True(t, l.IsDeadEnd())
	assert.Equal(t, "A wall.", l.DeadEnd)

	_, ok = w.Follow(hall, types.West)
	assert.False(t, ok)
	_, ok = w.Follow(box, types.North)
	assert.False(t, ok, "non-rooms have no exits")

	assert.Equal(t, []types.Dir{types.East, types.North}, w.Exits(hall))
}

func TestLinks_Asymmetric(t *testing.T) {
	w, hall, yard, _, _, _ := testWorld(t)
	cellar := w.Add("cellar").Room("Cellar").ID()
	w.Link(hall, types.Down, cellar)

	_, ok := w.Follow(cellar, types.Up)
	assert.False(t, ok)
	assert.Panics(t, func() { w.Link(yard, types.Down, types.Limbo) })
}

func TestFlags_Idempotent(t *testing.T) {
	w, hall, _, pid, _, _ := testWorld(t)

	w.SetFlag(pid, flags.DirtyHands)
	w.SetFlag(pid, flags.DirtyHands)
	assert.True(t, w.HasFlag(pid, flags.DirtyHands))

	w.ClearFlag(pid, flags.DirtyHands)
	w.ClearFlag(pid, flags.DirtyHands)
	assert.False(t, w.HasFlag(pid, flags.DirtyHands))

	w.SetFlag(pid, flags.Seen(hall))
	assert.True(t, w.HasFlag(pid, flags.Seen(hall)))
	assert.False(t, w.HasFlag(pid, flags.Seen(hall+1)))
}

func TestIsScenery(t *testing.T) {
	w, hall, _, _, box, _ := testWorld(t)
	statue := w.Add("statue").Thing("statue").Flag(flags.Scenery).In(hall).ID()

	assert.True(t, w.IsScenery(statue))
	assert.False(t, w.IsScenery(box))
}

func TestProse_StaticAndMissing(t *testing.T) {
	w, hall, _, _, box, _ := testWorld(t)

	text, ok := w.Prose(hall, types.ProseRoom)
	assert.True(t, ok)
	assert.Equal(t, "A long hall.", text)

	_, ok = w.Prose(box, types.ProseBook)
	assert.False(t, ok)
	assert.False(t, w.HasProse(box, types.ProseBook))
}

func TestProse_ProducerIsLazy(t *testing.T) {
	w := New()
	calls := 0
	note := w.Add("note").Thing("note").
		ProseFunc(types.ProseThing, func(w *World, id types.ID) string {
			calls++
			if w.HasFlag(id, flags.Dirty) {
				return "grubby"
			}
			return "clean"
		}).ID()

	assert.Zero(t, calls, "nothing is computed until requested")

	first, _ := w.Prose(note, types.ProseThing)
	second, _ := w.Prose(note, types.ProseThing)
	assert.Equal(t, first, second)

	w.SetFlag(note, flags.Dirty)
	third, _ := w.Prose(note, types.ProseThing)
	assert.Equal(t, "clean", first)
	assert.Equal(t, "grubby", third)
	assert.Equal(t, 3, calls)
}

func TestHooks(t *testing.T) {
	w, _, _, pid, box, coin := testWorld(t)
	var seen []types.EventKind
	w.OnEvent(coin, types.EventGet, func(w *World, id types.ID, ev types.EventKind) string {
		seen = append(seen, ev)
		if w.Loc(id) == w.PlayerID() {
			return "already yours"
		}
		return "not yet"
	})

	_, ok := w.Dispatch(coin, types.EventDrop)
	assert.False(t, ok)
	_, ok = w.Dispatch(box, types.EventGet)
	assert.False(t, ok)

	w.Move(coin, pid)
	out, ok := w.Dispatch(coin, types.EventGet)
	assert.True(t, ok)
	assert.Equal(t, "already yours", out)
	assert.Equal(t, []types.EventKind{types.EventGet}, seen)
	assert.True(t, w.HasHook(coin, types.EventGet))
}

func TestRules_SnapshotInAuthoringOrder(t *testing.T) {
	w := New()
	a := w.Add("a").Always(func(*World) bool { return true }).ID()
	w.Add("not-a-rule")
	b := w.Add("b").Once(func(*World) bool { return false }).ID()

	snap := w.Rules()
	assert.Equal(t, []types.ID{a, b}, snap)

	snap[0] = 99
	assert.Equal(t, []types.ID{a, b}, w.Rules(), "snapshot is a copy")
	assert.True(t, w.Rule(b).OnceOnly)
	assert.False(t, w.Rule(a).OnceOnly)
}

func TestBuilder_ActionWithoutRulePanics(t *testing.T) {
	w := New()

	assert.Panics(t, func() {
		w.Add("r").Action(types.Action{Type: types.ActionPrint, Text: "x"})
	})
}

func TestClock(t *testing.T) {
	w := New()
	assert.Zero(t, w.Clock())
	w.Tick()
	w.Tick()
	assert.Equal(t, 2, w.Clock())
}
