package debug

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/thicket/engine/effects"
	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

func debugWorld() (*world.World, map[string]types.ID) {
	w := world.New()
	ids := map[string]types.ID{}
	ids["hall"] = w.Add("hall").Room("Hall").Prose(types.ProseRoom, "A long hall.").ID()
	ids["yard"] = w.Add("yard").Room("Yard").ID()
	w.Twoway(ids["hall"], types.North, types.South, ids["yard"])
	w.DeadEnd(ids["hall"], types.East, "A wall.")
	ids["self"] = w.Add("self").Player().In(ids["hall"]).Flag(flags.Seen(ids["hall"])).ID()
	ids["box"] = w.Add("box").Thing("box").Container().In(ids["hall"]).
		On(types.EventGet, func(*world.World, types.ID, types.EventKind) string { return "" }).ID()
	ids["rule"] = w.Add("rule").Once(func(*world.World) bool { return false }).
		Action(effects.Print("hi")).
		Action(effects.SetFlag(ids["self"], flags.Dirty)).ID()
	return w, ids
}

func TestDump_Room(t *testing.T) {
	w, ids := debugWorld()

	out, err := Dump(w, ids["hall"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("dump is not YAML: %v\n%s", err, out)
	}
	if snap.Tag != "hall" || snap.Name != "Hall" {
		t.Errorf("tag/name = %q/%q", snap.Tag, snap.Name)
	}
	if snap.Loc != "limbo#0" {
		t.Errorf("loc = %q, want limbo#0", snap.Loc)
	}
	if snap.Exits["north"] != "yard#2" {
		t.Errorf("north exit = %q, want yard#2", snap.Exits["north"])
	}
	if snap.Exits["east"] != "dead end" {
		t.Errorf("east exit = %q, want dead end", snap.Exits["east"])
	}
	if snap.Prose["room"] != "A long hall." {
		t.Errorf("room prose = %q", snap.Prose["room"])
	}
	if len(snap.Contents) != 2 || snap.Contents[0] != "self#3" {
		t.Errorf("contents = %v", snap.Contents)
	}
}

func TestSnap_FlagsHooksRule(t *testing.T) {
	w, ids := debugWorld()

	player := Snap(w, ids["self"])
	if len(player.Flags) != 1 || player.Flags[0] != "seen(hall#1)" {
		t.Errorf("flags = %v", player.Flags)
	}

	box := Snap(w, ids["box"])
	if strings.Join(box.Components, ",") != "Thing,Container" {
		t.Errorf("components = %v", box.Components)
	}
	if len(box.Hooks) != 1 || box.Hooks[0] != "get" {
		t.Errorf("hooks = %v", box.Hooks)
	}

	rule := Snap(w, ids["rule"])
	if rule.Rule == nil {
		t.Fatal("expected rule snapshot")
	}
	if !rule.Rule.Once || rule.Rule.Fired {
		t.Errorf("rule = %+v", rule.Rule)
	}
	want := []string{`print "hi"`, "set_flag self#3 dirty"}
	if strings.Join(rule.Rule.Actions, "|") != strings.Join(want, "|") {
		t.Errorf("actions = %v, want %v", rule.Rule.Actions, want)
	}
}

func TestDump_OutOfRange(t *testing.T) {
	w, _ := debugWorld()

	_, err := Dump(w, 99)
	if !errors.Is(err, world.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDumpWorld(t *testing.T) {
	w, _ := debugWorld()

	out, err := DumpWorld(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(out, "\n---\n"); got != w.Len()-1 {
		t.Errorf("expected %d separators, got %d", w.Len()-1, got)
	}
}

func TestList(t *testing.T) {
	w, _ := debugWorld()

	lines := List(w)
	if len(lines) != w.Len() {
		t.Fatalf("expected %d lines, got %d", w.Len(), len(lines))
	}
	if lines[0] != "[0] nowhere" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "[1] Hall (Room)" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[3] != "[3] self (Player)" {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestState(t *testing.T) {
	w, ids := debugWorld()
	w.Add("coin").Thing("coin").In(ids["self"])

	got := strings.Join(State(w), "\n")
	for _, want := range []string{"Clock: 0", "Location: Hall", "Inventory: coin", "Flags: seen(hall#1)"} {
		if !strings.Contains(got, want) {
			t.Errorf("State missing %q:\n%s", want, got)
		}
	}
}

func TestTrace(t *testing.T) {
	w, ids := debugWorld()
	r := types.Result{
		Fired:   []string{"rule"},
		Actions: []types.Action{effects.Print("hi")},
		Events:  []types.Event{{Kind: types.EventGet, Entity: ids["box"]}},
	}

	want := []string{
		"[trace] fired rule",
		`[trace]   print "hi"`,
		"[trace] event get on box#4",
	}
	got := Trace(w, r)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Trace =\n%v\nwant\n%v", got, want)
	}
}
