package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/thicket/engine"
	"github.com/nathoo/thicket/engine/flags"
	"github.com/nathoo/thicket/scenario"
	"github.com/nathoo/thicket/types"
)

const trailDir = "../games/trail"

// writeGame writes each file into a fresh directory and returns its path.
func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const minimalGame = `
Game { title = "Minimal", start = "hall" }
Room "hall" { name = "Hall", prose = "A grand hall." }
`

func TestLoad_MinimalGame(t *testing.T) {
	g, err := Load(writeGame(t, map[string]string{"game.lua": minimalGame}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if g.Title != "Minimal" {
		t.Errorf("Title = %q, want %q", g.Title, "Minimal")
	}
	w := g.World
	hall, ok := w.LookupID("hall")
	if !ok {
		t.Fatal("room 'hall' not found")
	}
	if w.Here() != hall {
		t.Errorf("expected player in hall, here = %d", w.Here())
	}
	if !w.HasFlag(w.PlayerID(), flags.Seen(hall)) {
		t.Error("expected start room to be seen")
	}
	if text, _ := w.Prose(hall, types.ProseRoom); text != "A grand hall." {
		t.Errorf("hall prose = %q", text)
	}
}

func TestLoad_Trail(t *testing.T) {
	g, err := Load(trailDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.Title != scenario.Title {
		t.Errorf("Title = %q, want %q", g.Title, scenario.Title)
	}
	if len(g.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", g.Warnings)
	}

	w := g.World
	for _, tag := range []string{"clearing", "trail", "bridge", "stream", "note", "rule-story-1", "fairy-godmother-rule"} {
		if _, ok := w.LookupID(tag); !ok {
			t.Errorf("missing %q", tag)
		}
	}
	stream, _ := w.LookupID("stream")
	if !w.IsScenery(stream) {
		t.Error("expected stream to be scenery")
	}
	if len(w.Rules()) != 2 {
		t.Errorf("expected 2 rules, got %d", len(w.Rules()))
	}
}

// TestLoad_TrailPlaysLikeBuiltIn runs the same commands against the Lua and
// Go versions of the demo and expects identical transcripts.
func TestLoad_TrailPlaysLikeBuiltIn(t *testing.T) {
	g, err := Load(trailDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	lua := engine.New(g.World, nil)
	builtin := engine.New(scenario.Build(), nil)

	if got, want := strings.Join(lua.Start(), "\n"), strings.Join(builtin.Start(), "\n"); got != want {
		t.Errorf("Start:\n got %q\nwant %q", got, want)
	}

	script := []string{
		"x me", "read note", "get note", "read note", "x note", "e", "n",
		"e", "x stream", "get stream", "wash hands", "x me", "w", "i",
		"drop note", "look", "quit",
	}
	for _, cmd := range script {
		got := lua.Step(cmd)
		want := builtin.Step(cmd)
		if strings.Join(got.Output, "\n") != strings.Join(want.Output, "\n") {
			t.Errorf("Step(%q):\n got %q\nwant %q", cmd, got.Output, want.Output)
		}
		if strings.Join(got.Fired, ",") != strings.Join(want.Fired, ",") {
			t.Errorf("Step(%q): fired %v, want %v", cmd, got.Fired, want.Fired)
		}
		if got.Failed != want.Failed || got.Quit != want.Quit {
			t.Errorf("Step(%q): failed/quit = %v/%v, want %v/%v",
				cmd, got.Failed, got.Quit, want.Failed, want.Quit)
		}
	}
}

func TestLoad_HookConditions(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": minimalGame,
		"things.lua": `
			Thing "bell" {
				location = "hall",
				on = {
					get = {
						when = { Not(HasFlag("bell", "seen:hall")) },
						actions = { Print("Ding."), SetFlag("bell", "seen:hall") },
					},
				},
			}
		`,
	})
	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	e := engine.New(g.World, nil)
	result := e.Step("get bell")
	if len(result.Output) != 2 || result.Output[1] != "Ding." {
		t.Errorf("expected hook output, got %v", result.Output)
	}
	e.Step("drop bell")
	result = e.Step("get bell")
	if len(result.Output) != 1 {
		t.Errorf("expected hook to stay quiet, got %v", result.Output)
	}
}

func TestLoad_SwapFromLimbo(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": minimalGame,
		"things.lua": `
			Thing "egg" { location = "hall" }
			Thing "chick" {}
			Rule "hatch" { once = true, when = { ClockIs(1) }, actions = { Swap("egg", "chick"), Print("Crack!") } }
		`,
	})
	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertContains(t, g.Warnings, `thing "chick" has no location`)

	e := engine.New(g.World, nil)
	e.Step("look")
	result := e.Step("look")
	if len(result.Fired) != 1 || result.Fired[0] != "hatch" {
		t.Fatalf("expected hatch to fire, got %v", result.Fired)
	}

	w := g.World
	egg, _ := w.LookupID("egg")
	chick, _ := w.LookupID("chick")
	if w.Loc(chick) != w.Here() || w.Loc(egg) != types.Limbo {
		t.Errorf("expected chick here and egg in limbo, got %d/%d", w.Loc(chick), w.Loc(egg))
	}
}

func TestLoad_ContainerLocation(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": minimalGame,
		"things.lua": `
			Thing "coin" { location = "chest" }
			Thing "chest" { location = "hall", container = true }
			Thing "hat" { location = "self" }
		`,
	})
	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w := g.World
	coin, _ := w.LookupID("coin")
	chest, _ := w.LookupID("chest")
	hat, _ := w.LookupID("hat")
	if w.Loc(coin) != chest {
		t.Errorf("expected coin in chest")
	}
	if w.Loc(hat) != w.PlayerID() {
		t.Errorf("expected hat carried")
	}
}

func TestLoad_InvalidRefs_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": `
			Game { title = "Broken", start = "attic" }
			Room "hall" {}
			Link("hall", "north", "south", "garden")
		`,
	})
	_, err := Load(dir)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	assertContains(t, ve.Errors, `start room "attic"`)
	assertContains(t, ve.Errors, `undefined room "garden"`)
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `Game { title = `})

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
}

func TestLoad_NoGameDef_Fails(t *testing.T) {
	dir := writeGame(t, map[string]string{"rooms.lua": `Room "hall" {}`})

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for missing Game{} definition")
	}
	if !strings.Contains(err.Error(), "no Game{} definition") {
		t.Errorf("error = %q, expected 'no Game{} definition'", err.Error())
	}
}

func TestLoad_NoLuaFiles_Fails(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for an empty directory")
	}
}

func TestLoad_MissingDir_Fails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestLoad_SandboxEnforced(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	for _, src := range []string{
		`os.execute("echo pwned")`,
		`io.open("/etc/passwd")`,
		`dofile("x.lua")`,
		`math.randomseed(1)`,
	} {
		if err := L.DoString(src); err == nil {
			t.Errorf("expected sandbox to block %s", src)
		}
	}
}

func TestLoad_FileOrdering(t *testing.T) {
	// a.lua declares a room before game.lua would be run alphabetically;
	// game.lua still runs first.
	dir := writeGame(t, map[string]string{
		"a.lua":    `Room "hall" { name = "Hall" }`,
		"game.lua": `Game { title = "Order", start = "hall" }`,
		"z.lua":    `Room "yard" {}`,
	})
	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	hall, _ := g.World.LookupID("hall")
	yard, _ := g.World.LookupID("yard")
	if hall >= yard {
		t.Errorf("expected hall (a.lua) before yard (z.lua), got %d, %d", hall, yard)
	}
}
