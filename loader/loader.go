package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/thicket/engine/world"
)

// Game is a loaded scenario, ready to hand to the engine.
type Game struct {
	World    *world.World
	Title    string
	Author   string
	Version  string
	Intro    string
	Warnings []string
}

// collector accumulates Lua declarations during file execution.
type collector struct {
	game   *lua.LTable
	rooms  []rawDecl
	things []rawDecl
	links  []LinkDef
	exits  []ExitDef
	rules  []rawDecl
}

// rawDecl holds a tagged declaration table before compilation.
type rawDecl struct {
	tag   string
	table *lua.LTable
}

// Load reads all .lua files from dir, compiles them into scenario
// definitions, validates references, and builds the world. The Lua VM is
// discarded after loading.
func Load(dir string) (*Game, error) {
	// Discover .lua files.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	// Execute each file.
	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	// Compile.
	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	// Validate.
	warnings, err := validate(defs)
	if err != nil {
		return nil, err
	}

	return &Game{
		World:    build(defs),
		Title:    defs.Game.Title,
		Author:   defs.Game.Author,
		Version:  defs.Game.Version,
		Intro:    defs.Game.Intro,
		Warnings: warnings,
	}, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
