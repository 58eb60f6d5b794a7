// Package parser converts command strings into Intent structs.
// Intentionally dumb: exact tokens only, no articles or prepositions.
package parser

import (
	"strings"

	"github.com/nathoo/thicket/types"
)

var directionExpansions = map[string]types.Dir{
	"n": types.North,
	"s": types.South,
	"e": types.East,
	"w": types.West,
	"u": types.Up,
	"d": types.Down,
}

// Full direction names that are standalone shortcuts for "go <dir>".
var directionNames = map[string]types.Dir{
	"north": types.North,
	"south": types.South,
	"east":  types.East,
	"west":  types.West,
	"up":    types.Up,
	"down":  types.Down,
	"in":    types.In,
	"out":   types.Out,
}

var verbAliases = map[string]string{
	"x":      "examine",
	"l":      "look",
	"i":      "inventory",
	"inv":    "inventory",
	"invent": "inventory",
	"take":   "get",
	"walk":   "go",
	"exit":   "quit",
	"q":      "quit",
	"?":      "help",
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return types.Intent{}
	}

	// Direction shortcut: bare "n", "south", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := Direction(words[0]); ok {
			return types.Intent{Verb: "go", Object: string(dir)}
		}
	}

	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	return types.Intent{
		Verb:   verb,
		Object: strings.Join(words[1:], " "),
	}
}

// Direction maps a direction word or abbreviation to a Dir.
func Direction(word string) (types.Dir, bool) {
	if dir, ok := directionExpansions[word]; ok {
		return dir, true
	}
	dir, ok := directionNames[word]
	return dir, ok
}
