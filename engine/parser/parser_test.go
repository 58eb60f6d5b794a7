package parser

import (
	"testing"

	"github.com/nathoo/thicket/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  types.Intent
	}{
		// Empty and whitespace.
		{"", types.Intent{}},
		{"   ", types.Intent{}},

		// Direction shortcuts.
		{"n", types.Intent{Verb: "go", Object: "north"}},
		{"e", types.Intent{Verb: "go", Object: "east"}},
		{"d", types.Intent{Verb: "go", Object: "down"}},
		{"west", types.Intent{Verb: "go", Object: "west"}},
		{"OUT", types.Intent{Verb: "go", Object: "out"}},

		// Explicit go.
		{"go east", types.Intent{Verb: "go", Object: "east"}},
		{"walk e", types.Intent{Verb: "go", Object: "e"}},

		// Aliases.
		{"x note", types.Intent{Verb: "examine", Object: "note"}},
		{"i", types.Intent{Verb: "inventory"}},
		{"invent", types.Intent{Verb: "inventory"}},
		{"take note", types.Intent{Verb: "get", Object: "note"}},
		{"l", types.Intent{Verb: "look"}},
		{"exit", types.Intent{Verb: "quit"}},

		// Multi-token objects stay intact.
		{"wash hands", types.Intent{Verb: "wash", Object: "hands"}},
		{"read  the   note", types.Intent{Verb: "read", Object: "the note"}},
		{"dump 3", types.Intent{Verb: "dump", Object: "3"}},

		// Case folding.
		{"Get NOTE", types.Intent{Verb: "get", Object: "note"}},
	}
	for _, tt := range tests {
		got := Parse(tt.input)
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		word string
		want types.Dir
		ok   bool
	}{
		{"n", types.North, true},
		{"north", types.North, true},
		{"u", types.Up, true},
		{"in", types.In, true},
		{"sideways", "", false},
	}
	for _, tt := range tests {
		got, ok := Direction(tt.word)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Direction(%q) = (%q, %v), want (%q, %v)", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}
