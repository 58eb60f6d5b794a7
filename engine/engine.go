// Package engine provides the Step() orchestrator that wires together
// parsing, resolution, commands, hooks and rules into a single turn.
package engine

import (
	"go.uber.org/zap"

	"github.com/nathoo/thicket/engine/parser"
	"github.com/nathoo/thicket/engine/rules"
	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// Engine owns one world and drives it turn by turn.
type Engine struct {
	World *world.World
	Log   *zap.Logger
}

// New creates an engine for w and ends its build phase. A nil logger
// discards everything.
func New(w *world.World, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	w.Seal()
	return &Engine{World: w, Log: log}
}

// Start describes the starting location. No turn passes.
func (e *Engine) Start() []string {
	return e.describe(e.World.Here(), full)
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 1. Parse input.
	intent := parser.Parse(input)

	// 2. Empty input costs nothing.
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// 3. Quit unwinds the driver's loop; the world is left as it is.
	if intent.Verb == "quit" {
		result.Output = append(result.Output, "Bye, then.")
		result.Quit = true
		return result
	}

	// 4. Run the command. Rejected commands still use up the turn.
	if err := e.command(intent, &result); err != nil {
		e.Log.Debug("command failed",
			zap.String("verb", intent.Verb),
			zap.String("object", intent.Object),
			zap.Error(err))
		result.Failed = true
		result.Output = append(result.Output, err.Error())
	}

	// 5. Rules react to whatever the command did.
	out := rules.Run(e.World, e.Log)
	result.Fired = append(result.Fired, out.Fired...)
	result.Actions = append(result.Actions, out.Actions...)
	result.Output = append(result.Output, out.Output...)

	// 6. End of turn.
	e.World.Tick()

	return result
}

// dispatch fires the hook for (id, ev), if any, and records it.
func (e *Engine) dispatch(r *types.Result, id types.ID, ev types.EventKind) {
	text, ok := e.World.Dispatch(id, ev)
	if !ok {
		return
	}
	e.Log.Debug("hook dispatched",
		zap.String("entity", e.World.Tag(id)),
		zap.String("event", string(ev)))
	r.Events = append(r.Events, types.Event{Kind: ev, Entity: id})
	if text != "" {
		r.Output = append(r.Output, text)
	}
}
