package rules

import (
	"go.uber.org/zap"

	"github.com/nathoo/thicket/engine/effects"
	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// Outcome is what one pass of the rule engine did.
type Outcome struct {
	Fired   []string       // rule tags, in firing order
	Actions []types.Action // actions executed, in order
	Output  []string
}

// Run evaluates every rule once against the current world.
//
// The set of rules is snapshotted before evaluation starts, and rules are
// visited in authoring order. A rule whose predicate holds runs its actions
// immediately, so later rules in the same pass see the mutated world.
// Once-only rules are marked fired on the live record.
func Run(w *world.World, log *zap.Logger) Outcome {
	var out Outcome

	for _, id := range w.Rules() {
		rule := w.Rule(id)
		if rule.Fired {
			continue
		}
		if !rule.Predicate(w) {
			continue
		}

		log.Debug("rule fired",
			zap.String("rule", w.Tag(id)),
			zap.Int("clock", w.Clock()),
			zap.Int("actions", len(rule.Actions)))

		out.Fired = append(out.Fired, w.Tag(id))
		out.Actions = append(out.Actions, rule.Actions...)
		out.Output = append(out.Output, effects.Apply(w, rule.Actions)...)

		if rule.OnceOnly {
			rule.Fired = true
		}
	}

	return out
}
