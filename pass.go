package dlinline

import (
	"dlinline/config"
	"dlinline/convert"
	"dlinline/engine"
	"dlinline/internal/dllog"
	"dlinline/manager"
	"dlinline/rule"
)

// Pass wires a rule manager, a stratifier, and a configuration into a
// single reusable inlining pass (spec §6 "Invocation").
type Pass struct {
	eng *engine.Engine
}

// New builds a Pass. facts and outputs are forwarded to the planner on
// every Run call; simplifier may be nil to disable interpreted-tail
// satisfiability checking (every resolved rule is then assumed
// satisfiable). log may be nil.
func New(facts rule.RelationStore, outputs map[rule.PredicateID]bool, simplifier manager.Simplifier, log dllog.Logger, opts ...config.Option) *Pass {
	return &Pass{
		eng: &engine.Engine{
			Facts:      facts,
			Outputs:    outputs,
			Manager:    manager.New(simplifier),
			Config:     config.New(opts...),
			Stratifier: rule.TarjanStratifier{},
			Log:        log,
		},
	}
}

// Run applies the pass to source once, recording resolution and deletion
// events into mc and pc (either may be nil). It returns (nil, false, nil)
// when the pass makes no change, mirroring spec §6's "returning ∅ signals
// no change; the host keeps the original."
func (p *Pass) Run(source *rule.Set, mc *convert.ModelConverter, pc *convert.Proof) (*rule.Set, bool, error) {
	return p.eng.Run(source, mc, pc)
}

// Idempotent reports whether a second Run over the pass's own output on
// before makes no further change.
func (p *Pass) Idempotent(before *rule.Set) (bool, error) {
	return engine.Idempotent(p.eng, before)
}
