package engine

import (
	"dlinline/config"
	"dlinline/convert"
	"dlinline/internal/dllog"
	"dlinline/manager"
	"dlinline/plan"
	"dlinline/rule"
)

// Engine wires together the planner and the three rewrite passes into the
// single transformation of spec §6: bulk-inline every admissible
// predicate, run one eager pass over what's left, then fold linear call
// chains. Grounded on mk_rule_inliner::operator().
type Engine struct {
	// Facts and Outputs are forwarded to the planner and consulted
	// directly by the eager and linear passes (spec §4.3, §4.7, §4.8).
	Facts   rule.RelationStore
	Outputs map[rule.PredicateID]bool

	Manager    manager.RuleManager
	Config     *config.Config
	Stratifier rule.Stratifier
	Log        dllog.Logger
}

// Run applies the transformation to source, recording every resolution
// and deletion into mc and pc (either may be nil). It returns (nil, false,
// nil) whenever the pass leaves the rule set unchanged — including the
// empty-input case — mirroring operator()'s "nothing to do" short-circuit
// (spec §6, §8 invariant 1).
func (e *Engine) Run(source *rule.Set, mc *convert.ModelConverter, pc *convert.Proof) (*rule.Set, bool, error) {
	if source.Len() == 0 {
		return nil, false, nil
	}

	cfg := e.Config
	if cfg == nil {
		cfg = config.New()
	}
	strat := e.Stratifier
	if strat == nil {
		strat = rule.TarjanStratifier{}
	}
	log := e.Log
	if log == nil {
		log = dllog.Nop()
	}

	planner := &plan.Planner{Facts: e.Facts, Outputs: e.Outputs, Stratifier: strat, Log: log}
	candidate, admiss, err := planner.Plan(source)
	if err != nil {
		return nil, false, err
	}

	inlined, err := Bulk(candidate, e.Manager, cfg, mc, pc)
	if err != nil {
		return nil, false, err
	}

	result, somethingDone, err := Finalize(source, inlined, admiss, e.Manager, cfg, mc, pc)
	if err != nil {
		return nil, false, err
	}
	if err := result.Close(strat); err != nil {
		return nil, false, err
	}
	log.Debugf("engine: bulk inlining left %d rules", result.Len())

	eagerRes, eagerChanged, err := EagerInline(result, e.Facts, e.Manager, cfg, mc, pc)
	if err != nil {
		return nil, false, err
	}
	if eagerChanged {
		somethingDone = true
		result = eagerRes
		if err := result.Close(strat); err != nil {
			return nil, false, err
		}
		log.Debugf("engine: eager inlining left %d rules", result.Len())
	}

	if cfg.InlineLinear {
		linRes, linChanged, err := LinearInline(result, e.Outputs, e.Facts, e.Manager, cfg, mc, pc)
		if err != nil {
			return nil, false, err
		}
		if linChanged {
			somethingDone = true
			result = linRes
			log.Debugf("engine: linear inlining left %d rules", result.Len())
		}
	}

	if !somethingDone {
		return nil, false, nil
	}
	return result, true, nil
}

// Idempotent reports whether running the engine a second time over its
// own output produces no further change, the fixpoint property spec §7
// asks be checkable rather than merely assumed.
func Idempotent(e *Engine, before *rule.Set) (bool, error) {
	after, changed, err := e.Run(before, nil, nil)
	if err != nil {
		return false, err
	}
	if !changed {
		return true, nil
	}
	_, changedAgain, err := e.Run(after, nil, nil)
	if err != nil {
		return false, err
	}
	return !changedAgain, nil
}
