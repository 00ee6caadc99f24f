package plan

import (
	"dlinline/internal/dllog"
	"dlinline/rule"
)

// Planner runs the admissibility/cycle-breaking/multiplier stages of spec
// §4.2-§4.5 to produce the acyclic admissible sub-rule-set that
// engine.Bulk resolves bottom-up.
type Planner struct {
	// Facts reports which predicates are backed by ground extensions
	// (spec §3 preds_with_facts). Required.
	Facts rule.RelationStore
	// Outputs is the set of declared output predicates, never eliminated
	// (spec §4.3 hard condition, §8 invariant 2).
	Outputs map[rule.PredicateID]bool
	// Stratifier computes SCC decompositions; rule.TarjanStratifier{} if nil.
	Stratifier rule.Stratifier
	// Log receives Debug-level trace of forbid/admit decisions. A nil Log
	// degrades to dllog.Nop().
	Log dllog.Logger
}

// Plan runs spec §4.2 (counters), §4.4 (cycle breaking to fixpoint) and
// §4.5 (multiplier guard) over orig, returning the final admissible,
// closed, acyclic sub-rule-set and the admissibility oracle engine.Finalize
// needs to keep deciding admissibility of predicates outside the plan
// (spec §4.6's "predicate is admissible" checks during transform_rule).
func (p *Planner) Plan(orig *rule.Set) (*rule.Set, *Admissibility, error) {
	log := p.Log
	if log == nil {
		log = dllog.Nop()
	}
	strat := p.Stratifier
	if strat == nil {
		strat = rule.TarjanStratifier{}
	}

	counters := Count(orig.Rules())
	admiss := NewAdmissibility(counters, p.Facts, p.Outputs)

	candidate, err := RunCycleBreaker(orig, admiss, strat)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("plan: cycle breaker forbade %d predicates", len(admiss.Forbidden))

	if ForbidMultipleMultipliers(orig, candidate, admiss) {
		candidate = admiss.AllowedSet(orig)
		if err := candidate.Close(strat); err != nil {
			return nil, nil, err
		}
		log.Debugf("plan: multiplier guard forbade predicates, total forbidden now %d", len(admiss.Forbidden))
	}

	return candidate, admiss, nil
}
