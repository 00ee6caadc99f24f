// Package engine implements the three-stage rewrite of spec §4.6-§4.8 —
// bulk inlining of the planner's admissible predicates, a one-shot eager
// pass, and linear chain compression — plus the top-level Run entry point
// of spec §6. It is grounded on mk_rule_inliner::plan_inlining/
// transform_rule/transform_rules/do_eager_inlining/inline_linear/operator()
// in dl_mk_rule_inliner.cpp.
package engine

import (
	"dlinline/config"
	"dlinline/convert"
	"dlinline/manager"
	"dlinline/plan"
	"dlinline/rule"
	"dlinline/unify"
)

// Bulk resolves every rule headed by an admissible predicate, bottom-up in
// stratum order, against the already-resolved definitions of the
// predicates it calls (spec §4.6 "Planning output"). Because candidate is
// acyclic and its strata are singletons (plan.Planner guarantees this),
// every predicate q a rule calls has already had all of its own rules
// placed into the returned set by the time that rule is processed.
func Bulk(candidate *rule.Set, mgr manager.RuleManager, cfg *config.Config, mc *convert.ModelConverter, pc *convert.Proof) (*rule.Set, error) {
	strat, err := candidate.Stratification()
	if err != nil {
		return nil, err
	}

	inlined := rule.NewSet()
	for _, s := range strat.Strata {
		pred := s.Members[0]
		for _, r0 := range candidate.RulesFor(pred) {
			transformRule(r0, inlined, inlined.RulesFor, mgr, cfg, mc, pc)
		}
	}
	return inlined, nil
}

// Finalize builds the pass's output rule set: rules whose head predicate is
// admissible are dropped (their bodies live only in inlined, per Bulk), and
// every other original rule is run through transformRule against inlined's
// fully-built definitions (spec §4.6 "Finalization").
func Finalize(orig, inlined *rule.Set, admiss *plan.Admissibility, mgr manager.RuleManager, cfg *config.Config, mc *convert.ModelConverter, pc *convert.Proof) (*rule.Set, bool, error) {
	out := rule.NewSet()
	somethingDone := false
	for _, r := range orig.Rules() {
		if admiss.Allowed(r.Pred()) {
			continue
		}
		if transformRule(r, out, inlined.RulesFor, mgr, cfg, mc, pc) {
			somethingDone = true
		}
	}
	return out, somethingDone, nil
}

// transformRule implements spec §4.6's worklist: pop a rule, find its first
// positive tail atom whose predicate has definitions available via defs,
// and replace it by every possible resolution, pushing results back onto
// the worklist. A rule with nothing left to inline is appended to out
// unchanged; a rule with a quantified interpreted tail is dropped (spec
// §4.1 "Failure modes", §4.6).
func transformRule(r0 *rule.Rule, out *rule.Set, defs func(rule.PredicateID) []*rule.Rule, mgr manager.RuleManager, cfg *config.Config, mc *convert.ModelConverter, pc *convert.Proof) bool {
	todo := []*rule.Rule{r0}
	modified := false

	for len(todo) > 0 {
		r := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		if r.Quantified {
			if pc != nil {
				pc.RecordDelete(r, "quantified interpreted tail")
			}
			continue
		}

		indices := r.PositiveTailIndices()
		i := -1
		for _, ti := range indices {
			if len(defs(r.TailAtom(ti).Pred())) > 0 {
				i = ti
				break
			}
		}
		if i == -1 {
			out.Add(r)
			continue
		}
		modified = true

		pred := r.TailAtom(i).Pred()
		for _, src := range defs(pred) {
			res, witness, ok := unify.TryInline(r, i, src, mgr, cfg.FixUnboundVars)
			if !ok {
				continue
			}
			if mc != nil {
				mc.RecordResolve(witness, res)
			}
			if pc != nil {
				pc.RecordResolve(witness, res)
			}
			todo = append(todo, res)
		}
	}
	return modified
}
