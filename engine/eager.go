package engine

import (
	"dlinline/config"
	"dlinline/convert"
	"dlinline/manager"
	"dlinline/rule"
	"dlinline/term"
	"dlinline/unify"
)

// isOrientedRewriter reports whether candidate is safe to use as a
// rewrite rule during eager inlining: every positive tail predicate in the
// same stratum as its head must have a smaller arity than the head, or the
// same arity and a smaller predicate ID; tail predicates in other strata
// are not restricted (spec §4.7 "Termination guard"). Grounded on
// mk_rule_inliner::is_oriented_rewriter.
func isOrientedRewriter(candidate *rule.Rule, strat *rule.Stratification) bool {
	headPred := candidate.Pred()
	headStratum := strat.StratumOf(headPred)
	headArity := candidate.Head.Arity()

	for _, i := range candidate.PositiveTailIndices() {
		atom := candidate.TailAtom(i)
		pred := atom.Pred()
		if strat.StratumOf(pred) != headStratum {
			continue
		}
		if atom.Arity() > headArity || (atom.Arity() == headArity && pred >= headPred) {
			return false
		}
	}
	return true
}

// eagerStep runs one round of spec §4.7's rewrite search over r's tail: it
// looks, left to right, for a tail atom whose predicate has exactly one
// unifying candidate rule in rules that is also an oriented rewriter, and
// resolves it. It returns (nil, true) when r is found unsatisfiable
// (caller must delete r), (rule, true) when a resolution was applied, and
// (r, false) when nothing in the tail qualifies.
func eagerStep(r *rule.Rule, rules *rule.Set, strat *rule.Stratification, facts rule.RelationStore, mgr manager.RuleManager, cfg *config.Config, mc *convert.ModelConverter, pc *convert.Proof) (*rule.Rule, bool) {
	headPred := r.Pred()

tailLoop:
	for _, ti := range r.PositiveTailIndices() {
		atom := r.TailAtom(ti)
		pred := atom.Pred()
		if pred == headPred || facts.HasFacts(pred) {
			continue
		}

		predRules := rules.RulesFor(pred)
		var candidate *rule.Rule
		ambiguous := false
		switch len(predRules) {
		case 0:
			// candidate stays nil: no defining rule at all.
		case 1:
			candidate = predRules[0]
		default:
			for _, pr := range predRules {
				s := term.NewSubst()
				if !term.UnifyApps(atom.App, 0, pr.Head.App, 1, s) {
					continue
				}
				if candidate != nil {
					ambiguous = true
					break
				}
				candidate = pr
			}
		}

		if ambiguous {
			continue tailLoop
		}
		if candidate == nil {
			// None of pred's rules unify with this call: unsatisfiable.
			return nil, true
		}
		if !isOrientedRewriter(candidate, strat) {
			continue tailLoop
		}
		if candidate.Quantified {
			continue tailLoop
		}

		res, witness, ok := unify.TryInline(r, ti, candidate, mgr, cfg.FixUnboundVars)
		if !ok {
			return nil, true
		}
		if mc != nil {
			mc.RecordResolve(witness, res)
		}
		if pc != nil {
			pc.RecordResolve(witness, res)
		}
		return res, true
	}
	return r, false
}

// EagerInline runs spec §4.7 to a per-rule fixpoint over every rule in
// rules, driving each rule through eagerStep until it stops changing or is
// deleted as unsatisfiable. Grounded on
// mk_rule_inliner::do_eager_inlining.
func EagerInline(rules *rule.Set, facts rule.RelationStore, mgr manager.RuleManager, cfg *config.Config, mc *convert.ModelConverter, pc *convert.Proof) (*rule.Set, bool, error) {
	strat, err := rules.Stratification()
	if err != nil {
		return nil, false, err
	}

	res := rule.NewSet()
	somethingDone := false

	for _, r := range rules.Rules() {
		cur := r
		for {
			next, acted := eagerStep(cur, rules, strat, facts, mgr, cfg, mc, pc)
			if !acted {
				break
			}
			somethingDone = true
			if next == nil {
				if mc != nil {
					mc.RecordDelete(cur)
				}
				if pc != nil {
					pc.RecordDelete(cur, "unsatisfiable during eager inlining")
				}
				cur = nil
				break
			}
			cur = next
		}
		if cur == nil {
			continue
		}
		res.Add(cur)
	}

	if !somethingDone {
		return rules, false, nil
	}
	return res, true, nil
}
