package plan

import "dlinline/rule"

// ForbidMultipleMultipliers implements the two-phase walk of spec §4.5,
// grounded on mk_rule_inliner::forbid_multiple_multipliers: first over
// candidate's (already acyclic, singleton-stratum) admissible rules, then
// over orig's non-admissible rules. It mutates a.Counters.HeadCount in
// place for predicates promoted to "multi-head" (spec §9 open question (a):
// this in-place update is an intentional over-estimate, not refined here).
// Returns whether anything new was forbidden.
func ForbidMultipleMultipliers(orig, candidate *rule.Set, a *Admissibility) bool {
	forbidden := false

	st, err := candidate.Stratification()
	if err != nil {
		return false
	}

perPredicate:
	for _, s := range st.Strata {
		pred := s.Members[0]
		isMultiHead := a.Counters.HeadCount[pred] > 1
		isMultiOccurrence := a.Counters.TailCount[pred] > 1

		for _, r := range candidate.RulesFor(pred) {
			for _, ti := range r.PositiveTailIndices() {
				tailPred := r.TailAtom(ti).Pred()
				if !a.Allowed(tailPred) {
					continue
				}
				tailHeadCount := a.Counters.HeadCount[tailPred]
				if tailHeadCount <= 1 {
					continue
				}
				switch {
				case isMultiHead:
					a.Forbidden[pred] = true
					forbidden = true
					continue perPredicate
				case isMultiOccurrence:
					a.Forbidden[tailPred] = true
					forbidden = true
				default:
					isMultiHead = true
					a.Counters.HeadCount[pred] *= tailHeadCount
				}
			}
		}
	}

	for _, r := range orig.Rules() {
		head := r.Pred()
		if a.Allowed(head) {
			continue // already processed as part of the admissible set above
		}
		hasMultiHead := false
		for _, ti := range r.PositiveTailIndices() {
			pred := r.TailAtom(ti).Pred()
			if !a.Allowed(pred) || a.Counters.HeadCount[pred] <= 1 {
				continue
			}
			if hasMultiHead {
				a.Forbidden[pred] = true
				forbidden = true
			} else {
				hasMultiHead = true
			}
		}
	}

	return forbidden
}
