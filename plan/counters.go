// Package plan implements the inlining planner of spec §4.2-§4.5:
// predicate-occurrence counters, the admissibility oracle, the cycle
// breaker, and the multiplier guard. It is grounded directly on
// mk_rule_inliner's count_pred_occurrences/inlining_allowed/
// forbid_preds_from_cycles/forbid_multiple_multipliers in
// dl_mk_rule_inliner.cpp.
package plan

import "dlinline/rule"

// Counters is the planner state of spec §3 populated by Count.
type Counters struct {
	HeadCount             map[rule.PredicateID]int
	HeadNonEmptyTailCount map[rule.PredicateID]int
	TailCount             map[rule.PredicateID]int
	HasNeg                map[rule.PredicateID]bool
}

// Count runs the single pass of spec §4.2 over rules, populating every
// counter of §3 except preds_with_facts (supplied separately by a
// rule.RelationStore).
func Count(rules []*rule.Rule) *Counters {
	c := &Counters{
		HeadCount:             map[rule.PredicateID]int{},
		HeadNonEmptyTailCount: map[rule.PredicateID]int{},
		TailCount:             map[rule.PredicateID]int{},
		HasNeg:                map[rule.PredicateID]bool{},
	}
	for _, r := range rules {
		head := r.Pred()
		c.HeadCount[head]++
		if len(r.Tail) > 0 {
			c.HeadNonEmptyTailCount[head]++
		}
		n := r.UninterpretedTailSize()
		for i := 0; i < n; i++ {
			a := r.TailAtom(i)
			if a.Negated {
				c.HasNeg[a.Pred()] = true
				continue
			}
			c.TailCount[a.Pred()]++
		}
	}
	return c
}
