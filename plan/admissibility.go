package plan

import "dlinline/rule"

// Admissibility implements the oracle of spec §4.3: a predicate is
// inlinable iff every hard (soundness) condition holds and at least one
// soft (blowup-control) condition holds.
type Admissibility struct {
	Counters  *Counters
	Facts     rule.RelationStore
	Outputs   map[rule.PredicateID]bool
	Forbidden map[rule.PredicateID]bool
}

// NewAdmissibility returns an oracle with an empty Forbidden set.
func NewAdmissibility(c *Counters, facts rule.RelationStore, outputs map[rule.PredicateID]bool) *Admissibility {
	return &Admissibility{
		Counters:  c,
		Facts:     facts,
		Outputs:   outputs,
		Forbidden: map[rule.PredicateID]bool{},
	}
}

// Allowed reports whether p may be inlined (spec §4.3).
func (a *Admissibility) Allowed(p rule.PredicateID) bool {
	if a.Outputs[p] || a.Facts.HasFacts(p) || a.Counters.HasNeg[p] || a.Forbidden[p] {
		return false
	}
	return a.Counters.HeadCount[p] <= 1 ||
		(a.Counters.TailCount[p] <= 1 && a.Counters.HeadCount[p] <= 4)
}

// AllowedSet returns the sub-rule-set of orig whose rules all have an
// admissible head predicate (spec §4.4 create_allowed_rule_set).
func (a *Admissibility) AllowedSet(orig *rule.Set) *rule.Set {
	out := rule.NewSet()
	for _, r := range orig.Rules() {
		if a.Allowed(r.Pred()) {
			out.Add(r)
		}
	}
	return out
}
