package plan

import "dlinline/rule"

// BreakCycles closes admissible (computing its stratification) and, for
// every non-trivial stratum, forbids that stratum's first member predicate
// in stratifier iteration order (spec §4.4: "the first one in iteration
// order suffices - determinism requires a stable order"). It reports
// whether it forbade anything new.
func BreakCycles(admissible *rule.Set, strat rule.Stratifier, a *Admissibility) (bool, error) {
	if err := admissible.Close(strat); err != nil {
		return false, err
	}
	st, err := admissible.Stratification()
	if err != nil {
		return false, err
	}

	forbadeSomething := false
	for _, s := range st.Strata {
		if s.Trivial() {
			continue
		}
		rep := s.Members[0]
		if !a.Forbidden[rep] {
			a.Forbidden[rep] = true
			forbadeSomething = true
		}
	}
	return forbadeSomething, nil
}

// RunCycleBreaker repeatedly rebuilds the admissible sub-rule-set of orig
// and breaks cycles until a full pass forbids nothing new, returning the
// final acyclic admissible sub-rule-set, already closed (spec §4.4, §9
// "Stratifier dependence"). Termination follows because Forbidden only
// grows and orig is finite.
func RunCycleBreaker(orig *rule.Set, a *Admissibility, strat rule.Stratifier) (*rule.Set, error) {
	candidate := a.AllowedSet(orig)
	for {
		forbade, err := BreakCycles(candidate, strat, a)
		if err != nil {
			return nil, err
		}
		if !forbade {
			return candidate, nil
		}
		candidate = a.AllowedSet(orig)
	}
}
