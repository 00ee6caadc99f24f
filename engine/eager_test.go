package engine

import (
	"testing"

	"dlinline/config"
	"dlinline/manager"
	"dlinline/rule"
	"dlinline/term"
)

func closedSet(t *testing.T, rules ...*rule.Rule) *rule.Set {
	t.Helper()
	s := rule.NewSet()
	for _, r := range rules {
		s.Add(r)
	}
	if err := s.Close(rule.TarjanStratifier{}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEagerStepResolvesUniqueRewriter(t *testing.T) {
	p, q, r := pred(1, "P"), pred(2, "Q"), pred(3, "R")
	x := term.Var("X", term.SortInt)

	pRule := &rule.Rule{Head: rule.NewAtom(p, x), Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(q, x))}}
	qRule := &rule.Rule{Head: rule.NewAtom(q, x), Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(r, x))}}
	rules := closedSet(t, pRule, qRule)
	strat, _ := rules.Stratification()

	res, acted := eagerStep(pRule, rules, strat, rule.StaticRelationStore{}, manager.New(nil), config.New(), nil, nil)
	if !acted {
		t.Fatal("expected a resolution")
	}
	if res.UninterpretedTailSize() != 1 || res.TailAtom(0).Pred() != r.ID {
		t.Errorf("P should now call R, got %v", res)
	}
}

func TestEagerStepDeletesRuleWithNoDefiningRule(t *testing.T) {
	p, q := pred(1, "P"), pred(2, "Q")
	x := term.Var("X", term.SortInt)

	pRule := &rule.Rule{Head: rule.NewAtom(p, x), Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(q, x))}}
	rules := closedSet(t, pRule)
	strat, _ := rules.Stratification()

	res, acted := eagerStep(pRule, rules, strat, rule.StaticRelationStore{}, manager.New(nil), config.New(), nil, nil)
	if !acted || res != nil {
		t.Errorf("Q has no defining rule anywhere, P must be reported unsatisfiable, got res=%v acted=%v", res, acted)
	}
}

func TestEagerStepSkipsAmbiguousCallee(t *testing.T) {
	p, q := pred(1, "P"), pred(2, "Q")
	x := term.Var("X", term.SortInt)

	pRule := &rule.Rule{Head: rule.NewAtom(p, x), Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(q, x))}}
	qRule1 := &rule.Rule{Head: rule.NewAtom(q, x)}
	qRule2 := &rule.Rule{Head: rule.NewAtom(q, x)}
	rules := closedSet(t, pRule, qRule1, qRule2)
	strat, _ := rules.Stratification()

	res, acted := eagerStep(pRule, rules, strat, rule.StaticRelationStore{}, manager.New(nil), config.New(), nil, nil)
	if acted || res != pRule {
		t.Errorf("two candidate rules for Q is ambiguous, must leave P untouched, got res=%v acted=%v", res, acted)
	}
}

func TestEagerStepFindsRewriterPastLeadingNegation(t *testing.T) {
	p, a, b, r := pred(1, "P"), pred(2, "A"), pred(3, "B"), pred(4, "R")
	x := term.Var("X", term.SortInt)

	negA := rule.NewAtom(a, x)
	negA.Negated = true

	pRule := &rule.Rule{
		Head: rule.NewAtom(p, x),
		Tail: []rule.TailElem{rule.UninterpretedElem(negA), rule.UninterpretedElem(rule.NewAtom(b, x))},
	}
	aRule := &rule.Rule{Head: rule.NewAtom(a, x)}
	bRule := &rule.Rule{Head: rule.NewAtom(b, x), Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(r, x))}}
	rules := closedSet(t, pRule, aRule, bRule)
	strat, _ := rules.Stratification()

	res, acted := eagerStep(pRule, rules, strat, rule.StaticRelationStore{}, manager.New(nil), config.New(), nil, nil)
	if !acted {
		t.Fatal("expected B, past the leading negated A, to be resolved")
	}
	if res.UninterpretedTailSize() != 2 {
		t.Fatalf("expected the negated A to survive alongside R, got %v", res)
	}
	sawNegA, sawR := false, false
	for i := 0; i < res.UninterpretedTailSize(); i++ {
		atom := res.TailAtom(i)
		switch {
		case atom.Pred() == a.ID && atom.Negated:
			sawNegA = true
		case atom.Pred() == r.ID && !atom.Negated:
			sawR = true
		}
	}
	if !sawNegA || !sawR {
		t.Errorf("expected tail {¬A, R}, got %v", res)
	}
}

func TestEagerStepRejectsNonOrientedRewriter(t *testing.T) {
	// P's ID sorts after Q's, so a same-stratum, equal-arity call from Q
	// back into P fails the id-ordering half of the oriented-rewriter check.
	p, q := pred(2, "P"), pred(1, "Q")
	x := term.Var("X", term.SortInt)

	// Q's rule calls P back, in the same stratum, at greater-or-equal
	// arity: not a valid rewrite direction.
	pRule := &rule.Rule{Head: rule.NewAtom(p, x), Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(q, x))}}
	qRule := &rule.Rule{Head: rule.NewAtom(q, x), Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(p, x))}}
	rules := closedSet(t, pRule, qRule)
	strat, _ := rules.Stratification()

	res, acted := eagerStep(pRule, rules, strat, rule.StaticRelationStore{}, manager.New(nil), config.New(), nil, nil)
	if acted || res != pRule {
		t.Errorf("Q is not an oriented rewriter (cyclic call back into P's own stratum), must skip, got res=%v acted=%v", res, acted)
	}
}
