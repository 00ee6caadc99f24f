package rule

import (
	"testing"

	"dlinline/term"
)

func TestTarjanStratifierAcyclicChain(t *testing.T) {
	p := Predicate{ID: 1, Name: "P", Arity: 1}
	q := Predicate{ID: 2, Name: "Q", Arity: 1}
	r := Predicate{ID: 3, Name: "R", Arity: 1}

	s := NewSet()
	s.Add(mkRule(p, q))
	s.Add(mkRule(q, r))
	s.Add(mkRule(r))

	if err := s.Close(TarjanStratifier{}); err != nil {
		t.Fatal(err)
	}
	strat, _ := s.Stratification()
	if len(strat.Strata) != 3 {
		t.Fatalf("expected 3 singleton strata, got %d", len(strat.Strata))
	}
	for _, st := range strat.Strata {
		if !st.Trivial() {
			t.Errorf("stratum %v should be trivial in an acyclic chain", st)
		}
	}
	// R must come before Q, which must come before P: R is depended-upon
	// by Q, Q by P, so both must finish (be emitted) before their
	// dependents (spec §3/§4.6 "topological order, leaves first").
	if strat.StratumOf(r.ID) >= strat.StratumOf(q.ID) {
		t.Errorf("R's stratum (%d) should precede Q's (%d)", strat.StratumOf(r.ID), strat.StratumOf(q.ID))
	}
	if strat.StratumOf(q.ID) >= strat.StratumOf(p.ID) {
		t.Errorf("Q's stratum (%d) should precede P's (%d)", strat.StratumOf(q.ID), strat.StratumOf(p.ID))
	}
}

func TestTarjanStratifierCycle(t *testing.T) {
	a := Predicate{ID: 1, Name: "A", Arity: 1}
	b := Predicate{ID: 2, Name: "B", Arity: 1}

	s := NewSet()
	s.Add(mkRule(a, b))
	s.Add(mkRule(b, a))

	if err := s.Close(TarjanStratifier{}); err != nil {
		t.Fatal(err)
	}
	strat, _ := s.Stratification()
	if len(strat.Strata) != 1 {
		t.Fatalf("expected a single non-trivial stratum, got %d strata", len(strat.Strata))
	}
	if strat.Strata[0].Trivial() {
		t.Error("A <-> B cycle should not be trivial")
	}
}

func TestTarjanStratifierMarksSelfRecursiveSingleton(t *testing.T) {
	p := Predicate{ID: 1, Name: "P", Arity: 1}

	s := NewSet()
	s.Add(mkRule(p, p))

	if err := s.Close(TarjanStratifier{}); err != nil {
		t.Fatal(err)
	}
	strat, _ := s.Stratification()
	if len(strat.Strata) != 1 {
		t.Fatalf("expected a single stratum, got %d", len(strat.Strata))
	}
	st := strat.Strata[0]
	if len(st.Members) != 1 {
		t.Fatalf("a self-recursive predicate forms a singleton SCC, got %v", st.Members)
	}
	if st.Trivial() {
		t.Error("a self-recursive predicate must not be reported trivial")
	}
}

func TestTarjanStratifierFindsPositiveEdgeAfterInterleavedNegation(t *testing.T) {
	p := Predicate{ID: 1, Name: "P", Arity: 1}
	a := Predicate{ID: 2, Name: "A", Arity: 1}
	b := Predicate{ID: 3, Name: "B", Arity: 1}
	x := term.Var("X", term.SortInt)

	negA := NewAtom(a, x)
	negA.Negated = true

	s := NewSet()
	s.Add(&Rule{Head: NewAtom(p, x), Tail: []TailElem{UninterpretedElem(negA), UninterpretedElem(NewAtom(b, x))}})
	s.Add(mkRule(a))
	s.Add(mkRule(b))

	if err := s.Close(TarjanStratifier{}); err != nil {
		t.Fatal(err)
	}
	strat, _ := s.Stratification()
	if strat.StratumOf(b.ID) >= strat.StratumOf(p.ID) {
		t.Errorf("P's positive call to B (past a leading negated A) must produce a dependency edge: B's stratum (%d) should precede P's (%d)", strat.StratumOf(b.ID), strat.StratumOf(p.ID))
	}
}

func TestTarjanStratifierIgnoresOutOfSetPredicates(t *testing.T) {
	p := Predicate{ID: 1, Name: "P", Arity: 1}
	fact := Predicate{ID: 2, Name: "Fact", Arity: 1}

	s := NewSet()
	// Fact has no rule of its own in this set; it must not become a
	// graph node or introduce a spurious edge.
	s.Add(mkRule(p, fact))

	if err := s.Close(TarjanStratifier{}); err != nil {
		t.Fatal(err)
	}
	strat, _ := s.Stratification()
	if len(strat.Strata) != 1 {
		t.Fatalf("expected 1 stratum (P only), got %d", len(strat.Strata))
	}
	if strat.StratumOf(fact.ID) != -1 {
		t.Error("Fact has no rules in this set and should have no stratum")
	}
}
