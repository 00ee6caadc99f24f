package rule

import (
	"testing"

	"dlinline/term"
)

func mkRule(head Predicate, tailPreds ...Predicate) *Rule {
	x := term.Var("X", term.SortInt)
	r := &Rule{Head: NewAtom(head, x)}
	for _, tp := range tailPreds {
		r.Tail = append(r.Tail, UninterpretedElem(NewAtom(tp, x)))
	}
	return r
}

func TestSetRulesForAndPredicates(t *testing.T) {
	p := Predicate{ID: 1, Name: "P", Arity: 1}
	q := Predicate{ID: 2, Name: "Q", Arity: 1}

	s := NewSet()
	s.Add(mkRule(p, q))
	s.Add(mkRule(p))
	s.Add(mkRule(q))

	if got := len(s.RulesFor(p.ID)); got != 2 {
		t.Errorf("RulesFor(P) len = %d, want 2", got)
	}
	preds := s.Predicates()
	if len(preds) != 2 || preds[0] != p.ID || preds[1] != q.ID {
		t.Errorf("Predicates() = %v, want [P, Q] in first-occurrence order", preds)
	}
}

func TestSetCloseRequiredBeforeStratification(t *testing.T) {
	p := Predicate{ID: 1, Name: "P", Arity: 1}
	s := NewSet()
	s.Add(mkRule(p))

	if _, err := s.Stratification(); err != ErrNotClosed {
		t.Fatalf("Stratification() before Close() = %v, want ErrNotClosed", err)
	}
	if err := s.Close(TarjanStratifier{}); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := s.Stratification(); err != nil {
		t.Fatalf("Stratification() after Close() error: %v", err)
	}
}

func TestSetAddInvalidatesClose(t *testing.T) {
	p := Predicate{ID: 1, Name: "P", Arity: 1}
	q := Predicate{ID: 2, Name: "Q", Arity: 1}
	s := NewSet()
	s.Add(mkRule(p))
	if err := s.Close(TarjanStratifier{}); err != nil {
		t.Fatal(err)
	}
	s.Add(mkRule(q))
	if s.IsClosed() {
		t.Fatal("Add should invalidate the cached stratification")
	}
}
