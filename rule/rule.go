package rule

import "dlinline/term"

// TailKind discriminates an uninterpreted predicate atom from an
// interpreted constraint in a rule's tail.
type TailKind int

const (
	Uninterpreted TailKind = iota
	Interpreted
)

// TailElem is one element of a rule's ordered tail: either an
// uninterpreted predicate atom or an interpreted constraint term.
type TailElem struct {
	Kind       TailKind
	Atom       Atom      // valid when Kind == Uninterpreted
	Constraint term.Term // valid when Kind == Interpreted
}

func UninterpretedElem(a Atom) TailElem { return TailElem{Kind: Uninterpreted, Atom: a} }
func InterpretedElem(t term.Term) TailElem {
	return TailElem{Kind: Interpreted, Constraint: t}
}

// Rule is a Horn clause: a head atom and an ordered tail whose
// uninterpreted-atom prefix precedes its interpreted-constraint suffix
// (spec §3 rule invariants). The head is always a positive uninterpreted
// atom; Head.Negated is always false for well-formed rules.
type Rule struct {
	// Head is always a positive uninterpreted atom (spec §3); the rule
	// manager rejects construction with a negated head.
	Head Atom
	Tail []TailElem

	// DerivedFrom is nil for rules present in the original input, and
	// points at the target rule a resolution step (§4.1) produced this
	// rule from otherwise. Used by the proof converter.
	DerivedFrom *Rule

	// Quantified caches whether any interpreted-tail element contains a
	// quantifier, computed once by the rule manager at construction time
	// (spec §4.1, §4.6 "Failure modes" — quantified rules are skipped
	// rather than resolved).
	Quantified bool
}

// Pred returns the rule's head predicate ID.
func (r Rule) Pred() PredicateID { return r.Head.Pred() }

// UninterpretedTailSize returns the length of the uninterpreted-atom
// prefix of the tail.
func (r Rule) UninterpretedTailSize() int {
	n := 0
	for _, e := range r.Tail {
		if e.Kind != Uninterpreted {
			break
		}
		n++
	}
	return n
}

// PositiveTailSize returns the count of positive uninterpreted tail atoms
// eligible as inlining targets (spec §3 "Negated positions never
// participate as inlining targets"). It is a count, not a prefix bound:
// nothing enforces positive-before-negated ordering within the
// uninterpreted prefix, so a positive atom may sit at any position up to
// UninterpretedTailSize()-1. Callers that need the eligible atoms
// themselves, not just how many there are, must use PositiveTailIndices
// or scan 0..UninterpretedTailSize() and check Atom.Negated per element —
// never loop 0..PositiveTailSize() and index with TailAtom(i).
func (r Rule) PositiveTailSize() int {
	n := 0
	for _, e := range r.Tail {
		if e.Kind != Uninterpreted {
			break
		}
		if !e.Atom.Negated {
			n++
		}
	}
	return n
}

// PositiveTailIndices returns, in tail order, the positions of the
// uninterpreted tail atoms eligible as inlining targets (spec §3
// "Negated positions never participate as inlining targets"). Unlike
// PositiveTailSize, these positions may be interleaved with negated
// atoms rather than forming a 0..n prefix.
func (r Rule) PositiveTailIndices() []int {
	n := r.UninterpretedTailSize()
	var out []int
	for i := 0; i < n; i++ {
		if !r.Tail[i].Atom.Negated {
			out = append(out, i)
		}
	}
	return out
}

// TailAtom returns the i-th uninterpreted tail atom.
func (r Rule) TailAtom(i int) Atom { return r.Tail[i].Atom }

// InterpretedTail returns the interpreted-constraint suffix as a flat
// slice of terms.
func (r Rule) InterpretedTail() []term.Term {
	var out []term.Term
	for _, e := range r.Tail {
		if e.Kind == Interpreted {
			out = append(out, e.Constraint)
		}
	}
	return out
}

// Vars returns the free variables of the whole rule (head and tail) in
// first-occurrence order.
func (r Rule) Vars() []term.Variable {
	seen := map[string]bool{}
	var out []term.Variable
	add := func(vs []term.Variable) {
		for _, v := range vs {
			if !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v)
			}
		}
	}
	add(r.Head.Vars())
	for _, e := range r.Tail {
		switch e.Kind {
		case Uninterpreted:
			add(e.Atom.Vars())
		case Interpreted:
			add(e.Constraint.Vars())
		}
	}
	return out
}

// String renders the rule in "Head(x) :- T1, T2." surface notation, used
// for trace logging and doc examples (spec §7 "Rule-set pretty-printing").
func (r Rule) String() string {
	s := r.Head.String()
	if len(r.Tail) == 0 {
		return s + "."
	}
	s += " :- "
	for i, e := range r.Tail {
		if i > 0 {
			s += ", "
		}
		switch e.Kind {
		case Uninterpreted:
			s += e.Atom.String()
		case Interpreted:
			s += e.Constraint.String()
		}
	}
	return s + "."
}
