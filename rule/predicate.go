// Package rule implements the Horn-clause data model of spec §3: predicate
// atoms, rules, rule sets, and the stratification contract the cycle
// breaker and eager inliner depend on.
package rule

import "dlinline/term"

// PredicateID is the declaration identity of a predicate, dense over a
// rule set's lifetime (spec §3 "declaration identity").
type PredicateID int

// Predicate is a predicate declaration: an identity and an arity.
type Predicate struct {
	ID    PredicateID
	Name  string
	Arity int
}

// Symbol returns the term.FuncSymbol this predicate is addressed by in
// atom applications.
func (p Predicate) Symbol() term.FuncSymbol {
	return term.FuncSymbol{ID: int(p.ID), Name: p.Name, Arity: p.Arity, IsPredicate: true}
}
