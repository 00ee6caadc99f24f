package rule

import "dlinline/term"

// Atom is a term whose top function symbol is a predicate declaration
// (spec §3), tagged positive or negated when it occurs in a rule tail.
type Atom struct {
	App     term.App
	Negated bool
}

// NewAtom builds a positive atom over pred applied to args.
func NewAtom(pred Predicate, args ...term.Term) Atom {
	return Atom{App: term.NewApp(pred.Symbol(), args...)}
}

// Pred returns the predicate ID this atom's application is over.
func (a Atom) Pred() PredicateID { return PredicateID(a.App.Func.ID) }

// Arity returns the atom's arity.
func (a Atom) Arity() int { return len(a.App.Args) }

// Equal compares two atoms by application structure and polarity.
func (a Atom) Equal(o Atom) bool {
	return a.Negated == o.Negated && a.App.Equal(o.App)
}

// Vars returns the atom's free variables in first-occurrence order.
func (a Atom) Vars() []term.Variable { return a.App.Vars() }

func (a Atom) String() string {
	if a.Negated {
		return "not " + a.App.String()
	}
	return a.App.String()
}

// WithArgs returns a copy of a with its application's arguments replaced.
func (a Atom) WithArgs(args []term.Term) Atom {
	return Atom{App: term.NewApp(a.App.Func, args...), Negated: a.Negated}
}
