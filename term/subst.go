package term

import "fmt"

// Subst is a two-offset substitution (spec §3, §9): a mapping from
// (variable name, offset) to a (term, offset) pair. Offset 0 is always the
// target/caller rule, offset 1 the source/callee rule. Keeping variables
// tagged by offset instead of renaming them lets the unifier work directly
// on two rules' variables without allocating a rename table; a binding
// itself may point at a variable of the other offset, so lookups carry
// their own offset rather than inheriting the caller's.
type Subst struct {
	bindings map[key]binding
}

type key struct {
	name   string
	offset int
}

type binding struct {
	term   Term
	offset int
}

// NewSubst returns an empty substitution.
func NewSubst() *Subst {
	return &Subst{bindings: make(map[key]binding)}
}

// Bind records that variable name at offset is bound to t, itself living
// at termOffset.
func (s *Subst) Bind(name string, offset int, t Term, termOffset int) {
	s.bindings[key{name, offset}] = binding{term: t, offset: termOffset}
}

// Deref follows variable bindings, across offsets, until it reaches a
// non-variable term or an unbound variable, returning the term and the
// offset it lives at. It does not descend into compound terms.
func (s *Subst) Deref(t Term, offset int) (Term, int) {
	for {
		v, ok := t.(Variable)
		if !ok {
			return t, offset
		}
		b, ok := s.bindings[key{v.Name, offset}]
		if !ok {
			return t, offset
		}
		t, offset = b.term, b.offset
	}
}

// Apply substitutes every free variable of t (tagged at offset) with its
// binding, recursively dereferencing across offsets, producing an
// offset-free term suitable for inclusion in a resolved rule. Bound
// variables of a Quantifier are never substituted.
//
// An unbound variable surviving to offset 0 (the target/caller rule) keeps
// its bare name, since that namespace is what a resolved rule's own
// variables are named in. An unbound variable surviving at any other
// offset is renamed via offsetVarName: both rules are independently
// normalized to the same dense v0, v1, ... names (manager.NormalizeVars),
// so a target's v1 and a source's v1 are unrelated variables that must not
// collide once both are flattened into offset-free terms in the same
// resolved rule.
func (s *Subst) Apply(t Term, offset int) Term {
	switch v := t.(type) {
	case Variable:
		resolved, resolvedOffset := s.Deref(v, offset)
		rv, ok := resolved.(Variable)
		if !ok {
			return s.Apply(resolved, resolvedOffset)
		}
		if resolvedOffset == 0 {
			return rv
		}
		return Variable{Name: offsetVarName(rv.Name, resolvedOffset), Sort: rv.Sort}
	case Constant:
		return v
	case App:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = s.Apply(a, offset)
		}
		return App{Func: v.Func, Args: args}
	case Quantifier:
		return Quantifier{Exists: v.Exists, Bound: v.Bound, Body: s.Apply(v.Body, offset)}
	default:
		return t
	}
}

// offsetVarName renders an unbound variable's name distinctly per offset.
// The '#' separator can never collide with a name manager.NormalizeVars
// produces (those are pure decimal-suffixed "vN"), nor with a
// hand-written variable name from before normalization, which is
// whatever the caller chose and offset-tagging still keeps disjoint.
func offsetVarName(name string, offset int) string {
	return fmt.Sprintf("%s#%d", name, offset)
}
