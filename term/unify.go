package term

// Unify attempts a most-general unifier of t1 (at offset o1) and t2 (at
// offset o2), extending s in place. It returns false on symbol mismatch or
// occurs-check failure, leaving s partially extended (callers that need to
// roll back on failure should unify against a fresh Subst, which is how
// the rule unifier in package unify uses it).
func Unify(t1 Term, o1 int, t2 Term, o2 int, s *Subst) bool {
	t1, o1 = s.Deref(t1, o1)
	t2, o2 = s.Deref(t2, o2)

	v1, isVar1 := t1.(Variable)
	v2, isVar2 := t2.(Variable)

	switch {
	case isVar1 && isVar2:
		if v1.Name == v2.Name && o1 == o2 {
			return true
		}
		s.Bind(v1.Name, o1, v2, o2)
		return true
	case isVar1:
		if occurs(v1, o1, t2, o2, s) {
			return false
		}
		s.Bind(v1.Name, o1, t2, o2)
		return true
	case isVar2:
		if occurs(v2, o2, t1, o1, s) {
			return false
		}
		s.Bind(v2.Name, o2, t1, o1)
		return true
	}

	switch a1 := t1.(type) {
	case Constant:
		a2, ok := t2.(Constant)
		return ok && a1.Equal(a2)
	case App:
		a2, ok := t2.(App)
		if !ok || !a1.Func.Equal(a2.Func) || len(a1.Args) != len(a2.Args) {
			return false
		}
		for i := range a1.Args {
			if !Unify(a1.Args[i], o1, a2.Args[i], o2, s) {
				return false
			}
		}
		return true
	default:
		// Quantifiers are never unification targets; the caller (rule
		// unifier, §4.1) rejects rules containing one before reaching here.
		return false
	}
}

func occurs(v Variable, vOffset int, t Term, tOffset int, s *Subst) bool {
	t, tOffset = s.Deref(t, tOffset)
	switch x := t.(type) {
	case Variable:
		return x.Name == v.Name && tOffset == vOffset
	case App:
		for _, a := range x.Args {
			if occurs(v, vOffset, a, tOffset, s) {
				return true
			}
		}
	}
	return false
}

// UnifyApps unifies two application argument lists pairwise, extending s.
func UnifyApps(a1 App, o1 int, a2 App, o2 int, s *Subst) bool {
	if !a1.Func.Equal(a2.Func) || len(a1.Args) != len(a2.Args) {
		return false
	}
	for i := range a1.Args {
		if !Unify(a1.Args[i], o1, a2.Args[i], o2, s) {
			return false
		}
	}
	return true
}
