// Package unify implements the rule unifier of spec §4.1: given a target
// rule, the index of one of its positive uninterpreted tail atoms, and a
// source rule, it resolves the two into a single rule whose tail is the
// target's remaining tail plus the source's whole tail, with the tail atom
// and the source's head unified away.
//
// It is grounded directly on rule_unifier / mk_rule_inliner::try_to_inline_rule
// in dl_mk_rule_inliner.cpp: unify_rules corresponds to TryInline's initial
// term.UnifyApps call, rule_unifier::apply's tail assembly and
// remove_duplicate_tails correspond to buildTail/dedupTail/partitionTail,
// and get_rule_subst corresponds to ruleSubst (consumed by convert.Proof).
//
// One deliberate simplification from the C++: rule_unifier is a reusable,
// stateful object that reserves a fixed-size substitution array sized to
// the larger rule's variable count before unifying. term.Subst is map-based
// and grows on demand, so TryInline needs no reservation step and returns a
// fresh Subst per call instead of resetting shared state.
package unify

import (
	"dlinline/manager"
	"dlinline/rule"
	"dlinline/term"
)

// Witness records the two rules and the resolved substitutions a
// resolution step used, for the proof converter (spec §5.2).
type Witness struct {
	Target      *rule.Rule
	Source      *rule.Rule
	TailIndex   int
	TargetSubst []term.Term // per Target.Vars(), in order
	SourceSubst []term.Term // per Source.Vars(), in order
}

// TryInline resolves src into tgt at tgt's tail element tailIndex, which
// must be a positive uninterpreted tail atom (spec §4.1 precondition). It
// fails (ok == false) when: src has a quantified interpreted tail; the tail
// atom does not unify with src's head; or the resolved rule's interpreted
// tail is unsatisfiable per mgr's simplifier. fixUnboundVars mirrors the
// context.fix_unbound_vars() flag of spec §6.
func TryInline(tgt *rule.Rule, tailIndex int, src *rule.Rule, mgr manager.RuleManager, fixUnboundVars bool) (*rule.Rule, *Witness, bool) {
	if src.Quantified {
		return nil, nil, false
	}

	subst := term.NewSubst()
	tailAtom := tgt.TailAtom(tailIndex)
	if !term.UnifyApps(tailAtom.App, 0, src.Head.App, 1, subst) {
		return nil, nil, false
	}

	newHeadApp, ok := subst.Apply(tgt.Head.App, 0).(term.App)
	if !ok {
		return nil, nil, false
	}
	newHead := rule.Atom{App: newHeadApp}

	tail := buildTail(tgt, tailIndex, src, subst)
	tail = partitionTail(dedupTail(tail))

	res, err := mgr.Construct(newHead, tail)
	if err != nil {
		return nil, nil, false
	}
	res.DerivedFrom = tgt
	res = mgr.NormalizeVars(res)
	if fixUnboundVars {
		res = mgr.FixUnboundVars(res)
	}

	okSat, simplified := mgr.Simplify(res)
	if !okSat {
		return nil, nil, false
	}

	w := &Witness{
		Target:      tgt,
		Source:      src,
		TailIndex:   tailIndex,
		TargetSubst: ruleSubst(tgt, 0, subst),
		SourceSubst: ruleSubst(src, 1, subst),
	}
	return simplified, w, true
}

// buildTail concatenates tgt's tail (minus tailIndex) with src's whole
// tail, applying subst at the appropriate offset to every element.
func buildTail(tgt *rule.Rule, tailIndex int, src *rule.Rule, subst *term.Subst) []rule.TailElem {
	var out []rule.TailElem
	for i, e := range tgt.Tail {
		if i == tailIndex {
			continue
		}
		out = append(out, applyTailElem(e, 0, subst))
	}
	for _, e := range src.Tail {
		out = append(out, applyTailElem(e, 1, subst))
	}
	return out
}

func applyTailElem(e rule.TailElem, offset int, subst *term.Subst) rule.TailElem {
	switch e.Kind {
	case rule.Uninterpreted:
		app, _ := subst.Apply(e.Atom.App, offset).(term.App)
		return rule.UninterpretedElem(rule.Atom{App: app, Negated: e.Atom.Negated})
	case rule.Interpreted:
		return rule.InterpretedElem(subst.Apply(e.Constraint, offset))
	default:
		return e
	}
}

// dedupTail removes structurally identical tail elements, mirroring
// mk_rule_inliner::remove_duplicate_tails.
func dedupTail(elems []rule.TailElem) []rule.TailElem {
	var out []rule.TailElem
	for _, e := range elems {
		dup := false
		for _, o := range out {
			if tailElemEqual(e, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}

func tailElemEqual(a, b rule.TailElem) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == rule.Uninterpreted {
		return a.Atom.Equal(b.Atom)
	}
	return a.Constraint.Equal(b.Constraint)
}

// partitionTail stably reorders elems so every uninterpreted atom precedes
// every interpreted constraint, preserving the rule tail invariant (spec
// §3) that concatenating a target's remaining tail with a source's whole
// tail would otherwise violate whenever the target has any interpreted
// tail elements of its own.
func partitionTail(elems []rule.TailElem) []rule.TailElem {
	out := make([]rule.TailElem, 0, len(elems))
	for _, e := range elems {
		if e.Kind == rule.Uninterpreted {
			out = append(out, e)
		}
	}
	for _, e := range elems {
		if e.Kind == rule.Interpreted {
			out = append(out, e)
		}
	}
	return out
}

// ruleSubst returns, for each of r's variables in first-occurrence order,
// its resolved binding under subst at offset (spec §5.2 proof witnesses).
func ruleSubst(r *rule.Rule, offset int, subst *term.Subst) []term.Term {
	vars := r.Vars()
	out := make([]term.Term, len(vars))
	for i, v := range vars {
		out[i] = subst.Apply(v, offset)
	}
	return out
}
