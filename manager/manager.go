// Package manager implements the RuleManager contract (spec §3 "Consumed
// interfaces", §4.1 steps 4-6): rule construction, dense variable
// normalization, existential closure of variables the resolution step left
// unbound, and the interpreted-tail simplifier hook.
//
// It is grounded on the teacher's Datalog interpreter, which owns exactly
// this kind of housekeeping around its Rule/Fact/Goal types (renaming,
// well-formedness checks) inline rather than behind an interface; here the
// same responsibilities are pulled out into their own collaborator because
// the unifier and the engine both need to call them without depending on
// each other.
package manager

import (
	"fmt"

	"github.com/pkg/errors"

	"dlinline/rule"
	"dlinline/term"
)

// ErrNegatedHead is returned by Construct when the proposed head atom is
// negated; spec §3 requires every rule's head to be a positive
// uninterpreted atom.
var ErrNegatedHead = errors.New("manager: rule head must not be negated")

// Simplifier decides whether a rule's interpreted tail is satisfiable and,
// if so, may return a rewritten tail (spec §4.1 step 6). ok == false means
// the tail is unsatisfiable and the rule must be dropped.
type Simplifier interface {
	Simplify(constraints []term.Term) (ok bool, simplified []term.Term)
}

// RuleManager is the external collaborator the unifier and engine use for
// everything about a Rule's internal shape that isn't unification itself
// (spec §3 "Consumed interfaces").
type RuleManager interface {
	Construct(head rule.Atom, tail []rule.TailElem) (*rule.Rule, error)
	NormalizeVars(r *rule.Rule) *rule.Rule
	MaxVar(r *rule.Rule) int
	FixUnboundVars(r *rule.Rule) *rule.Rule
	Simplify(r *rule.Rule) (ok bool, simplified *rule.Rule)
}

// Manager is the concrete RuleManager shipped with this module.
type Manager struct {
	simplifier Simplifier
}

// New returns a Manager using simplifier for interpreted-tail satisfiability
// checks. A nil simplifier makes Simplify a no-op that always reports ok.
func New(simplifier Simplifier) *Manager {
	return &Manager{simplifier: simplifier}
}

// Construct builds a rule from a head and tail, rejecting a negated head and
// computing the Quantified cache (spec §4.1, §4.6 "Failure modes").
func (m *Manager) Construct(head rule.Atom, tail []rule.TailElem) (*rule.Rule, error) {
	if head.Negated {
		return nil, ErrNegatedHead
	}
	r := &rule.Rule{Head: head, Tail: tail}
	r.Quantified = hasQuantifiedTail(r)
	return r, nil
}

func hasQuantifiedTail(r *rule.Rule) bool {
	for _, c := range r.InterpretedTail() {
		if term.HasQuantifier(c) {
			return true
		}
	}
	return false
}

// varName renders the i-th normalized variable's name as "v" followed by i
// in decimal.
func varName(i int) string { return fmt.Sprintf("v%d", i) }

// NormalizeVars renumbers r's variables to a dense, 0-based sequence in
// first-occurrence order (spec §4.1 step 4), preserving each variable's
// sort. The returned rule is a new value; r is not mutated.
func (m *Manager) NormalizeVars(r *rule.Rule) *rule.Rule {
	vars := r.Vars()
	rename := make(map[string]term.Variable, len(vars))
	for i, v := range vars {
		rename[v.Name] = term.Var(varName(i), v.Sort)
	}
	f := func(v term.Variable) term.Term {
		if nv, ok := rename[v.Name]; ok {
			return nv
		}
		return v
	}

	out := &rule.Rule{
		Head:        r.Head.WithArgs(rewriteArgs(r.Head.App.Args, f)),
		DerivedFrom: r.DerivedFrom,
		Quantified:  r.Quantified,
	}
	for _, e := range r.Tail {
		switch e.Kind {
		case rule.Uninterpreted:
			a := e.Atom
			a = a.WithArgs(rewriteArgs(a.App.Args, f))
			out.Tail = append(out.Tail, rule.UninterpretedElem(a))
		case rule.Interpreted:
			out.Tail = append(out.Tail, rule.InterpretedElem(term.Rewrite(e.Constraint, f)))
		}
	}
	return out
}

func rewriteArgs(args []term.Term, f func(term.Variable) term.Term) []term.Term {
	out := make([]term.Term, len(args))
	for i, a := range args {
		out[i] = term.Rewrite(a, f)
	}
	return out
}

// MaxVar returns the number of distinct variables in r. Combined with
// NormalizeVars' dense v0..v(n-1) naming, callers use this to size a fresh
// binding index without inspecting the rule twice.
func (m *Manager) MaxVar(r *rule.Rule) int {
	return len(r.Vars())
}

// FixUnboundVars existentially closes head variables that do not occur
// anywhere in r's tail (spec §4.1 step 5, the fix_unbound_vars flag of §6):
// a resolution step can leave a head variable with no remaining occurrence
// once its binding uninterpreted atom is consumed, and such a variable must
// be recorded as existentially quantified rather than silently dropped.
func (m *Manager) FixUnboundVars(r *rule.Rule) *rule.Rule {
	bound := map[string]bool{}
	for _, e := range r.Tail {
		switch e.Kind {
		case rule.Uninterpreted:
			for _, v := range e.Atom.Vars() {
				bound[v.Name] = true
			}
		case rule.Interpreted:
			for _, v := range e.Constraint.Vars() {
				bound[v.Name] = true
			}
		}
	}

	var unbound []term.Variable
	for _, v := range r.Head.Vars() {
		if !bound[v.Name] {
			unbound = append(unbound, v)
		}
	}
	if len(unbound) == 0 {
		return r
	}

	marker := term.Quantifier{Exists: true, Bound: unbound, Body: term.Bool(true)}
	out := *r
	out.Tail = append(append([]rule.TailElem{}, r.Tail...), rule.InterpretedElem(marker))
	out.Quantified = true
	return &out
}

// Simplify runs the configured Simplifier over r's interpreted tail. With no
// simplifier configured every rule is reported satisfiable unchanged.
func (m *Manager) Simplify(r *rule.Rule) (bool, *rule.Rule) {
	if m.simplifier == nil {
		return true, r
	}
	ok, simplified := m.simplifier.Simplify(r.InterpretedTail())
	if !ok {
		return false, nil
	}

	out := *r
	out.Tail = out.Tail[:r.UninterpretedTailSize():r.UninterpretedTailSize()]
	for _, c := range simplified {
		out.Tail = append(out.Tail, rule.InterpretedElem(c))
	}
	return true, &out
}
