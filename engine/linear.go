package engine

import (
	"dlinline/config"
	"dlinline/convert"
	"dlinline/manager"
	"dlinline/rule"
	"dlinline/term"
	"dlinline/unify"
)

// indexEntry is one (rule position, atom) pair stored in a unifIndex.
type indexEntry struct {
	pos  int
	atom rule.Atom
}

// unifIndex is a unification index over a fixed slice of rules, bucketed
// by predicate and scanned linearly per query. Grounded on
// mk_rule_inliner::inline_linear's head_index/tail_index, but deliberately
// map-based rather than backed by an LRU-evicting cache: this index is
// scoped to a single LinearInline call and never outlives it, so nothing
// needs eviction.
type unifIndex struct {
	byPred map[rule.PredicateID][]indexEntry
}

func newUnifIndex() *unifIndex {
	return &unifIndex{byPred: map[rule.PredicateID][]indexEntry{}}
}

func (u *unifIndex) add(pos int, atom rule.Atom) {
	u.byPred[atom.Pred()] = append(u.byPred[atom.Pred()], indexEntry{pos, atom})
}

func (u *unifIndex) remove(pos int, atom rule.Atom) {
	es := u.byPred[atom.Pred()]
	for i, e := range es {
		if e.pos == pos {
			u.byPred[atom.Pred()] = append(es[:i], es[i+1:]...)
			return
		}
	}
}

// unifiers returns the positions of every stored atom of query's predicate
// that unifies with query.
func (u *unifIndex) unifiers(query rule.Atom) []int {
	var out []int
	for _, e := range u.byPred[query.Pred()] {
		s := term.NewSubst()
		if term.UnifyApps(query.App, 0, e.atom.App, 1, s) {
			out = append(out, e.pos)
		}
	}
	return out
}

func canRemove(r *rule.Rule, outputs map[rule.PredicateID]bool, facts rule.RelationStore) bool {
	pred := r.Pred()
	return !outputs[pred] && !facts.HasFacts(pred)
}

// canExpand reports whether r's entire tail is a single positive
// uninterpreted atom whose predicate is neither an output nor backed by
// facts (spec §4.8 "can_expand").
func canExpand(r *rule.Rule, outputs map[rule.PredicateID]bool, facts rule.RelationStore) bool {
	if len(r.Tail) != 1 || r.PositiveTailSize() != 1 {
		return false
	}
	tailPred := r.TailAtom(0).Pred()
	return !outputs[tailPred] && !facts.HasFacts(tailPred)
}

// LinearInline implements spec §4.8's linear chain compression: a rule
// whose whole tail is a single call (can_expand) absorbs the unique rule
// defining that call (can_remove), one link at a time, using the head
// index to find that unique callee and the tail index to check whether
// the caller is the callee's only caller; a callee with a single caller is
// retired once absorbed. Grounded on
// mk_rule_inliner::inline_linear.
func LinearInline(rules *rule.Set, outputs map[rule.PredicateID]bool, facts rule.RelationStore, mgr manager.RuleManager, cfg *config.Config, mc *convert.ModelConverter, pc *convert.Proof) (*rule.Set, bool, error) {
	all := rules.Rules()
	sz := len(all)
	acc := make([]*rule.Rule, sz)
	copy(acc, all)

	headIndex := newUnifIndex()
	tailIndex := newUnifIndex()
	canRem := make([]bool, sz)
	canExp := make([]bool, sz)
	valid := make([]bool, sz)

	addToIndex := func(i int) {
		r := acc[i]
		headIndex.add(i, r.Head)
		canRem[i] = canRemove(r, outputs, facts)
		canExp[i] = canExpand(r, outputs, facts)
		n := r.UninterpretedTailSize()
		for j := 0; j < n; j++ {
			tailIndex.add(i, r.TailAtom(j))
		}
	}
	removeFromIndex := func(i int) {
		r := acc[i]
		headIndex.remove(i, r.Head)
		n := r.UninterpretedTailSize()
		for j := 0; j < n; j++ {
			tailIndex.remove(i, r.TailAtom(j))
		}
	}

	for i := range acc {
		valid[i] = true
		addToIndex(i)
	}

	somethingDone := false
	allowBranching := cfg.InlineLinearBranch

	for i := 0; i < sz; i++ {
		for valid[i] && canExp[i] {
			r := acc[i]
			headUnifiers := headIndex.unifiers(r.TailAtom(0))
			if len(headUnifiers) != 1 {
				break
			}
			j := headUnifiers[0]
			if i == j || !valid[j] || !canRem[j] {
				break
			}
			r2 := acc[j]

			tailUnifiers := tailIndex.unifiers(r2.Head)
			if !allowBranching && len(tailUnifiers) != 1 {
				break
			}

			res, witness, ok := unify.TryInline(r, 0, r2, mgr, cfg.FixUnboundVars)
			if !ok {
				break
			}
			somethingDone = true
			if mc != nil {
				mc.RecordResolve(witness, res)
			}
			if pc != nil {
				pc.RecordResolve(witness, res)
			}

			inheritedExpand := canExp[j]
			removeFromIndex(i)
			acc[i] = res
			addToIndex(i)
			canExp[i] = inheritedExpand

			if len(tailUnifiers) == 1 {
				valid[j] = false
				removeFromIndex(j)
			}
		}
	}

	if !somethingDone {
		return rules, false, nil
	}
	out := rule.NewSet()
	for i := 0; i < sz; i++ {
		if valid[i] {
			out.Add(acc[i])
		}
	}
	return out, true, nil
}
