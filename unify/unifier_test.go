package unify

import (
	"testing"

	"dlinline/manager"
	"dlinline/rule"
	"dlinline/term"
)

func TestTryInlineResolvesTailAtom(t *testing.T) {
	out := rule.Predicate{ID: 1, Name: "Out", Arity: 1}
	p := rule.Predicate{ID: 2, Name: "P", Arity: 1}
	q := rule.Predicate{ID: 3, Name: "Q", Arity: 1}

	x := term.Var("X", term.SortInt)
	gt := term.FuncSymbol{ID: 100, Name: ">", Arity: 2}

	tgt := &rule.Rule{
		Head: rule.NewAtom(out, x),
		Tail: []rule.TailElem{
			rule.UninterpretedElem(rule.NewAtom(p, x)),
			rule.InterpretedElem(term.NewApp(gt, x, term.Int(0))),
		},
	}

	y := term.Var("Y", term.SortInt)
	src := &rule.Rule{
		Head: rule.NewAtom(p, y),
		Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(q, y))},
	}

	mgr := manager.New(manager.ArithSimplifier{})
	res, w, ok := TryInline(tgt, 0, src, mgr, false)
	if !ok {
		t.Fatal("TryInline should succeed unifying P(X) with P(Y)")
	}
	if res.Pred() != out.ID {
		t.Errorf("resolved rule head = %v, want Out", res.Pred())
	}
	if res.UninterpretedTailSize() != 1 || res.TailAtom(0).Pred() != q.ID {
		t.Errorf("resolved rule tail should be exactly Q(...), got %v", res)
	}
	if len(res.InterpretedTail()) != 1 {
		t.Errorf("the target's interpreted constraint must survive inlining, got %v", res.InterpretedTail())
	}
	if w.Target != tgt || w.Source != src || w.TailIndex != 0 {
		t.Error("witness must record the target, source and tail index used")
	}
}

func TestTryInlineFailsOnUnificationMismatch(t *testing.T) {
	p := rule.Predicate{ID: 1, Name: "P", Arity: 1}

	tgt := &rule.Rule{Head: rule.NewAtom(p, term.Int(1))}
	tgt.Tail = []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(p, term.Int(1)))}
	src := &rule.Rule{Head: rule.NewAtom(p, term.Int(2))}

	mgr := manager.New(nil)
	if _, _, ok := TryInline(tgt, 0, src, mgr, false); ok {
		t.Error("P(1) should not unify with P(2)")
	}
}

func TestTryInlineFailsOnQuantifiedSource(t *testing.T) {
	p := rule.Predicate{ID: 1, Name: "P", Arity: 1}
	x := term.Var("X", term.SortInt)

	tgt := &rule.Rule{
		Head: rule.NewAtom(p, x),
		Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(p, x))},
	}
	src := &rule.Rule{Head: rule.NewAtom(p, x), Quantified: true}

	mgr := manager.New(nil)
	if _, _, ok := TryInline(tgt, 0, src, mgr, false); ok {
		t.Error("a source rule with Quantified set must never be inlined")
	}
}

func TestTryInlineFailsOnUnsatInterpretedTail(t *testing.T) {
	p := rule.Predicate{ID: 1, Name: "P", Arity: 1}
	q := rule.Predicate{ID: 2, Name: "Q", Arity: 1}
	x := term.Var("X", term.SortInt)
	gt := term.FuncSymbol{ID: 100, Name: ">", Arity: 2}
	lt := term.FuncSymbol{ID: 101, Name: "<", Arity: 2}

	tgt := &rule.Rule{
		Head: rule.NewAtom(p, x),
		Tail: []rule.TailElem{
			rule.UninterpretedElem(rule.NewAtom(q, x)),
			rule.InterpretedElem(term.NewApp(gt, x, term.Int(0))),
		},
	}
	y := term.Var("Y", term.SortInt)
	src := &rule.Rule{
		Head: rule.NewAtom(q, y),
		Tail: []rule.TailElem{rule.InterpretedElem(term.NewApp(lt, y, term.Int(0)))},
	}

	mgr := manager.New(manager.ArithSimplifier{})
	if _, _, ok := TryInline(tgt, 0, src, mgr, false); ok {
		t.Error("x>0 combined with x<0 must be reported unsatisfiable, failing the inline")
	}
}

func TestTryInlineDedupsIdenticalTailAtoms(t *testing.T) {
	p := rule.Predicate{ID: 1, Name: "P", Arity: 1}
	q := rule.Predicate{ID: 2, Name: "Q", Arity: 1}
	x := term.Var("X", term.SortInt)

	tgt := &rule.Rule{
		Head: rule.NewAtom(p, x),
		Tail: []rule.TailElem{
			rule.UninterpretedElem(rule.NewAtom(p, x)),
			rule.UninterpretedElem(rule.NewAtom(q, x)),
		},
	}
	y := term.Var("Y", term.SortInt)
	src := &rule.Rule{
		Head: rule.NewAtom(p, y),
		Tail: []rule.TailElem{rule.UninterpretedElem(rule.NewAtom(q, y))},
	}

	mgr := manager.New(nil)
	res, _, ok := TryInline(tgt, 0, src, mgr, false)
	if !ok {
		t.Fatal("TryInline should succeed")
	}
	if res.UninterpretedTailSize() != 1 {
		t.Errorf("duplicate Q(...) tail atoms from target and source must be deduplicated, got tail %v", res)
	}
}
