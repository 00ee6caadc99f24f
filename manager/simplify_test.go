package manager

import (
	"testing"

	"dlinline/term"
)

func cmpApp(name string, id int, lhs, rhs term.Term) term.App {
	return term.NewApp(term.FuncSymbol{ID: id, Name: name, Arity: 2}, lhs, rhs)
}

func TestArithSimplifierDetectsRangeContradiction(t *testing.T) {
	x := term.Var("X", term.SortInt)
	cs := []term.Term{
		cmpApp(">", 1, x, term.Int(10)),
		cmpApp("<", 2, x, term.Int(5)),
	}
	ok, _ := (ArithSimplifier{}).Simplify(cs)
	if ok {
		t.Error("x>10 and x<5 must be reported unsatisfiable")
	}
}

func TestArithSimplifierDetectsEqualityOutsideBound(t *testing.T) {
	x := term.Var("X", term.SortInt)
	cs := []term.Term{
		cmpApp(">=", 1, x, term.Int(0)),
		cmpApp("=", 2, x, term.Int(-1)),
	}
	ok, _ := (ArithSimplifier{}).Simplify(cs)
	if ok {
		t.Error("x>=0 and x=-1 must be reported unsatisfiable")
	}
}

func TestArithSimplifierDetectsEqualityAgainstNotEqual(t *testing.T) {
	x := term.Var("X", term.SortInt)
	cs := []term.Term{
		cmpApp("!=", 1, x, term.Int(3)),
		cmpApp("=", 2, x, term.Int(3)),
	}
	ok, _ := (ArithSimplifier{}).Simplify(cs)
	if ok {
		t.Error("x!=3 and x=3 must be reported unsatisfiable")
	}
}

func TestArithSimplifierAcceptsConsistentBounds(t *testing.T) {
	x := term.Var("X", term.SortInt)
	cs := []term.Term{
		cmpApp(">", 1, x, term.Int(0)),
		cmpApp("<=", 2, x, term.Int(100)),
	}
	ok, out := (ArithSimplifier{}).Simplify(cs)
	if !ok {
		t.Fatal("x>0 and x<=100 is satisfiable")
	}
	if len(out) != 2 {
		t.Errorf("Simplify should not drop consistent constraints, got %d", len(out))
	}
}

func TestArithSimplifierFlipsConstantFirstComparison(t *testing.T) {
	x := term.Var("X", term.SortInt)
	// 10 < X  is equivalent to  X > 10.
	cs := []term.Term{
		cmpApp("<", 1, term.Int(10), x),
		cmpApp("<", 2, x, term.Int(5)),
	}
	ok, _ := (ArithSimplifier{}).Simplify(cs)
	if ok {
		t.Error("10<X (i.e. X>10) and X<5 must be reported unsatisfiable")
	}
}

func TestArithSimplifierDedupsIdenticalConstraints(t *testing.T) {
	x := term.Var("X", term.SortInt)
	c := cmpApp(">", 1, x, term.Int(0))
	ok, out := (ArithSimplifier{}).Simplify([]term.Term{c, c})
	if !ok {
		t.Fatal("duplicated constraint must still be satisfiable")
	}
	if len(out) != 1 {
		t.Errorf("Simplify should dedup identical constraints, got %d", len(out))
	}
}

func TestArithSimplifierIgnoresNonArithmeticTerms(t *testing.T) {
	x := term.Var("X", term.SortInt)
	y := term.Var("Y", term.SortInt)
	eq := term.NewApp(term.FuncSymbol{ID: 1, Name: "=", Arity: 2}, x, y)
	ok, out := (ArithSimplifier{}).Simplify([]term.Term{eq})
	if !ok || len(out) != 1 {
		t.Errorf("var-to-var comparison should pass through unexamined, got (%v, %v)", ok, out)
	}
}
