package manager

import "dlinline/term"

// ArithSimplifier is a small arithmetic/equality Simplifier over int
// constraints of the shape "var OP const" or "const OP var", where OP is
// one of =, !=, >, >=, <, <=. It detects direct contradictions (spec §4.1
// example: x>0 and x<0 on the same resolved variable) by intersecting, per
// variable, the set of bounds and (in)equalities its constraints impose; it
// does not attempt any general-purpose constraint solving. Constraints
// outside this shape (two variables, uninterpreted functions, other sorts)
// are passed through unexamined.
type ArithSimplifier struct{}

var comparisonOps = map[string]bool{
	"=": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true,
}

func (ArithSimplifier) Simplify(constraints []term.Term) (bool, []term.Term) {
	deduped := dedupTerms(constraints)
	ivs := map[string]*interval{}

	for _, c := range deduped {
		v, val, op, ok := asComparison(c)
		if !ok {
			continue
		}
		iv := ivs[v.Name]
		if iv == nil {
			iv = &interval{}
			ivs[v.Name] = iv
		}
		if !iv.apply(op, val) {
			return false, nil
		}
	}
	return true, deduped
}

func dedupTerms(ts []term.Term) []term.Term {
	var out []term.Term
	for _, t := range ts {
		dup := false
		for _, o := range out {
			if t.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// asComparison recognizes "var OP intconst" or "intconst OP var", returning
// the variable, the int64 value and the operator normalized to the
// variable-on-the-left form (flipping < and > when the constant came first).
func asComparison(t term.Term) (term.Variable, int64, string, bool) {
	app, ok := t.(term.App)
	if !ok || len(app.Args) != 2 || !comparisonOps[app.Func.Name] {
		return term.Variable{}, 0, "", false
	}
	if v, ok := app.Args[0].(term.Variable); ok {
		if c, ok := app.Args[1].(term.Constant); ok && c.Sort == term.SortInt {
			return v, c.Value.(int64), app.Func.Name, true
		}
	}
	if c, ok := app.Args[0].(term.Constant); ok && c.Sort == term.SortInt {
		if v, ok := app.Args[1].(term.Variable); ok {
			return v, c.Value.(int64), flipOp(app.Func.Name), true
		}
	}
	return term.Variable{}, 0, "", false
}

func flipOp(op string) string {
	switch op {
	case ">":
		return "<"
	case "<":
		return ">"
	case ">=":
		return "<="
	case "<=":
		return ">="
	default:
		return op
	}
}

// interval tracks the bounds a sequence of comparisons impose on a single
// variable, contradicting as soon as they become unsatisfiable together.
type interval struct {
	hasEq bool
	eq    int64
	neq   []int64

	hasLow   bool
	low      int64
	lowIncl  bool
	hasHigh  bool
	high     int64
	highIncl bool
}

func (iv *interval) apply(op string, val int64) bool {
	switch op {
	case "=":
		if iv.hasEq && iv.eq != val {
			return false
		}
		iv.hasEq = true
		iv.eq = val
	case "!=":
		iv.neq = append(iv.neq, val)
	case ">":
		iv.tightenLow(val, false)
	case ">=":
		iv.tightenLow(val, true)
	case "<":
		iv.tightenHigh(val, false)
	case "<=":
		iv.tightenHigh(val, true)
	}
	return iv.consistent()
}

func (iv *interval) tightenLow(val int64, incl bool) {
	if !iv.hasLow || val > iv.low || (val == iv.low && !incl) {
		iv.hasLow, iv.low, iv.lowIncl = true, val, incl
	}
}

func (iv *interval) tightenHigh(val int64, incl bool) {
	if !iv.hasHigh || val < iv.high || (val == iv.high && !incl) {
		iv.hasHigh, iv.high, iv.highIncl = true, val, incl
	}
}

func (iv *interval) consistent() bool {
	if iv.hasLow && iv.hasHigh {
		if iv.low > iv.high {
			return false
		}
		if iv.low == iv.high && !(iv.lowIncl && iv.highIncl) {
			return false
		}
	}
	if iv.hasEq {
		if iv.hasLow && (iv.eq < iv.low || (iv.eq == iv.low && !iv.lowIncl)) {
			return false
		}
		if iv.hasHigh && (iv.eq > iv.high || (iv.eq == iv.high && !iv.highIncl)) {
			return false
		}
		for _, n := range iv.neq {
			if n == iv.eq {
				return false
			}
		}
	}
	return true
}
