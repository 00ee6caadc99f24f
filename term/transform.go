package term

// Rewrite walks t and replaces every Variable with f(v), recursing through
// applications and quantifier bodies (bound variables of a quantifier are
// still offered to f — callers that only want to rename free variables
// should have f return the bound variable unchanged when it recognizes
// one of the quantifier's own bindings).
func Rewrite(t Term, f func(Variable) Term) Term {
	switch v := t.(type) {
	case Variable:
		return f(v)
	case Constant:
		return v
	case App:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = Rewrite(a, f)
		}
		return App{Func: v.Func, Args: args}
	case Quantifier:
		return Quantifier{Exists: v.Exists, Bound: v.Bound, Body: Rewrite(v.Body, f)}
	default:
		return t
	}
}
