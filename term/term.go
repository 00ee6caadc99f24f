// Package term implements the term/AST representation that the rest of
// dlinline treats as an external collaborator (spec §3): variables,
// constants, function/predicate applications, and quantifiers, plus
// structural equality and free-variable enumeration with sorts.
//
// The Term shapes here mirror the teacher's Datalog Term type (variable,
// atom, number, string, list) but generalize atoms and lists into a single
// Application node so the same representation can carry both predicate
// atoms (P(x, y)) and interpreted constraint terms (x > 0, x + 1).
package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Sort names the domain a variable or constant ranges over. Interpreted
// constraints are told apart from predicate atoms by rule.TailKind, not by
// sort; the only sort the rest of the module inspects is Int, which
// manager.ArithSimplifier requires of the constants it reasons about.
type Sort int

const (
	SortUnknown Sort = iota
	SortBool
	SortInt
	SortString
)

func (s Sort) String() string {
	switch s {
	case SortBool:
		return "bool"
	case SortInt:
		return "int"
	case SortString:
		return "string"
	default:
		return "unknown"
	}
}

// Kind discriminates the concrete shape of a Term.
type Kind int

const (
	KindVar Kind = iota
	KindConst
	KindApp
	KindQuantifier
)

// Term is the minimal contract the core requires of the external AST
// manager: structural equality, variable enumeration with sorts, and (via
// the Func/Args accessors on App) an ID for function symbols.
type Term interface {
	Kind() Kind
	String() string
	Equal(Term) bool
	// Vars returns the free variables of the term in first-occurrence
	// order, each tagged with its declared sort.
	Vars() []Variable
}

// Variable is a named, sorted term variable.
type Variable struct {
	Name string
	Sort Sort
}

func Var(name string, sort Sort) Variable { return Variable{Name: name, Sort: sort} }

func (v Variable) Kind() Kind        { return KindVar }
func (v Variable) String() string    { return "?" + v.Name }
func (v Variable) Vars() []Variable  { return []Variable{v} }
func (v Variable) Equal(o Term) bool {
	ov, ok := o.(Variable)
	return ok && ov.Name == v.Name
}

// Constant is a ground value: a number, string, boolean or opaque atom.
type Constant struct {
	Sort  Sort
	Value any
}

func Int(n int64) Constant    { return Constant{Sort: SortInt, Value: n} }
func Str(s string) Constant   { return Constant{Sort: SortString, Value: s} }
func Bool(b bool) Constant    { return Constant{Sort: SortBool, Value: b} }
func Atom(name string) Constant {
	return Constant{Sort: SortUnknown, Value: name}
}

func (c Constant) Kind() Kind       { return KindConst }
func (c Constant) Vars() []Variable { return nil }

func (c Constant) String() string {
	switch v := c.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		if c.Sort == SortString {
			return strconv.Quote(v)
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (c Constant) Equal(o Term) bool {
	oc, ok := o.(Constant)
	return ok && oc.Sort == c.Sort && oc.Value == c.Value
}

// FuncSymbol identifies a predicate declaration or interpreted function.
// ID is the identity used by the eager inliner's lexicographic orientation
// check (spec §4.7); two FuncSymbols with the same ID are the same
// declaration.
type FuncSymbol struct {
	ID          int
	Name        string
	Arity       int
	IsPredicate bool
}

func (f FuncSymbol) Equal(o FuncSymbol) bool { return f.ID == o.ID }

// App is an application of a function symbol to terms. A predicate atom is
// an App whose Func.IsPredicate is true; interpreted constraints are Apps
// over arithmetic/comparison/logical symbols.
type App struct {
	Func FuncSymbol
	Args []Term
}

func NewApp(fn FuncSymbol, args ...Term) App {
	return App{Func: fn, Args: args}
}

func (a App) Kind() Kind { return KindApp }

func (a App) Vars() []Variable {
	seen := map[string]bool{}
	var out []Variable
	for _, arg := range a.Args {
		for _, v := range arg.Vars() {
			if !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func (a App) Equal(o Term) bool {
	oa, ok := o.(App)
	if !ok || !oa.Func.Equal(a.Func) || len(oa.Args) != len(a.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equal(oa.Args[i]) {
			return false
		}
	}
	return true
}

func (a App) String() string {
	if len(a.Args) == 0 {
		return a.Func.Name
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return a.Func.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Quantifier represents an existential or universal binder over an
// interpreted-tail term. Resolved rules with quantified interpreted tails
// are never produced (spec §4.1 "Failure modes"); HasQuantifier detects
// them so callers can skip the pair before attempting resolution.
type Quantifier struct {
	Exists bool
	Bound  []Variable
	Body   Term
}

func (q Quantifier) Kind() Kind { return KindQuantifier }

func (q Quantifier) Vars() []Variable {
	bound := map[string]bool{}
	for _, b := range q.Bound {
		bound[b.Name] = true
	}
	var out []Variable
	for _, v := range q.Body.Vars() {
		if !bound[v.Name] {
			out = append(out, v)
		}
	}
	return out
}

func (q Quantifier) Equal(o Term) bool {
	oq, ok := o.(Quantifier)
	if !ok || oq.Exists != q.Exists || len(oq.Bound) != len(q.Bound) {
		return false
	}
	for i := range q.Bound {
		if q.Bound[i] != oq.Bound[i] {
			return false
		}
	}
	return q.Body.Equal(oq.Body)
}

func (q Quantifier) String() string {
	kind := "forall"
	if q.Exists {
		kind = "exists"
	}
	names := make([]string, len(q.Bound))
	for i, b := range q.Bound {
		names[i] = b.Name
	}
	return fmt.Sprintf("%s(%s) %s", kind, strings.Join(names, ", "), q.Body)
}

// HasQuantifier reports whether t contains a Quantifier anywhere in its
// structure.
func HasQuantifier(t Term) bool {
	switch v := t.(type) {
	case Quantifier:
		return true
	case App:
		for _, arg := range v.Args {
			if HasQuantifier(arg) {
				return true
			}
		}
	}
	return false
}
