package rule

import "github.com/pkg/errors"

// ErrNotClosed is returned by any query that requires a closed
// (stratified) rule set, per spec §3 "A rule set must be closed before
// any cycle-breaking query."
var ErrNotClosed = errors.New("rule: rule set is not closed")

// Stratifier partitions a rule set into strongly connected components of
// the "head-depends-on-positive-tail" graph, in topological order (spec
// §6 "Consumed interfaces"). It is an external collaborator; rule.Set
// depends only on this interface, not on any concrete implementation.
type Stratifier interface {
	Stratify(*Set) (*Stratification, error)
}

// Stratum is one layer of the stratification: a singleton for an acyclic
// predicate, or the full member list of a non-trivial SCC. A singleton
// can still be cyclic on its own — a rule with p in both head and
// positive tail — which SelfRecursive records, since a plain
// one-predicate SCC would otherwise look indistinguishable from a
// genuinely acyclic predicate.
type Stratum struct {
	Members       []PredicateID
	SelfRecursive bool
}

// Trivial reports whether this stratum is acyclic: a singleton with no
// self-recursive rule.
func (s Stratum) Trivial() bool { return len(s.Members) <= 1 && !s.SelfRecursive }

// Stratification is a rule set's SCC decomposition in topological order
// (leaves first), plus a lookup from predicate to stratum index.
type Stratification struct {
	Strata []Stratum
	index  map[PredicateID]int
}

// NewStratification builds a Stratification from strata already in
// topological order, indexing each member predicate.
func NewStratification(strata []Stratum) *Stratification {
	idx := make(map[PredicateID]int)
	for i, s := range strata {
		for _, p := range s.Members {
			idx[p] = i
		}
	}
	return &Stratification{Strata: strata, index: idx}
}

// StratumOf returns the stratum index of pred, or -1 if pred has no rules
// (it never appears as a head in this rule set).
func (s *Stratification) StratumOf(pred PredicateID) int {
	i, ok := s.index[pred]
	if !ok {
		return -1
	}
	return i
}

// Set is an insertion-ordered multiset of rules, indexed by head
// predicate, with a cached stratification (spec §3, §9 "Stratifier
// dependence": re-closed whenever membership changes).
type Set struct {
	rules    []*Rule
	byHead   map[PredicateID][]*Rule
	strat    *Stratification
	closedOK bool
}

// NewSet returns an empty rule set.
func NewSet() *Set {
	return &Set{byHead: make(map[PredicateID][]*Rule)}
}

// NewSetFrom returns a rule set containing exactly rules, in order.
func NewSetFrom(rules []*Rule) *Set {
	s := NewSet()
	for _, r := range rules {
		s.Add(r)
	}
	return s
}

// Add appends r to the set, invalidating any cached stratification.
func (s *Set) Add(r *Rule) {
	s.rules = append(s.rules, r)
	pred := r.Pred()
	s.byHead[pred] = append(s.byHead[pred], r)
	s.strat, s.closedOK = nil, false
}

// Rules returns the set's rules in insertion order. The slice must not be
// mutated by callers.
func (s *Set) Rules() []*Rule { return s.rules }

// Len returns the number of rules in the set.
func (s *Set) Len() int { return len(s.rules) }

// RulesFor returns the rules with head predicate pred, in insertion
// order. The slice must not be mutated by callers.
func (s *Set) RulesFor(pred PredicateID) []*Rule { return s.byHead[pred] }

// Predicates returns the set of head predicates that have at least one
// rule, in first-occurrence order.
func (s *Set) Predicates() []PredicateID {
	seen := map[PredicateID]bool{}
	var out []PredicateID
	for _, r := range s.rules {
		p := r.Pred()
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Close computes and caches this set's stratification via strat, unless
// already cached.
func (s *Set) Close(strat Stratifier) error {
	if s.closedOK {
		return nil
	}
	st, err := strat.Stratify(s)
	if err != nil {
		return errors.Wrap(err, "rule: close")
	}
	s.strat = st
	s.closedOK = true
	return nil
}

// IsClosed reports whether Close has succeeded since the last mutation.
func (s *Set) IsClosed() bool { return s.closedOK }

// Stratification returns the cached stratification. Callers must call
// Close first; ErrNotClosed otherwise.
func (s *Set) Stratification() (*Stratification, error) {
	if !s.closedOK {
		return nil, ErrNotClosed
	}
	return s.strat, nil
}

// String renders every rule on its own line, in insertion order (spec §7
// "Rule-set pretty-printing").
func (s *Set) String() string {
	out := ""
	for i, r := range s.rules {
		if i > 0 {
			out += "\n"
		}
		out += r.String()
	}
	return out
}
