package rule

// TarjanStratifier computes the stratification of spec §3/§6 by running
// Tarjan's strongly-connected-components algorithm over the
// "head-depends-on-positive-tail" graph: an edge p -> q exists whenever
// some rule in the set has head p and a positive uninterpreted tail atom
// over q. Only predicates that themselves head at least one rule in the
// set are graph nodes; a positive tail atom over a predicate with no
// rules in this particular set (e.g. it is backed only by facts, or lives
// in a different, already-closed rule set) is not a dependency edge for
// this stratification, mirroring how the cycle breaker only ever asks a
// sub-rule-set (spec §4.4) to stratify itself.
//
// Tarjan's algorithm pops a component only once every node it can reach
// has been fully explored, so components are emitted in the order
// dependencies finish before their dependents — exactly the "topological
// order, leaves first" spec §3 and §4.6 require, with no separate
// reversal step.
//
// This is a from-scratch, recursive implementation of a standard graph
// algorithm with no graph library behind it (mwelt-contki and
// rfielding-philosopher carry no graph dependency, and
// open-policy-agent-opa's own dependency ordering doesn't factor out a
// reusable SCC type either).
type TarjanStratifier struct{}

func (TarjanStratifier) Stratify(s *Set) (*Stratification, error) {
	nodes := s.Predicates()
	inGraph := make(map[PredicateID]bool, len(nodes))
	for _, p := range nodes {
		inGraph[p] = true
	}

	edges := make(map[PredicateID][]PredicateID, len(nodes))
	for _, p := range nodes {
		seen := map[PredicateID]bool{}
		for _, r := range s.RulesFor(p) {
			for _, i := range r.PositiveTailIndices() {
				q := r.TailAtom(i).Pred()
				if inGraph[q] && !seen[q] {
					seen[q] = true
					edges[p] = append(edges[p], q)
				}
			}
		}
	}

	tj := &tarjan{
		edges:   edges,
		index:   make(map[PredicateID]int),
		lowlink: make(map[PredicateID]int),
		onStack: make(map[PredicateID]bool),
	}
	for _, p := range nodes {
		if _, visited := tj.index[p]; !visited {
			tj.strongConnect(p)
		}
	}

	// A genuine cycle through a single predicate collapses to a singleton
	// SCC indistinguishable, by member count alone, from an acyclic one:
	// Tarjan never revisits v's own self-edge as a back-edge to an
	// unfinished component, since v is already fully indexed by the time
	// its own edge list is walked. Flag it here from the edge list instead.
	strata := make([]Stratum, len(tj.strata))
	for i, s := range tj.strata {
		selfRecursive := false
		if len(s.Members) == 1 {
			p := s.Members[0]
			for _, q := range edges[p] {
				if q == p {
					selfRecursive = true
					break
				}
			}
		}
		strata[i] = Stratum{Members: s.Members, SelfRecursive: selfRecursive}
	}
	return NewStratification(strata), nil
}

type tarjan struct {
	edges   map[PredicateID][]PredicateID
	index   map[PredicateID]int
	lowlink map[PredicateID]int
	onStack map[PredicateID]bool
	stack   []PredicateID
	counter int
	strata  []Stratum
}

func (tj *tarjan) strongConnect(v PredicateID) {
	tj.index[v] = tj.counter
	tj.lowlink[v] = tj.counter
	tj.counter++
	tj.stack = append(tj.stack, v)
	tj.onStack[v] = true

	for _, w := range tj.edges[v] {
		if _, visited := tj.index[w]; !visited {
			tj.strongConnect(w)
			if tj.lowlink[w] < tj.lowlink[v] {
				tj.lowlink[v] = tj.lowlink[w]
			}
		} else if tj.onStack[w] {
			if tj.index[w] < tj.lowlink[v] {
				tj.lowlink[v] = tj.index[w]
			}
		}
	}

	if tj.lowlink[v] != tj.index[v] {
		return
	}

	var members []PredicateID
	for {
		n := len(tj.stack) - 1
		w := tj.stack[n]
		tj.stack = tj.stack[:n]
		tj.onStack[w] = false
		members = append(members, w)
		if w == v {
			break
		}
	}
	tj.strata = append(tj.strata, Stratum{Members: members})
}
