package rule

// RelationStore enumerates predicates with a non-empty ground extension
// (spec §6 "Consumed interfaces" — the relation store). The planner and
// the eager and linear inliners query it per predicate as they go; a
// predicate backed by facts is never
// eliminated or resolved as a callee (spec §8 invariant 3).
type RelationStore interface {
	HasFacts(pred PredicateID) bool
}

// StaticRelationStore is a fixed set of fact-bearing predicates, useful
// for tests and small embeddings that don't back onto a real extensional
// database (spec §7 "Fact-set introspection").
type StaticRelationStore map[PredicateID]bool

func (s StaticRelationStore) HasFacts(pred PredicateID) bool { return s[pred] }
