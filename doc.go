// Package dlinline resolves Horn-clause rules into other rules' bodies,
// eliminating predicates a query never needs to see materialized. It is a
// direct-style reimplementation of the rule-inlining pass Z3's Datalog
// fixedpoint engine runs as a preprocessing step: bulk-resolve every
// predicate that provably won't blow up, sweep once for any remaining
// unique single-definition rewrite, then fold linear call chains.
//
// The pass is exposed as a single Pass value built by New; everything
// else (rule.Set, manager.RuleManager, plan.Planner, engine.Engine,
// convert.ModelConverter, convert.Proof) is a public collaborator a host
// can also use directly.
package dlinline
