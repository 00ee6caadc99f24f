package convert

import (
	"dlinline/rule"
	"dlinline/unify"
)

// ReplaceRecord captures one resolution step: the witness the rule
// unifier produced when it replaced a target rule's tail atom with a
// source rule's body (spec §5.2).
type ReplaceRecord struct {
	ID      string
	Witness *unify.Witness
	Result  *rule.Rule
}

// DeleteRecord captures one rule dropped from the output, either as
// unsatisfiable during eager inlining (spec §4.7, §5.2) or, during bulk
// inlining, for having a quantified interpreted tail. It is distinct from
// ModelConverter's deletions because it needs no ground-fact replay, only
// a proof justification.
type DeleteRecord struct {
	ID     string
	Rule   *rule.Rule
	Reason string
}

// Proof accumulates the replacement and deletion steps a proof consumer
// needs to translate a derivation over the inlined rule set back into one
// over the original rules (spec §5.2).
type Proof struct {
	Replacements []ReplaceRecord
	Deletes      []DeleteRecord
}

// NewProof returns an empty proof converter.
func NewProof() *Proof {
	return &Proof{}
}

// RecordResolve appends a replacement record for one resolution step.
func (p *Proof) RecordResolve(w *unify.Witness, result *rule.Rule) {
	p.Replacements = append(p.Replacements, ReplaceRecord{ID: newRecordID(), Witness: w, Result: result})
}

// RecordDelete appends a deletion record with reason explaining why the
// rule could not survive (spec §4.7 "unsatisfiable interpreted tail").
func (p *Proof) RecordDelete(r *rule.Rule, reason string) {
	p.Deletes = append(p.Deletes, DeleteRecord{ID: newRecordID(), Rule: r, Reason: reason})
}
