// Package convert records the bookkeeping spec §5 needs to translate
// answers over an inlined rule set back to the original one: a model
// converter for the ground facts a deleted rule can no longer produce
// (§5.1), and a proof converter for the resolution steps a derivation can
// replay (§5.2). Grounded on the horn_subsume_model_converter and
// replace_proof_converter collaborators referenced by
// dl_mk_rule_inliner.cpp's m_mc/m_pc fields.
package convert

import (
	"github.com/google/uuid"

	"dlinline/rule"
	"dlinline/unify"
)

// ResolvedRecord captures one resolution step from the model converter's
// point of view: the source rule's head predicate is now only derivable
// through result, so reconstructing a model for it requires the subsumed
// form pred(x̄) := pred(x̄) ∨ ∃ȳ(source_body(ȳ) ∧ φ) (spec §6 "model
// converter", §8's round-trip property).
type ResolvedRecord struct {
	ID      string
	Witness *unify.Witness
	Result  *rule.Rule
}

// ModelConverter accumulates the bookkeeping a model computed over the
// inlined rule set needs to explain answers over the original one: the
// rules removed outright because they turned out unsatisfiable during
// eager inlining (spec §4.7), and the resolution steps that subsumed a
// predicate's rules into their callers. A rule retired by linear inlining
// after its only caller absorbed it (spec §4.8) is not added to Deleted;
// only that absorbing resolution is recorded, in Resolved.
type ModelConverter struct {
	Deleted  []*rule.Rule
	Resolved []ResolvedRecord
}

// NewModelConverter returns an empty converter.
func NewModelConverter() *ModelConverter {
	return &ModelConverter{}
}

// RecordDelete registers r's removal.
func (m *ModelConverter) RecordDelete(r *rule.Rule) {
	m.Deleted = append(m.Deleted, r)
}

// RecordResolve registers one resolution step, mirroring Proof.RecordResolve
// so the subsumed-horn model form is reconstructible from the model
// converter alone, without cross-referencing the proof converter.
func (m *ModelConverter) RecordResolve(w *unify.Witness, result *rule.Rule) {
	m.Resolved = append(m.Resolved, ResolvedRecord{ID: newRecordID(), Witness: w, Result: result})
}

// newRecordID mints a stable identifier for a single recorded event.
func newRecordID() string {
	return uuid.NewString()
}
