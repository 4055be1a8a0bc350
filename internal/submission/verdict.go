package submission

// ReasonCode names one unmet gate in the eligibility verdict. All codes are
// recoverable by the applicant; none are process errors.
type ReasonCode string

const (
	ReasonMissingGate                ReasonCode = "MISSING_GATE"
	ReasonMissingBaseDocument        ReasonCode = "MISSING_BASE_DOCUMENT"
	ReasonMissingCategoryRequirement ReasonCode = "MISSING_CATEGORY_REQUIREMENT"
	ReasonInvalidProjectText         ReasonCode = "INVALID_PROJECT_TEXT"
	ReasonUnresolvedProject          ReasonCode = "UNRESOLVED_PROJECT"
)

// Reason is one failing gate with the unmet condition named
type Reason struct {
	Code   ReasonCode `json:"code"`
	Detail string     `json:"detail"`
}

// Verdict is the aggregate readiness result. Missing is ordered by gate
// priority and lists every failing reachable gate, not just the first.
type Verdict struct {
	Ready   bool     `json:"ready"`
	Missing []Reason `json:"missing"`
}

// Has reports whether the verdict lists a reason with the given code
func (v Verdict) Has(code ReasonCode) bool {
	for _, r := range v.Missing {
		if r.Code == code {
			return true
		}
	}
	return false
}
