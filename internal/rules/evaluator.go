package rules

import (
	"strings"

	"github.com/labops/evidence-desk/internal/submission"
)

// Evaluation is the full requirement picture for one submission snapshot
type Evaluation struct {
	// Slots holds every slot currently required, keyed by slot key
	Slots map[submission.SlotKey]submission.DocumentSlot

	GateSatisfied     bool
	BaseSatisfied     bool
	CategorySatisfied bool

	// GateDetail, BaseDetail and CategoryDetail name the unmet condition of
	// the corresponding section when it is unsatisfied
	GateDetail     string
	BaseDetail     string
	CategoryDetail string
}

// SortedSlots returns the required slots in the fixed form order
func (e Evaluation) SortedSlots() []submission.DocumentSlot {
	return submission.SortSlots(e.Slots)
}

// Evaluate recomputes the full required-slot set and per-section
// satisfaction from scratch. It is deterministic and side-effect-free;
// nothing is memoized, so a changed upstream answer can never leave a stale
// requirement behind.
//
// The high-value gate dominates: while it is unsatisfied the base and
// category sections are unreachable and contribute neither slots nor
// satisfaction.
func Evaluate(s *submission.Submission) Evaluation {
	eval := Evaluation{Slots: make(map[submission.SlotKey]submission.DocumentSlot)}

	evaluateGate(s, &eval)
	if !eval.GateSatisfied {
		return eval
	}

	evaluateBase(s, &eval)
	evaluateCategory(s, &eval)
	return eval
}

// evaluateGate applies the high-value gate: amounts at or above the
// threshold need the pre-purchase audit proof before anything else opens.
func evaluateGate(s *submission.Submission, eval *Evaluation) {
	switch s.HighValue {
	case submission.TriNo:
		eval.GateSatisfied = true
	case submission.TriYes:
		proof := submission.NewSlot(submission.SlotAuditProof, true, s.HasFile(submission.SlotAuditProof))
		eval.Slots[proof.Key] = proof
		eval.GateSatisfied = proof.Present
		if !proof.Present {
			eval.GateDetail = "pre-purchase audit proof required for high-value payments"
		}
	default:
		eval.GateDetail = "high-value question unanswered"
	}
}

// evaluateBase applies the payment-method base documents: cards need only
// the statement, tax invoices need the invoice and the statement.
func evaluateBase(s *submission.Submission, eval *Evaluation) {
	keys := []submission.SlotKey{submission.SlotStatement}
	if s.PaymentMethod == submission.PaymentTaxInvoice {
		keys = []submission.SlotKey{submission.SlotTaxInvoice, submission.SlotStatement}
	}

	eval.BaseSatisfied = true
	var missing []string
	for _, key := range keys {
		slot := submission.NewSlot(key, true, s.HasFile(key))
		eval.Slots[key] = slot
		if !slot.Present {
			eval.BaseSatisfied = false
			missing = append(missing, slot.Label)
		}
	}
	if !eval.BaseSatisfied {
		eval.BaseDetail = strings.Join(missing, ", ") + " missing"
	}
}

// evaluateCategory dispatches to the category rule table
func evaluateCategory(s *submission.Submission, eval *Evaluation) {
	if s.Category == "" {
		eval.CategoryDetail = "expense category not selected"
		return
	}
	if !submission.CategorySelectable(s.Category, s.PaymentMethod) {
		eval.CategoryDetail = "expense category not available for this payment method"
		return
	}

	rule, ok := categoryRules[s.Category]
	if !ok {
		eval.CategoryDetail = "unknown expense category"
		return
	}

	result := rule(s)
	for _, slot := range result.Slots {
		eval.Slots[slot.Key] = slot
	}
	eval.CategorySatisfied = result.Satisfied
	eval.CategoryDetail = result.Detail
}
