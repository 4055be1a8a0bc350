// Package rules implements the document-requirement rule engine: a pure
// decision core that maps a submission snapshot to the set of required
// document slots and an eligibility verdict. It performs no I/O and never
// errors for a reachable combination of answers; incompleteness is reported
// as data.
package rules

import (
	"fmt"

	"github.com/labops/evidence-desk/internal/submission"
)

// ruleResult is one category rule's contribution: the extra slots it
// requires right now and whether the category's conditions are met.
type ruleResult struct {
	Slots     []submission.DocumentSlot
	Satisfied bool
	// Detail names the unmet sub-condition when Satisfied is false
	Detail string
}

// categoryRule computes a category's extra requirements from the current
// answers. Rules must treat an unanswered sub-question as not yet satisfied,
// never as a defaulted branch.
type categoryRule func(s *submission.Submission) ruleResult

var categoryRules = map[submission.Category]categoryRule{
	submission.CategoryMaterials:       materialsRule,
	submission.CategoryLabEnvironment:  labEnvironmentRule,
	submission.CategoryOfficeEquipment: officeEquipmentRule,
	submission.CategoryConferenceFee:   conferenceFeeRule,
	submission.CategoryPrintingCost:    printingCostRule,
	submission.CategoryPublicationFee:  publicationFeeRule,
	submission.CategoryLabOperations:   labOperationsRule,
}

// materialsRule: base documents are enough, nothing extra
func materialsRule(_ *submission.Submission) ruleResult {
	return ruleResult{Satisfied: true}
}

// labEnvironmentRule: tax-invoice purchases need only a written reason; card
// purchases additionally need the channel-specific purchase proof.
func labEnvironmentRule(s *submission.Submission) ruleResult {
	if s.PaymentMethod == submission.PaymentTaxInvoice {
		if s.Reason == "" {
			return ruleResult{Detail: "purchase reason not written"}
		}
		return ruleResult{Satisfied: true}
	}

	if s.Channel == submission.ChannelUnset {
		return ruleResult{Detail: "purchase channel not selected"}
	}

	proofKey := submission.SlotOrderCapture
	if s.Channel == submission.ChannelOffline {
		proofKey = submission.SlotDetailReceipt
	}
	proof := submission.NewSlot(proofKey, true, s.HasFile(proofKey))

	result := ruleResult{Slots: []submission.DocumentSlot{proof}}
	switch {
	case !proof.Present && s.Reason == "":
		result.Detail = fmt.Sprintf("%s missing and purchase reason not written", submission.SlotLabel(proofKey))
	case !proof.Present:
		result.Detail = fmt.Sprintf("%s missing", submission.SlotLabel(proofKey))
	case s.Reason == "":
		result.Detail = "purchase reason not written"
	default:
		result.Satisfied = true
	}
	return result
}

// officeEquipmentRule: a reason is always required; online purchases also
// need the order capture. Tax-invoice purchases have no channel question and
// count as offline. The card channel question has no default: unanswered
// blocks.
func officeEquipmentRule(s *submission.Submission) ruleResult {
	channel := s.Channel
	if s.PaymentMethod == submission.PaymentTaxInvoice {
		channel = submission.ChannelOffline
	}
	if channel == submission.ChannelUnset {
		return ruleResult{Detail: "purchase channel not selected"}
	}

	result := ruleResult{}
	captureOK := true
	if channel == submission.ChannelOnline {
		capture := submission.NewSlot(submission.SlotOrderCapture, true, s.HasFile(submission.SlotOrderCapture))
		result.Slots = append(result.Slots, capture)
		captureOK = capture.Present
	}

	switch {
	case s.Reason == "" && !captureOK:
		result.Detail = "purchase reason not written and order history capture missing"
	case s.Reason == "":
		result.Detail = "purchase reason not written"
	case !captureOK:
		result.Detail = "order history capture missing"
	default:
		result.Satisfied = true
	}
	return result
}

// conferenceFeeRule: registration proof, date/venue proof and the fee
// schedule are all required.
func conferenceFeeRule(s *submission.Submission) ruleResult {
	keys := []submission.SlotKey{
		submission.SlotConfRegistration,
		submission.SlotConfSchedule,
		submission.SlotConfFeeTable,
	}

	result := ruleResult{Satisfied: true}
	for _, key := range keys {
		slot := submission.NewSlot(key, true, s.HasFile(key))
		result.Slots = append(result.Slots, slot)
		if !slot.Present {
			result.Satisfied = false
		}
	}
	if !result.Satisfied {
		result.Detail = "conference registration proof, date/venue capture and fee schedule are all required"
	}
	return result
}

// printingCostRule: the deliverable proof depends on the chosen print kind
func printingCostRule(s *submission.Submission) ruleResult {
	var proofKey submission.SlotKey
	switch s.PrintKind {
	case submission.PrintKindPoster:
		proofKey = submission.SlotPosterFile
	case submission.PrintKindBook:
		proofKey = submission.SlotBookCover
	default:
		return ruleResult{Detail: "print kind not selected"}
	}

	proof := submission.NewSlot(proofKey, true, s.HasFile(proofKey))
	result := ruleResult{Slots: []submission.DocumentSlot{proof}, Satisfied: proof.Present}
	if !proof.Present {
		result.Detail = fmt.Sprintf("%s missing", submission.SlotLabel(proofKey))
	}
	return result
}

// publicationFeeRule: paper cover for publication/proofreading fees, figure
// file for illustration fees
func publicationFeeRule(s *submission.Submission) ruleResult {
	var proofKey submission.SlotKey
	switch s.PublicationKind {
	case submission.PublicationKindPaper:
		proofKey = submission.SlotPaperCover
	case submission.PublicationKindIllustration:
		proofKey = submission.SlotFigureFile
	default:
		return ruleResult{Detail: "publication cost kind not selected"}
	}

	proof := submission.NewSlot(proofKey, true, s.HasFile(proofKey))
	result := ruleResult{Slots: []submission.DocumentSlot{proof}, Satisfied: proof.Present}
	if !proof.Present {
		result.Detail = fmt.Sprintf("%s missing", submission.SlotLabel(proofKey))
	}
	return result
}

// labOperationsRule: card only, claimable only under the amount ceiling, and
// the purchase proof depends on the channel. A negated or unanswered ceiling
// answer blocks regardless of any uploaded file.
func labOperationsRule(s *submission.Submission) ruleResult {
	if !s.PaymentMethod.IsCard() {
		return ruleResult{Detail: "lab operations costs are claimable on card payments only"}
	}

	switch s.UnderCeiling {
	case submission.TriUnanswered:
		return ruleResult{Detail: "amount ceiling question unanswered"}
	case submission.TriNo:
		return ruleResult{Detail: fmt.Sprintf("amount exceeds the %d KRW ceiling for lab operations costs", submission.OperationsCeiling)}
	}

	if s.Channel == submission.ChannelUnset {
		return ruleResult{Detail: "purchase channel not selected"}
	}

	proofKey := submission.SlotOrderCapture
	if s.Channel == submission.ChannelOffline {
		proofKey = submission.SlotDetailReceipt
	}
	proof := submission.NewSlot(proofKey, true, s.HasFile(proofKey))
	result := ruleResult{Slots: []submission.DocumentSlot{proof}, Satisfied: proof.Present}
	if !proof.Present {
		result.Detail = fmt.Sprintf("%s missing", submission.SlotLabel(proofKey))
	}
	return result
}
