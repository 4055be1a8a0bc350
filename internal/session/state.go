package session

import (
	"fmt"
	"sync"

	"github.com/labops/evidence-desk/internal/rules"
	"github.com/labops/evidence-desk/internal/submission"
	"github.com/labops/evidence-desk/pkg/utils"
)

// Field names one answer in the submission form
type Field string

const (
	FieldApplicant       Field = "applicant"
	FieldPaymentMethod   Field = "payment_method"
	FieldProjectID       Field = "project_id"
	FieldProjectText     Field = "project_text"
	FieldHighValue       Field = "high_value"
	FieldCategory        Field = "category"
	FieldChannel         Field = "channel"
	FieldReason          Field = "reason"
	FieldPrintKind       Field = "print_kind"
	FieldPublicationKind Field = "publication_kind"
	FieldUnderCeiling    Field = "under_ceiling"
)

// State owns the single mutable submission of one session. Every mutation
// goes through SetAnswer or SetFilePresence; reads hand out clones so the
// rule engine always works on an immutable snapshot.
type State struct {
	mu                sync.Mutex
	sub               *submission.Submission
	preserveApplicant bool
}

// NewState creates an empty session state
func NewState(preserveApplicant bool) *State {
	return &State{
		sub:               submission.New(),
		preserveApplicant: preserveApplicant,
	}
}

// SetAnswer applies one answer and invalidates dependent answers that no
// longer apply under the new value.
func (st *State) SetAnswer(field Field, value string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	switch field {
	case FieldApplicant:
		st.sub.Applicant = utils.SanitizeString(value)

	case FieldPaymentMethod:
		method := submission.PaymentMethod(value)
		if !method.IsValid() {
			return fmt.Errorf("%w: payment method %q", ErrInvalidValue, value)
		}
		st.setPaymentMethod(method)

	case FieldProjectID:
		if value != "" {
			if _, ok := submission.LookupProject(st.sub.PaymentMethod, value); !ok {
				return fmt.Errorf("%w: project %q is not selectable for %s", ErrInvalidValue, value, st.sub.PaymentMethod)
			}
		}
		st.sub.ProjectID = value
		st.sub.ProjectText = ""

	case FieldProjectText:
		st.sub.ProjectText = utils.SanitizeString(value)
		st.sub.ProjectID = ""

	case FieldHighValue:
		answer := submission.TriState(value)
		if value != "" && !answer.IsValid() {
			return fmt.Errorf("%w: high-value answer %q", ErrInvalidValue, value)
		}
		st.sub.HighValue = answer

	case FieldCategory:
		category := submission.Category(value)
		if value != "" && !category.IsValid() {
			return fmt.Errorf("%w: category %q", ErrInvalidValue, value)
		}
		if value != "" && !submission.CategorySelectable(category, st.sub.PaymentMethod) {
			return fmt.Errorf("%w: category %q is not selectable for %s", ErrInvalidValue, value, st.sub.PaymentMethod)
		}
		st.setCategory(category)

	case FieldChannel:
		channel := submission.PurchaseChannel(value)
		if value != "" && !channel.IsValid() {
			return fmt.Errorf("%w: purchase channel %q", ErrInvalidValue, value)
		}
		st.sub.Channel = channel

	case FieldReason:
		st.sub.Reason = utils.SanitizeString(value)

	case FieldPrintKind:
		kind := submission.PrintKind(value)
		if value != "" && !kind.IsValid() {
			return fmt.Errorf("%w: print kind %q", ErrInvalidValue, value)
		}
		st.sub.PrintKind = kind

	case FieldPublicationKind:
		kind := submission.PublicationKind(value)
		if value != "" && !kind.IsValid() {
			return fmt.Errorf("%w: publication kind %q", ErrInvalidValue, value)
		}
		st.sub.PublicationKind = kind

	case FieldUnderCeiling:
		answer := submission.TriState(value)
		if value != "" && !answer.IsValid() {
			return fmt.Errorf("%w: ceiling answer %q", ErrInvalidValue, value)
		}
		st.sub.UnderCeiling = answer

	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return nil
}

// setPaymentMethod changes the payment method and drops every dependent
// answer the new method invalidates: the project catalog differs per method,
// and category sub-answers only exist for specific method/category pairs.
func (st *State) setPaymentMethod(method submission.PaymentMethod) {
	if st.sub.PaymentMethod == method {
		return
	}
	st.sub.PaymentMethod = method
	st.sub.ProjectID = ""

	if st.sub.Category != "" && !submission.CategorySelectable(st.sub.Category, method) {
		st.setCategory("")
		return
	}
	st.clearInapplicableSubAnswers()
}

// setCategory changes the category and resets its sub-answers along with the
// presence flags of category-specific slots; base and gate uploads survive a
// category switch.
func (st *State) setCategory(category submission.Category) {
	if st.sub.Category == category {
		return
	}
	st.sub.Category = category
	st.sub.Channel = submission.ChannelUnset
	st.sub.Reason = ""
	st.sub.PrintKind = submission.PrintKindUnset
	st.sub.PublicationKind = submission.PublicationKindUnset
	st.sub.UnderCeiling = submission.TriUnanswered

	for key := range st.sub.Files {
		switch key {
		case submission.SlotAuditProof, submission.SlotTaxInvoice, submission.SlotStatement:
		default:
			delete(st.sub.Files, key)
		}
	}
}

// clearInapplicableSubAnswers drops sub-answers whose question disappeared
// under the current method/category pair
func (st *State) clearInapplicableSubAnswers() {
	if !channelApplies(st.sub.PaymentMethod, st.sub.Category) {
		st.sub.Channel = submission.ChannelUnset
	}
	if st.sub.Category != submission.CategoryLabOperations {
		st.sub.UnderCeiling = submission.TriUnanswered
	}
}

// channelApplies reports whether the purchase-channel question is asked for
// a method/category pair
func channelApplies(method submission.PaymentMethod, category submission.Category) bool {
	switch category {
	case submission.CategoryLabEnvironment, submission.CategoryOfficeEquipment:
		return method.IsCard()
	case submission.CategoryLabOperations:
		return method.IsCard()
	}
	return false
}

// SetFilePresence records whether a file is present in a document slot
func (st *State) SetFilePresence(key submission.SlotKey, present bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if !submission.KnownSlot(key) {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, key)
	}
	if present {
		st.sub.Files[key] = true
	} else {
		delete(st.sub.Files, key)
	}
	return nil
}

// Snapshot returns an immutable copy of the current submission
func (st *State) Snapshot() *submission.Submission {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sub.Clone()
}

// Evaluate recomputes the requirement set and verdict for the current
// snapshot
func (st *State) Evaluate() (rules.Evaluation, submission.Verdict) {
	snapshot := st.Snapshot()
	eval := rules.Evaluate(snapshot)
	return eval, rules.Aggregate(snapshot, eval)
}

// CurrentVerdict returns the eligibility verdict for the current snapshot
func (st *State) CurrentVerdict() submission.Verdict {
	_, verdict := st.Evaluate()
	return verdict
}

// Reset clears the submission after a successful send. The applicant
// identity survives when the session is configured to preserve it.
func (st *State) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()

	applicant := st.sub.Applicant
	st.sub = submission.New()
	if st.preserveApplicant {
		st.sub.Applicant = applicant
	}
}
