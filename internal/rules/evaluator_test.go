package rules

import (
	"testing"

	"github.com/labops/evidence-desk/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readyCardSubmission returns a research-card materials submission with
// every requirement satisfied
func readyCardSubmission() *submission.Submission {
	s := submission.New()
	s.Applicant = "Kim"
	s.PaymentMethod = submission.PaymentResearchCard
	s.ProjectID = "NRF-A"
	s.HighValue = submission.TriNo
	s.Category = submission.CategoryMaterials
	s.Files[submission.SlotStatement] = true
	return s
}

func TestEvaluate_BaseDocuments(t *testing.T) {
	tests := []struct {
		name      string
		method    submission.PaymentMethod
		wantSlots []submission.SlotKey
	}{
		{
			name:      "corporate card needs the statement only",
			method:    submission.PaymentCorporateCard,
			wantSlots: []submission.SlotKey{submission.SlotStatement},
		},
		{
			name:      "research card needs the statement only",
			method:    submission.PaymentResearchCard,
			wantSlots: []submission.SlotKey{submission.SlotStatement},
		},
		{
			name:      "tax invoice needs the invoice and the statement",
			method:    submission.PaymentTaxInvoice,
			wantSlots: []submission.SlotKey{submission.SlotTaxInvoice, submission.SlotStatement},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := readyCardSubmission()
			s.PaymentMethod = tt.method
			s.ProjectID = ""
			s.ProjectText = "Manual Project"
			s.Files = map[submission.SlotKey]bool{}

			eval := Evaluate(s)
			assert.False(t, eval.BaseSatisfied)
			for _, key := range tt.wantSlots {
				slot, ok := eval.Slots[key]
				require.True(t, ok, "expected slot %s", key)
				assert.True(t, slot.Required)
				assert.False(t, slot.Present)
			}
		})
	}
}

func TestEvaluate_HighValueGate(t *testing.T) {
	t.Run("unsatisfied gate hides base and category sections", func(t *testing.T) {
		s := readyCardSubmission()
		s.HighValue = submission.TriYes

		eval := Evaluate(s)
		assert.False(t, eval.GateSatisfied)
		assert.False(t, eval.BaseSatisfied)
		assert.False(t, eval.CategorySatisfied)

		require.Len(t, eval.Slots, 1)
		_, ok := eval.Slots[submission.SlotAuditProof]
		assert.True(t, ok)
	})

	t.Run("audit proof opens the gate", func(t *testing.T) {
		s := readyCardSubmission()
		s.HighValue = submission.TriYes
		s.Files[submission.SlotAuditProof] = true

		eval := Evaluate(s)
		assert.True(t, eval.GateSatisfied)
		assert.True(t, eval.BaseSatisfied)
		assert.True(t, eval.CategorySatisfied)
	})

	t.Run("unanswered high-value question blocks without assuming a branch", func(t *testing.T) {
		s := readyCardSubmission()
		s.HighValue = submission.TriUnanswered

		eval := Evaluate(s)
		assert.False(t, eval.GateSatisfied)
		assert.Empty(t, eval.Slots)
		assert.Equal(t, "high-value question unanswered", eval.GateDetail)
	})
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := readyCardSubmission()
	s.Category = submission.CategoryConferenceFee
	s.Files[submission.SlotConfRegistration] = true

	first := Evaluate(s)
	second := Evaluate(s)

	assert.Equal(t, first, second)
}

func TestEvaluate_NoStaleStateAcrossAnswerChanges(t *testing.T) {
	// A category evaluated once must not leave requirements behind after
	// the payment method changes the rule outcome
	s := readyCardSubmission()
	s.Category = submission.CategoryLabEnvironment
	s.Channel = submission.ChannelOnline
	s.Reason = "bench repair supplies"

	eval := Evaluate(s)
	_, ok := eval.Slots[submission.SlotOrderCapture]
	require.True(t, ok)

	s.PaymentMethod = submission.PaymentTaxInvoice
	s.ProjectID = ""
	s.ProjectText = "Manual Project"

	eval = Evaluate(s)
	_, ok = eval.Slots[submission.SlotOrderCapture]
	assert.False(t, ok, "tax invoice lab environment requires no purchase proof")
	assert.True(t, eval.CategorySatisfied)
}

func TestEvaluate_CategoryUnselected(t *testing.T) {
	s := readyCardSubmission()
	s.Category = ""

	eval := Evaluate(s)
	assert.False(t, eval.CategorySatisfied)
	assert.Equal(t, "expense category not selected", eval.CategoryDetail)
}

func TestEvaluate_CategoryNotSelectableForMethod(t *testing.T) {
	s := readyCardSubmission()
	s.PaymentMethod = submission.PaymentTaxInvoice
	s.ProjectID = ""
	s.ProjectText = "Manual Project"
	s.Category = submission.CategoryLabOperations
	s.Files[submission.SlotTaxInvoice] = true

	eval := Evaluate(s)
	assert.False(t, eval.CategorySatisfied)
	assert.Equal(t, "expense category not available for this payment method", eval.CategoryDetail)
}
