package session

import (
	"testing"

	"github.com/labops/evidence-desk/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fillReadyState(t *testing.T) *State {
	t.Helper()
	st := NewState(true)

	answers := []struct {
		field Field
		value string
	}{
		{FieldApplicant, "Kim"},
		{FieldPaymentMethod, string(submission.PaymentResearchCard)},
		{FieldProjectID, "NRF-A"},
		{FieldHighValue, string(submission.TriNo)},
		{FieldCategory, string(submission.CategoryMaterials)},
	}
	for _, a := range answers {
		require.NoError(t, st.SetAnswer(a.field, a.value))
	}
	require.NoError(t, st.SetFilePresence(submission.SlotStatement, true))
	return st
}

func TestState_SetAnswerValidation(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr error
	}{
		{
			name:    "unknown field rejected",
			field:   "favorite_color",
			value:   "blue",
			wantErr: ErrUnknownField,
		},
		{
			name:    "invalid payment method rejected",
			field:   FieldPaymentMethod,
			value:   "CASH",
			wantErr: ErrInvalidValue,
		},
		{
			name:    "invalid channel rejected",
			field:   FieldChannel,
			value:   "CARRIER_PIGEON",
			wantErr: ErrInvalidValue,
		},
		{
			name:  "channel can be cleared back to unanswered",
			field: FieldChannel,
			value: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState(true)
			err := st.SetAnswer(tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestState_LabOperationsUnreachableOnTaxInvoice(t *testing.T) {
	st := NewState(true)
	require.NoError(t, st.SetAnswer(FieldPaymentMethod, string(submission.PaymentTaxInvoice)))

	err := st.SetAnswer(FieldCategory, string(submission.CategoryLabOperations))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestState_ProjectMustComeFromMethodCatalog(t *testing.T) {
	st := NewState(true)
	require.NoError(t, st.SetAnswer(FieldPaymentMethod, string(submission.PaymentCorporateCard)))

	err := st.SetAnswer(FieldProjectID, "NRF-A")
	assert.ErrorIs(t, err, ErrInvalidValue)

	assert.NoError(t, st.SetAnswer(FieldProjectID, "CORP-LINC"))
}

func TestState_PaymentMethodChangeInvalidatesDependents(t *testing.T) {
	st := NewState(true)
	require.NoError(t, st.SetAnswer(FieldPaymentMethod, string(submission.PaymentResearchCard)))
	require.NoError(t, st.SetAnswer(FieldProjectID, "NRF-A"))
	require.NoError(t, st.SetAnswer(FieldCategory, string(submission.CategoryLabOperations)))
	require.NoError(t, st.SetAnswer(FieldUnderCeiling, string(submission.TriYes)))
	require.NoError(t, st.SetAnswer(FieldChannel, string(submission.ChannelOnline)))
	require.NoError(t, st.SetFilePresence(submission.SlotOrderCapture, true))

	require.NoError(t, st.SetAnswer(FieldPaymentMethod, string(submission.PaymentTaxInvoice)))

	snapshot := st.Snapshot()
	assert.Empty(t, snapshot.ProjectID, "project catalog differs per method")
	assert.Empty(t, string(snapshot.Category), "lab operations is unreachable on tax invoice")
	assert.Equal(t, submission.ChannelUnset, snapshot.Channel)
	assert.Equal(t, submission.TriUnanswered, snapshot.UnderCeiling)
	assert.False(t, snapshot.HasFile(submission.SlotOrderCapture))
}

func TestState_CategoryChangeClearsSubAnswers(t *testing.T) {
	st := NewState(true)
	require.NoError(t, st.SetAnswer(FieldPaymentMethod, string(submission.PaymentResearchCard)))
	require.NoError(t, st.SetAnswer(FieldCategory, string(submission.CategoryOfficeEquipment)))
	require.NoError(t, st.SetAnswer(FieldChannel, string(submission.ChannelOnline)))
	require.NoError(t, st.SetAnswer(FieldReason, "monitor arm"))
	require.NoError(t, st.SetFilePresence(submission.SlotStatement, true))
	require.NoError(t, st.SetFilePresence(submission.SlotOrderCapture, true))

	require.NoError(t, st.SetAnswer(FieldCategory, string(submission.CategoryMaterials)))

	snapshot := st.Snapshot()
	assert.Equal(t, submission.ChannelUnset, snapshot.Channel)
	assert.Empty(t, snapshot.Reason)
	assert.True(t, snapshot.HasFile(submission.SlotStatement), "base documents survive a category switch")
	assert.False(t, snapshot.HasFile(submission.SlotOrderCapture), "category proofs do not")
}

func TestState_CurrentVerdict(t *testing.T) {
	st := fillReadyState(t)

	verdict := st.CurrentVerdict()
	assert.True(t, verdict.Ready)
	assert.Empty(t, verdict.Missing)
}

func TestState_SetFilePresence(t *testing.T) {
	st := fillReadyState(t)

	err := st.SetFilePresence("mystery_slot", true)
	assert.ErrorIs(t, err, ErrUnknownSlot)

	require.NoError(t, st.SetFilePresence(submission.SlotStatement, false))
	assert.False(t, st.CurrentVerdict().Ready)
}

func TestState_Reset(t *testing.T) {
	t.Run("preserves applicant when configured", func(t *testing.T) {
		st := fillReadyState(t)
		st.Reset()

		snapshot := st.Snapshot()
		assert.Equal(t, "Kim", snapshot.Applicant)
		assert.Empty(t, string(snapshot.PaymentMethod))
		assert.Empty(t, snapshot.Files)
	})

	t.Run("clears applicant otherwise", func(t *testing.T) {
		st := NewState(false)
		require.NoError(t, st.SetAnswer(FieldApplicant, "Kim"))
		st.Reset()

		assert.Empty(t, st.Snapshot().Applicant)
	})
}

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(true, zap.NewNop())

	id, state := m.Open()
	require.NotNil(t, state)

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, state, got)

	m.Close(id)
	_, err = m.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}
