package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectableCategories(t *testing.T) {
	tests := []struct {
		name              string
		method            PaymentMethod
		wantLabOps        bool
		wantCategoryCount int
	}{
		{
			name:              "corporate card offers lab operations",
			method:            PaymentCorporateCard,
			wantLabOps:        true,
			wantCategoryCount: 7,
		},
		{
			name:              "research card offers lab operations",
			method:            PaymentResearchCard,
			wantLabOps:        true,
			wantCategoryCount: 7,
		},
		{
			name:              "tax invoice never offers lab operations",
			method:            PaymentTaxInvoice,
			wantLabOps:        false,
			wantCategoryCount: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := SelectableCategories(tt.method)
			assert.Len(t, categories, tt.wantCategoryCount)
			assert.Equal(t, tt.wantLabOps, CategorySelectable(CategoryLabOperations, tt.method))
		})
	}
}

func TestProjectCatalog(t *testing.T) {
	t.Run("is a pure function of the payment method", func(t *testing.T) {
		first := ProjectCatalog(PaymentResearchCard)
		second := ProjectCatalog(PaymentResearchCard)
		assert.Equal(t, first, second)
	})

	t.Run("corporate card offers only shared accounts", func(t *testing.T) {
		catalog := ProjectCatalog(PaymentCorporateCard)
		require.Len(t, catalog, 2)
		for _, p := range catalog {
			assert.Contains(t, p.ID, "CORP")
		}
	})

	t.Run("tax invoice offers every project", func(t *testing.T) {
		catalog := ProjectCatalog(PaymentTaxInvoice)
		assert.Len(t, catalog, 5)
	})

	t.Run("lookup rejects projects outside the method catalog", func(t *testing.T) {
		_, ok := LookupProject(PaymentCorporateCard, "NRF-A")
		assert.False(t, ok)

		_, ok = LookupProject(PaymentResearchCard, "NRF-A")
		assert.True(t, ok)
	})
}

func TestSlotCatalog(t *testing.T) {
	t.Run("every ordered slot has metadata", func(t *testing.T) {
		for _, key := range slotOrder {
			assert.True(t, KnownSlot(key), "slot %s has no metadata", key)
			assert.NotEmpty(t, SlotLabel(key))
		}
	})

	t.Run("poster slot accepts pdf only", func(t *testing.T) {
		assert.True(t, AcceptsExtension(SlotPosterFile, "pdf"))
		assert.False(t, AcceptsExtension(SlotPosterFile, "png"))
	})

	t.Run("unknown slot accepts nothing", func(t *testing.T) {
		assert.False(t, AcceptsExtension("mystery", "pdf"))
	})

	t.Run("sort follows the fixed form order", func(t *testing.T) {
		slots := map[SlotKey]DocumentSlot{
			SlotStatement:  NewSlot(SlotStatement, true, false),
			SlotAuditProof: NewSlot(SlotAuditProof, true, false),
		}
		ordered := SortSlots(slots)
		require.Len(t, ordered, 2)
		assert.Equal(t, SlotAuditProof, ordered[0].Key)
		assert.Equal(t, SlotStatement, ordered[1].Key)
	})
}

func TestSubmissionClone(t *testing.T) {
	s := New()
	s.Applicant = "Kim"
	s.Files[SlotStatement] = true

	clone := s.Clone()
	clone.Files[SlotAuditProof] = true
	clone.Applicant = "Lee"

	assert.Equal(t, "Kim", s.Applicant)
	assert.False(t, s.HasFile(SlotAuditProof))
	assert.True(t, clone.HasFile(SlotStatement))
}

func TestResolvedProject(t *testing.T) {
	s := New()
	s.PaymentMethod = PaymentResearchCard

	s.ProjectID = "NRF-A"
	assert.Equal(t, "NRF Project A", s.ResolvedProject())

	s.ProjectID = ""
	s.ProjectText = "2X00000 New Project"
	assert.Equal(t, "2X00000 New Project", s.ResolvedProject())
}
