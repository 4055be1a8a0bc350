package delivery

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/labops/evidence-desk/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func testRecord(sessionID string) *submission.Record {
	return &submission.Record{
		SessionID:     sessionID,
		Applicant:     "Kim",
		PaymentMethod: submission.PaymentResearchCard,
		Project:       "NRF Project A",
		Category:      submission.CategoryMaterials,
		HighValue:     false,
		Documents:     []submission.SlotKey{submission.SlotStatement},
		SubmittedAt:   time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestLedger_Deliver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	ledger := NewLedger(path, "Submissions", zap.NewNop())

	t.Run("creates the workbook with a header on first append", func(t *testing.T) {
		err := ledger.Deliver(context.Background(), testRecord("s-1"))
		require.NoError(t, err)
		assert.FileExists(t, path)

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Submissions")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Applicant", rows[0][2])
		assert.Equal(t, "Kim", rows[1][2])
		assert.Equal(t, "NRF Project A", rows[1][4])
		assert.Equal(t, "statement", rows[1][7])
	})

	t.Run("appends below existing rows", func(t *testing.T) {
		err := ledger.Deliver(context.Background(), testRecord("s-2"))
		require.NoError(t, err)

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Submissions")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "s-1", rows[1][1])
		assert.Equal(t, "s-2", rows[2][1])
	})
}

func TestLedger_Name(t *testing.T) {
	ledger := NewLedger("ledger.xlsx", "", zap.NewNop())
	assert.Equal(t, "ledger", ledger.Name())
}

func TestSummaryBody(t *testing.T) {
	body := summaryBody(testRecord("s-1"))

	assert.Contains(t, body, "Kim")
	assert.Contains(t, body, "NRF Project A")
	assert.Contains(t, body, "Transaction statement")
	assert.Contains(t, body, "2025-03-14")
}
