package delivery

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/labops/evidence-desk/internal/submission"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var ledgerHeader = []string{
	"Submitted At", "Session", "Applicant", "Payment Method",
	"Project", "Category", "High Value", "Documents",
}

// Ledger appends one row per sent submission to a spreadsheet workbook.
// A single mutex serializes appends across sessions; excelize rewrites the
// whole file on save, so concurrent writers would clobber each other.
type Ledger struct {
	mu     sync.Mutex
	path   string
	sheet  string
	logger *zap.Logger
}

// NewLedger creates a new spreadsheet ledger backend
func NewLedger(path, sheet string, logger *zap.Logger) *Ledger {
	if sheet == "" {
		sheet = "Submissions"
	}
	return &Ledger{
		path:   path,
		sheet:  sheet,
		logger: logger,
	}
}

// Name identifies the backend
func (l *Ledger) Name() string { return "ledger" }

// Deliver appends the submission record as one ledger row
func (l *Ledger) Deliver(_ context.Context, record *submission.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, created, err := l.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(l.sheet)
	if err != nil {
		return fmt.Errorf("failed to read ledger sheet: %w", err)
	}
	nextRow := len(rows) + 1

	documents := make([]string, 0, len(record.Documents))
	for _, key := range record.Documents {
		documents = append(documents, string(key))
	}

	values := []interface{}{
		record.SubmittedAt.Format("2006-01-02 15:04:05"),
		record.SessionID,
		record.Applicant,
		string(record.PaymentMethod),
		record.Project,
		string(record.Category),
		record.HighValue,
		strings.Join(documents, ", "),
	}

	cell, err := excelize.CoordinatesToCellName(1, nextRow)
	if err != nil {
		return fmt.Errorf("failed to compute ledger cell: %w", err)
	}
	if err := f.SetSheetRow(l.sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write ledger row: %w", err)
	}

	if err := f.SaveAs(l.path); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	l.logger.Info("Submission appended to ledger",
		zap.String("session_id", record.SessionID),
		zap.String("path", l.path),
		zap.Int("row", nextRow),
		zap.Bool("created", created))
	return nil
}

// open loads the workbook, creating it with a header row on first use
func (l *Ledger) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		index, err := f.NewSheet(l.sheet)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create ledger sheet: %w", err)
		}
		f.SetActiveSheet(index)
		if l.sheet != "Sheet1" {
			if err := f.DeleteSheet("Sheet1"); err != nil {
				l.logger.Warn("Failed to drop default sheet", zap.Error(err))
			}
		}

		header := make([]interface{}, len(ledgerHeader))
		for i, h := range ledgerHeader {
			header[i] = h
		}
		if err := f.SetSheetRow(l.sheet, "A1", &header); err != nil {
			return nil, false, fmt.Errorf("failed to write ledger header: %w", err)
		}
		return f, true, nil
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open ledger: %w", err)
	}
	return f, false, nil
}
