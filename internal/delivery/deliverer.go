// Package delivery forwards approved submissions to the reviewer. Each
// backend is a thin, replaceable shell behind one interface; none of them
// participate in the eligibility decision.
package delivery

import (
	"context"
	"fmt"

	"github.com/labops/evidence-desk/internal/submission"
)

// Deliverer forwards one sent-submission record to the reviewer
type Deliverer interface {
	// Deliver is invoked only after the verdict reported ready
	Deliver(ctx context.Context, record *submission.Record) error

	// Name identifies the backend for logging and the submission log
	Name() string
}

// summaryBody renders the human-readable summary shared by the messaging
// backends
func summaryBody(record *submission.Record) string {
	body := fmt.Sprintf(`A new expense submission passed the document check.

Applicant:      %s
Payment method: %s
Project:        %s
Category:       %s
High value:     %v
Submitted at:   %s

Attached documents:
`,
		record.Applicant,
		record.PaymentMethod,
		record.Project,
		record.Category,
		record.HighValue,
		record.SubmittedAt.Format("2006-01-02 15:04:05"),
	)

	for i, key := range record.Documents {
		body += fmt.Sprintf("%d. %s (%s)\n", i+1, submission.SlotLabel(key), key)
	}

	body += "\nThis message was sent automatically by the expense evidence desk.\n"
	return body
}
