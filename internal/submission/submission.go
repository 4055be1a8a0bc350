package submission

import "time"

// Submission is the canonical in-memory representation of one in-progress
// expense submission. It is a plain value bag: the rule engine reads it, the
// session layer mutates it, and nothing in it is persisted before a
// successful send.
type Submission struct {
	Applicant     string          `json:"applicant"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ProjectID     string          `json:"project_id"`
	ProjectText   string          `json:"project_text"`
	HighValue     TriState        `json:"high_value"`
	Category      Category        `json:"category"`
	Channel       PurchaseChannel `json:"channel"`
	Reason        string          `json:"reason"`

	PrintKind       PrintKind       `json:"print_kind"`
	PublicationKind PublicationKind `json:"publication_kind"`
	UnderCeiling    TriState        `json:"under_ceiling"`

	// Files maps slot key to upload presence, supplied by the upload
	// collaborator. Presence is the only thing the rule engine sees of a
	// file.
	Files map[SlotKey]bool `json:"files"`
}

// New creates an empty submission
func New() *Submission {
	return &Submission{Files: make(map[SlotKey]bool)}
}

// HasFile reports whether a file is present in the given slot
func (s *Submission) HasFile(key SlotKey) bool {
	return s.Files[key]
}

// Clone returns a deep copy of the submission
func (s *Submission) Clone() *Submission {
	copied := *s
	copied.Files = make(map[SlotKey]bool, len(s.Files))
	for key, present := range s.Files {
		copied.Files[key] = present
	}
	return &copied
}

// ResolvedProject returns the display form of the chosen project: the
// catalog label for a catalog selection, or the manual entry text.
func (s *Submission) ResolvedProject() string {
	if s.ProjectID != "" {
		if p, ok := LookupProject(s.PaymentMethod, s.ProjectID); ok {
			return p.Label
		}
		return s.ProjectID
	}
	return s.ProjectText
}

// Record is the summary of one sent submission, handed to the delivery and
// log collaborators once the verdict reported ready.
type Record struct {
	SessionID     string        `json:"session_id"`
	Applicant     string        `json:"applicant"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Project       string        `json:"project"`
	Category      Category      `json:"category"`
	HighValue     bool          `json:"high_value"`
	Documents     []SlotKey     `json:"documents"`
	SubmittedAt   time.Time     `json:"submitted_at"`
}

// NewRecord builds the sent-submission summary from a ready submission and
// its evaluated slot set
func NewRecord(sessionID string, s *Submission, slots []DocumentSlot, at time.Time) *Record {
	documents := make([]SlotKey, 0, len(slots))
	for _, slot := range slots {
		if slot.Required && slot.Present {
			documents = append(documents, slot.Key)
		}
	}
	return &Record{
		SessionID:     sessionID,
		Applicant:     s.Applicant,
		PaymentMethod: s.PaymentMethod,
		Project:       s.ResolvedProject(),
		Category:      s.Category,
		HighValue:     s.HighValue == TriYes,
		Documents:     documents,
		SubmittedAt:   at,
	}
}
