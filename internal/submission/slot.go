package submission

// SlotKey identifies one attachment requirement, unique per submission
type SlotKey string

const (
	SlotAuditProof       SlotKey = "audit_proof"
	SlotTaxInvoice       SlotKey = "tax_invoice"
	SlotStatement        SlotKey = "statement"
	SlotOrderCapture     SlotKey = "order_capture"
	SlotDetailReceipt    SlotKey = "detail_receipt"
	SlotConfRegistration SlotKey = "conf_registration"
	SlotConfSchedule     SlotKey = "conf_schedule"
	SlotConfFeeTable     SlotKey = "conf_fee_table"
	SlotPosterFile       SlotKey = "poster_file"
	SlotBookCover        SlotKey = "book_cover"
	SlotPaperCover       SlotKey = "paper_cover"
	SlotFigureFile       SlotKey = "figure_file"
)

// DocumentSlot is one required or conditionally required attachment.
// Extensions are declarative metadata for the upload collaborator; the rule
// engine itself only looks at Present.
type DocumentSlot struct {
	Key        SlotKey  `json:"key"`
	Label      string   `json:"label"`
	Extensions []string `json:"extensions"`
	Required   bool     `json:"required"`
	Present    bool     `json:"present"`
}

type slotMeta struct {
	label      string
	extensions []string
}

var slotCatalog = map[SlotKey]slotMeta{
	SlotAuditProof:       {"Pre-purchase audit confirmation capture", []string{"png", "pdf"}},
	SlotTaxInvoice:       {"Tax invoice", []string{"pdf", "xml", "png"}},
	SlotStatement:        {"Transaction statement", []string{"png", "pdf"}},
	SlotOrderCapture:     {"Order history capture", []string{"png", "pdf"}},
	SlotDetailReceipt:    {"Itemized receipt", []string{"png", "pdf"}},
	SlotConfRegistration: {"Conference registration proof", []string{"pdf", "png"}},
	SlotConfSchedule:     {"Conference date and venue capture", []string{"png", "pdf"}},
	SlotConfFeeTable:     {"Registration fee schedule", []string{"png", "pdf"}},
	SlotPosterFile:       {"Poster source file", []string{"pdf"}},
	SlotBookCover:        {"Book front cover photo", []string{"png", "pdf"}},
	SlotPaperCover:       {"Paper cover page", []string{"pdf", "png"}},
	SlotFigureFile:       {"Produced figure file", []string{"png", "pdf"}},
}

// slotOrder fixes the rendering order of slots across the whole form
var slotOrder = []SlotKey{
	SlotAuditProof,
	SlotTaxInvoice,
	SlotStatement,
	SlotOrderCapture,
	SlotDetailReceipt,
	SlotConfRegistration,
	SlotConfSchedule,
	SlotConfFeeTable,
	SlotPosterFile,
	SlotBookCover,
	SlotPaperCover,
	SlotFigureFile,
}

// KnownSlot reports whether the key names a slot in the catalog
func KnownSlot(key SlotKey) bool {
	_, ok := slotCatalog[key]
	return ok
}

// NewSlot builds a slot from catalog metadata
func NewSlot(key SlotKey, required, present bool) DocumentSlot {
	meta := slotCatalog[key]
	return DocumentSlot{
		Key:        key,
		Label:      meta.label,
		Extensions: append([]string{}, meta.extensions...),
		Required:   required,
		Present:    present,
	}
}

// SlotLabel returns the human label for a slot key
func SlotLabel(key SlotKey) string {
	return slotCatalog[key].label
}

// AcceptsExtension reports whether a slot accepts a file extension.
// The comparison is on the declared extension only, never file contents.
func AcceptsExtension(key SlotKey, ext string) bool {
	meta, ok := slotCatalog[key]
	if !ok {
		return false
	}
	for _, accepted := range meta.extensions {
		if accepted == ext {
			return true
		}
	}
	return false
}

// SortSlots orders slots in the fixed form order
func SortSlots(slots map[SlotKey]DocumentSlot) []DocumentSlot {
	ordered := make([]DocumentSlot, 0, len(slots))
	for _, key := range slotOrder {
		if slot, ok := slots[key]; ok {
			ordered = append(ordered, slot)
		}
	}
	return ordered
}
