package submission

// Thresholds in KRW. The high-value gate and the lab-operations ceiling are
// policy constants, not configuration: the answer flags below are collected
// against these exact amounts.
const (
	HighValueThreshold = 1_000_000
	OperationsCeiling  = 100_000
)

// PaymentMethod determines the project catalog, the selectable categories and
// the base document set.
type PaymentMethod string

const (
	PaymentCorporateCard PaymentMethod = "CORPORATE_CARD"
	PaymentResearchCard  PaymentMethod = "RESEARCH_CARD"
	PaymentTaxInvoice    PaymentMethod = "TAX_INVOICE"
)

// IsValid reports whether the payment method is a known variant
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCorporateCard, PaymentResearchCard, PaymentTaxInvoice:
		return true
	}
	return false
}

// IsCard reports whether the method is one of the card variants
func (m PaymentMethod) IsCard() bool {
	return m == PaymentCorporateCard || m == PaymentResearchCard
}

// Category is one expense category with its own document rule
type Category string

const (
	CategoryMaterials       Category = "MATERIALS"
	CategoryLabEnvironment  Category = "LAB_ENVIRONMENT"
	CategoryOfficeEquipment Category = "OFFICE_EQUIPMENT"
	CategoryConferenceFee   Category = "CONFERENCE_FEE"
	CategoryPrintingCost    Category = "PRINTING_COST"
	CategoryPublicationFee  Category = "PUBLICATION_FEE"
	CategoryLabOperations   Category = "LAB_OPERATIONS"
)

// IsValid reports whether the category is a known variant
func (c Category) IsValid() bool {
	switch c {
	case CategoryMaterials, CategoryLabEnvironment, CategoryOfficeEquipment,
		CategoryConferenceFee, CategoryPrintingCost, CategoryPublicationFee,
		CategoryLabOperations:
		return true
	}
	return false
}

// SelectableCategories returns the categories offered for a payment method.
// LabOperations is only claimable on a card, so it is never offered for
// tax-invoice submissions.
func SelectableCategories(m PaymentMethod) []Category {
	categories := []Category{
		CategoryMaterials,
		CategoryLabEnvironment,
		CategoryOfficeEquipment,
		CategoryConferenceFee,
		CategoryPrintingCost,
		CategoryPublicationFee,
	}
	if m != PaymentTaxInvoice {
		categories = append(categories, CategoryLabOperations)
	}
	return categories
}

// CategorySelectable reports whether a category may be chosen under a payment method
func CategorySelectable(c Category, m PaymentMethod) bool {
	for _, candidate := range SelectableCategories(m) {
		if candidate == c {
			return true
		}
	}
	return false
}

// PurchaseChannel records how a purchase was made, for categories whose
// document rule depends on it. The zero value means the question has not
// been answered yet.
type PurchaseChannel string

const (
	ChannelUnset   PurchaseChannel = ""
	ChannelOnline  PurchaseChannel = "ONLINE"
	ChannelOffline PurchaseChannel = "OFFLINE"
)

// IsValid reports whether the channel is a known answered variant
func (ch PurchaseChannel) IsValid() bool {
	return ch == ChannelOnline || ch == ChannelOffline
}

// TriState is a yes/no answer that may still be unanswered. Rules never
// treat an unanswered question as either branch.
type TriState string

const (
	TriUnanswered TriState = ""
	TriYes        TriState = "YES"
	TriNo         TriState = "NO"
)

// IsValid reports whether the value is a known answered variant
func (t TriState) IsValid() bool {
	return t == TriYes || t == TriNo
}

// PrintKind is the sub-type answer for the printing-cost category
type PrintKind string

const (
	PrintKindUnset  PrintKind = ""
	PrintKindPoster PrintKind = "POSTER"
	PrintKindBook   PrintKind = "BOOK"
)

// IsValid reports whether the print kind is a known answered variant
func (k PrintKind) IsValid() bool {
	return k == PrintKindPoster || k == PrintKindBook
}

// PublicationKind is the sub-type answer for the publication-fee category
type PublicationKind string

const (
	PublicationKindUnset        PublicationKind = ""
	PublicationKindPaper        PublicationKind = "PAPER"
	PublicationKindIllustration PublicationKind = "ILLUSTRATION"
)

// IsValid reports whether the publication kind is a known answered variant
func (k PublicationKind) IsValid() bool {
	return k == PublicationKindPaper || k == PublicationKindIllustration
}

// Project is one selectable account in the fixed catalog
type Project struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var (
	corporateProjects = []Project{
		{ID: "CORP-OPS", Label: "Corporate Shared Operations"},
		{ID: "CORP-LINC", Label: "Corporate LINC Program"},
	}
	researchProjects = []Project{
		{ID: "NRF-A", Label: "NRF Project A"},
		{ID: "MOTIE-B", Label: "MOTIE Project B (Microenvironment)"},
		{ID: "MOE-C", Label: "MOE Project C (CO2)"},
	}
)

// ProjectCatalog returns the projects selectable for a payment method.
// Corporate cards charge only the shared accounts, research cards only the
// funded projects, and tax invoices may charge any of them.
func ProjectCatalog(m PaymentMethod) []Project {
	switch m {
	case PaymentCorporateCard:
		return append([]Project{}, corporateProjects...)
	case PaymentResearchCard:
		return append([]Project{}, researchProjects...)
	case PaymentTaxInvoice:
		catalog := append([]Project{}, corporateProjects...)
		return append(catalog, researchProjects...)
	}
	return nil
}

// LookupProject resolves a catalog project ID under a payment method
func LookupProject(m PaymentMethod, id string) (Project, bool) {
	for _, p := range ProjectCatalog(m) {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
