package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DocumentType – immutable value object
// ---------------------------------------------------------------------------

// DocumentType identifies one supporting document requested for a credit
// dossier. The set is fixed: both faces of the national ID and three pay
// slips are required, a bank statement is optional.
type DocumentType struct {
	value    string
	required bool
}

const (
	docTypeIDFront       = "ID_FRONT"
	docTypeIDBack        = "ID_BACK"
	docTypePaySlip1      = "PAYSLIP_1"
	docTypePaySlip2      = "PAYSLIP_2"
	docTypePaySlip3      = "PAYSLIP_3"
	docTypeBankStatement = "BANK_STATEMENT"
)

var (
	DocumentTypeIDFront       = DocumentType{value: docTypeIDFront, required: true}
	DocumentTypeIDBack        = DocumentType{value: docTypeIDBack, required: true}
	DocumentTypePaySlip1      = DocumentType{value: docTypePaySlip1, required: true}
	DocumentTypePaySlip2      = DocumentType{value: docTypePaySlip2, required: true}
	DocumentTypePaySlip3      = DocumentType{value: docTypePaySlip3, required: true}
	DocumentTypeBankStatement = DocumentType{value: docTypeBankStatement, required: false}
)

var validDocumentTypes = map[string]DocumentType{
	docTypeIDFront:       DocumentTypeIDFront,
	docTypeIDBack:        DocumentTypeIDBack,
	docTypePaySlip1:      DocumentTypePaySlip1,
	docTypePaySlip2:      DocumentTypePaySlip2,
	docTypePaySlip3:      DocumentTypePaySlip3,
	docTypeBankStatement: DocumentTypeBankStatement,
}

// AllDocumentTypes returns the full fixed document set, required types first.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeIDFront,
		DocumentTypeIDBack,
		DocumentTypePaySlip1,
		DocumentTypePaySlip2,
		DocumentTypePaySlip3,
		DocumentTypeBankStatement,
	}
}

// NewDocumentType creates a DocumentType from a raw string.
func NewDocumentType(s string) (DocumentType, error) {
	v, ok := validDocumentTypes[s]
	if !ok {
		return DocumentType{}, fmt.Errorf("invalid document type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the type.
func (t DocumentType) String() string { return t.value }

// Required reports whether a dossier cannot be submitted without this document.
func (t DocumentType) Required() bool { return t.required }

// IsZero returns true if the type has not been initialised.
func (t DocumentType) IsZero() bool { return t.value == "" }

// Equal returns true when both types carry the same value.
func (t DocumentType) Equal(other DocumentType) bool { return t.value == other.value }
