package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DossierStatus – immutable value object
// ---------------------------------------------------------------------------

// DossierStatus represents the lifecycle of the dossier record itself, as
// opposed to the wizard step tracked by WorkflowState. A dossier has no
// status at all before the record is created.
type DossierStatus struct {
	value string
}

const (
	dossierStatusCreated             = "CREATED"
	dossierStatusDocumentsInProgress = "DOCUMENTS_IN_PROGRESS"
	dossierStatusSubmitted           = "SUBMITTED"
	dossierStatusValidated           = "VALIDATED"
	dossierStatusRefused             = "REFUSED"
)

var (
	DossierStatusCreated             = DossierStatus{value: dossierStatusCreated}
	DossierStatusDocumentsInProgress = DossierStatus{value: dossierStatusDocumentsInProgress}
	DossierStatusSubmitted           = DossierStatus{value: dossierStatusSubmitted}
	DossierStatusValidated           = DossierStatus{value: dossierStatusValidated}
	DossierStatusRefused             = DossierStatus{value: dossierStatusRefused}
)

var validDossierStatuses = map[string]DossierStatus{
	dossierStatusCreated:             DossierStatusCreated,
	dossierStatusDocumentsInProgress: DossierStatusDocumentsInProgress,
	dossierStatusSubmitted:           DossierStatusSubmitted,
	dossierStatusValidated:           DossierStatusValidated,
	dossierStatusRefused:             DossierStatusRefused,
}

// NewDossierStatus creates a DossierStatus from a raw string. The empty
// string is valid and yields the zero status (record not yet created).
func NewDossierStatus(s string) (DossierStatus, error) {
	if s == "" {
		return DossierStatus{}, nil
	}
	v, ok := validDossierStatuses[s]
	if !ok {
		return DossierStatus{}, fmt.Errorf("invalid dossier status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s DossierStatus) String() string { return s.value }

// IsZero returns true if the dossier record has not been created yet.
func (s DossierStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s DossierStatus) Equal(other DossierStatus) bool { return s.value == other.value }

// IsTerminal reports whether the dossier reached a back-office decision.
func (s DossierStatus) IsTerminal() bool {
	return s.value == dossierStatusValidated || s.value == dossierStatusRefused
}
