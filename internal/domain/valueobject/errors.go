package valueobject

import "errors"

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrInvalidStateTransition is returned when an operation is attempted
	// from a workflow state that does not permit it.
	ErrInvalidStateTransition = errors.New("invalid workflow state transition")

	// ErrSimulationNotFinanceable gates the move to the eligibility step: the
	// latest simulation must have a positive financed amount and duration.
	ErrSimulationNotFinanceable = errors.New("simulation result is not financeable")

	// ErrNotEligible gates dossier creation: the latest eligibility check
	// must have passed the debt-ratio ceiling.
	ErrNotEligible = errors.New("eligibility check has not passed")

	// ErrDocumentsIncomplete gates submission: every required document must
	// be uploaded first.
	ErrDocumentsIncomplete = errors.New("required documents are not all uploaded")

	// ErrFileTooLarge is returned when an attached file exceeds the size
	// ceiling. The slot is left unchanged.
	ErrFileTooLarge = errors.New("attached file exceeds the size limit")

	// ErrUnknownDocumentType is returned for a type outside the fixed set.
	ErrUnknownDocumentType = errors.New("unknown document type")

	// ErrDocumentNotAttached is returned when uploading or removing a slot
	// that has no attached file.
	ErrDocumentNotAttached = errors.New("no file attached for document type")

	// ErrVersionConflict is returned by repositories when an optimistic
	// locking check fails, typically on a re-entrant double submission.
	ErrVersionConflict = errors.New("dossier was modified concurrently")

	// ErrTenantRequired is returned when opening a dossier without a tenant.
	ErrTenantRequired = errors.New("tenant id is required")

	// ErrCustomerRequired is returned when opening a dossier without a customer.
	ErrCustomerRequired = errors.New("customer id is required")

	// ErrCartAmountRequired is returned when opening a dossier with a
	// non-positive cart amount.
	ErrCartAmountRequired = errors.New("cart amount must be positive")

	// ErrDossierNotFound is returned when no dossier exists for an id.
	ErrDossierNotFound = errors.New("dossier not found")
)
