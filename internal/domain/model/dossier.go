package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/event"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Dossier aggregate root (credit application workflow)
// ---------------------------------------------------------------------------

// Dossier is an immutable aggregate driving the credit wizard: type and
// amount selection, financing simulation, debt-ratio validation, record
// creation, document collection and final submission. Every mutation returns
// a new copy.
type Dossier struct {
	id             string
	tenantID       string
	customerID     string
	state          valueobject.WorkflowState
	status         valueobject.DossierStatus
	cartAmount     decimal.Decimal
	simulation     *SimulationRequest
	result         *SimulationResult
	income         *EligibilityInput
	eligibility    *EligibilityResult
	documents      DocumentSet
	decisionReason string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewDossier opens a new credit wizard in SELECTING_ITEMS, carrying the cart
// amount the simulation will start from.
func NewDossier(tenantID, customerID string, cartAmount decimal.Decimal, now time.Time) (Dossier, error) {
	if tenantID == "" {
		return Dossier{}, valueobject.ErrTenantRequired
	}
	if customerID == "" {
		return Dossier{}, valueobject.ErrCustomerRequired
	}
	if cartAmount.LessThanOrEqual(decimal.Zero) {
		return Dossier{}, valueobject.ErrCartAmountRequired
	}

	id := uuid.New().String()
	d := Dossier{
		id:         id,
		tenantID:   tenantID,
		customerID: customerID,
		state:      valueobject.WorkflowStateSelectingItems,
		cartAmount: cartAmount,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}
	d.domainEvents = append(d.domainEvents,
		event.NewDossierStarted(id, tenantID, customerID, cartAmount, now))
	return d, nil
}

// ReconstructDossier rebuilds an aggregate from persistence without side effects.
func ReconstructDossier(
	id, tenantID, customerID string,
	state valueobject.WorkflowState,
	status valueobject.DossierStatus,
	cartAmount decimal.Decimal,
	simulation *SimulationRequest,
	result *SimulationResult,
	income *EligibilityInput,
	eligibility *EligibilityResult,
	documents DocumentSet,
	decisionReason string,
	version int,
	createdAt, updatedAt time.Time,
) Dossier {
	return Dossier{
		id:             id,
		tenantID:       tenantID,
		customerID:     customerID,
		state:          state,
		status:         status,
		cartAmount:     cartAmount,
		simulation:     simulation,
		result:         result,
		income:         income,
		eligibility:    eligibility,
		documents:      documents,
		decisionReason: decisionReason,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Wizard transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// BeginSimulation advances SELECTING_ITEMS -> SIMULATING unconditionally and
// seeds the simulation request with the cart amount.
func (d Dossier) BeginSimulation(creditType string, now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateSelectingItems) {
		return d, valueobject.ErrInvalidStateTransition
	}
	next := d.touch(now)
	next.state = valueobject.WorkflowStateSimulating
	next.simulation = &SimulationRequest{
		CreditType: creditType,
		CartAmount: d.cartAmount,
	}
	return next, nil
}

// RecordSimulation stores a freshly computed simulation while staying in
// SIMULATING. Any earlier eligibility outcome is discarded: it applied to a
// result that no longer exists.
func (d Dossier) RecordSimulation(req SimulationRequest, result SimulationResult, now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateSimulating) {
		return d, valueobject.ErrInvalidStateTransition
	}
	next := d.touch(now)
	next.simulation = &req
	next.result = &result
	next.income = nil
	next.eligibility = nil
	return next, nil
}

// ChangeCreditType switches the active rule while in SIMULATING: the pending
// amounts are clamped into the new rule's bounds and every computed outcome
// is reset.
func (d Dossier) ChangeCreditType(rule CreditRule, now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateSimulating) {
		return d, valueobject.ErrInvalidStateTransition
	}

	req := SimulationRequest{CartAmount: d.cartAmount}
	if d.simulation != nil {
		req = *d.simulation
	}
	req.CreditType = rule.CreditType
	req.CartAmount = rule.ClampAmount(req.CartAmount)
	req.DurationMonths = rule.ClampDuration(req.DurationMonths)

	next := d.touch(now)
	next.simulation = &req
	next.result = nil
	next.income = nil
	next.eligibility = nil
	return next, nil
}

// AdvanceToValidation moves SIMULATING -> VALIDATING, permitted only when the
// latest simulation can actually be financed.
func (d Dossier) AdvanceToValidation(now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateSimulating) {
		return d, valueobject.ErrInvalidStateTransition
	}
	if d.result == nil || !d.result.CanFinance {
		return d, valueobject.ErrSimulationNotFinanceable
	}
	next := d.touch(now)
	next.state = valueobject.WorkflowStateValidating
	return next, nil
}

// RecordEligibility stores the debt-ratio evaluation while in VALIDATING.
func (d Dossier) RecordEligibility(input EligibilityInput, result EligibilityResult, now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateValidating) {
		return d, valueobject.ErrInvalidStateTransition
	}
	next := d.touch(now)
	next.income = &input
	next.eligibility = &result
	next.domainEvents = append(next.domainEvents,
		event.NewEligibilityChecked(d.id, d.tenantID, d.customerID, result.DebtRatio, result.Eligible, now))
	return next, nil
}

// AdvanceToCreation moves VALIDATING -> CREATING_DOSSIER, permitted only when
// the latest eligibility check passed.
func (d Dossier) AdvanceToCreation(now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateValidating) {
		return d, valueobject.ErrInvalidStateTransition
	}
	if d.eligibility == nil || !d.eligibility.Eligible {
		return d, valueobject.ErrNotEligible
	}
	next := d.touch(now)
	next.state = valueobject.WorkflowStateCreatingDossier
	return next, nil
}

// MarkCreated records that the dossier record now durably exists: the status
// becomes CREATED, the document slots are initialised, and the wizard enters
// COLLECTING_DOCUMENTS. Callers invoke this only after the record persisted;
// a failed save leaves the aggregate in CREATING_DOSSIER for a clean retry.
func (d Dossier) MarkCreated(now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateCreatingDossier) {
		return d, valueobject.ErrInvalidStateTransition
	}
	next := d.touch(now)
	next.state = valueobject.WorkflowStateCollectingDocuments
	next.status = valueobject.DossierStatusCreated
	next.documents = NewDocumentSet()
	next.domainEvents = append(next.domainEvents,
		event.NewDossierCreated(d.id, d.tenantID, d.customerID, d.simulationSnapshot(), now))
	return next, nil
}

// AttachDocument stages a file for one document type while collecting
// documents. The first attachment moves the record status to
// DOCUMENTS_IN_PROGRESS.
func (d Dossier) AttachDocument(docType valueobject.DocumentType, fileName string, fileSize int64, storageRef string, now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateCollectingDocuments) {
		return d, valueobject.ErrInvalidStateTransition
	}
	docs, err := d.documents.Attach(docType, fileName, fileSize, storageRef, now)
	if err != nil {
		return d, err
	}
	next := d.touch(now)
	next.documents = docs
	if next.status.Equal(valueobject.DossierStatusCreated) {
		next.status = valueobject.DossierStatusDocumentsInProgress
	}
	return next, nil
}

// RemoveDocument clears the slot for one document type.
func (d Dossier) RemoveDocument(docType valueobject.DocumentType, now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateCollectingDocuments) {
		return d, valueobject.ErrInvalidStateTransition
	}
	docs, err := d.documents.Remove(docType)
	if err != nil {
		return d, err
	}
	next := d.touch(now)
	next.documents = docs
	return next, nil
}

// MarkDocumentUploaded confirms a durable upload for one slot.
func (d Dossier) MarkDocumentUploaded(docType valueobject.DocumentType, uploadedRef string, now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateCollectingDocuments) {
		return d, valueobject.ErrInvalidStateTransition
	}
	docs, err := d.documents.MarkUploaded(docType, uploadedRef)
	if err != nil {
		return d, err
	}
	next := d.touch(now)
	next.documents = docs
	next.domainEvents = append(next.domainEvents,
		event.NewDocumentUploaded(d.id, d.tenantID, docType.String(), now))
	return next, nil
}

// Submit finishes the wizard: COLLECTING_DOCUMENTS -> SUBMITTED, permitted
// only once every required document is uploaded.
func (d Dossier) Submit(now time.Time) (Dossier, error) {
	if !d.state.Equal(valueobject.WorkflowStateCollectingDocuments) {
		return d, valueobject.ErrInvalidStateTransition
	}
	if !d.documents.IsComplete() {
		return d, valueobject.ErrDocumentsIncomplete
	}
	next := d.touch(now)
	next.state = valueobject.WorkflowStateSubmitted
	next.status = valueobject.DossierStatusSubmitted
	next.domainEvents = append(next.domainEvents,
		event.NewDossierSubmitted(d.id, d.tenantID, d.customerID, now))
	return next, nil
}

// StepBack returns one wizard step, discarding whatever the abandoned step
// produced. The simulation request itself survives a return to SIMULATING so
// the customer can edit it. Going back is not allowed from SUBMITTED.
func (d Dossier) StepBack(now time.Time) (Dossier, error) {
	target, ok := d.state.Previous()
	if !ok {
		return d, valueobject.ErrInvalidStateTransition
	}

	next := d.touch(now)
	next.state = target
	switch target {
	case valueobject.WorkflowStateSelectingItems:
		next.result = nil
		next.income = nil
		next.eligibility = nil
	case valueobject.WorkflowStateSimulating:
		next.income = nil
		next.eligibility = nil
	case valueobject.WorkflowStateCreatingDossier:
		// Leaving the document step discards staged slots; the record itself
		// already exists and keeps its CREATED status.
		next.documents = DocumentSet{}
		next.status = valueobject.DossierStatusCreated
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// Back-office decisions
// ---------------------------------------------------------------------------

// Validate records the back-office approval of a submitted dossier.
func (d Dossier) Validate(reason string, now time.Time) (Dossier, error) {
	return d.decide(valueobject.DossierStatusValidated, reason, now)
}

// Refuse records the back-office refusal of a submitted dossier.
func (d Dossier) Refuse(reason string, now time.Time) (Dossier, error) {
	return d.decide(valueobject.DossierStatusRefused, reason, now)
}

func (d Dossier) decide(status valueobject.DossierStatus, reason string, now time.Time) (Dossier, error) {
	if !d.status.Equal(valueobject.DossierStatusSubmitted) {
		return d, valueobject.ErrInvalidStateTransition
	}
	next := d.touch(now)
	next.status = status
	next.decisionReason = reason
	next.domainEvents = append(next.domainEvents,
		event.NewDossierReviewed(d.id, d.tenantID, d.customerID, status.String(), reason, now))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (d Dossier) ID() string                            { return d.id }
func (d Dossier) TenantID() string                      { return d.tenantID }
func (d Dossier) CustomerID() string                    { return d.customerID }
func (d Dossier) State() valueobject.WorkflowState      { return d.state }
func (d Dossier) Status() valueobject.DossierStatus     { return d.status }
func (d Dossier) CartAmount() decimal.Decimal           { return d.cartAmount }
func (d Dossier) DecisionReason() string                { return d.decisionReason }
func (d Dossier) Version() int                          { return d.version }
func (d Dossier) CreatedAt() time.Time                  { return d.createdAt }
func (d Dossier) UpdatedAt() time.Time                  { return d.updatedAt }
func (d Dossier) Documents() DocumentSet                { return d.documents }
func (d Dossier) DomainEvents() []event.DomainEvent     { return d.domainEvents }

// Simulation returns the pending simulation request, if any.
func (d Dossier) Simulation() (SimulationRequest, bool) {
	if d.simulation == nil {
		return SimulationRequest{}, false
	}
	return *d.simulation, true
}

// SimulationOutcome returns the latest computed simulation result, if any.
func (d Dossier) SimulationOutcome() (SimulationResult, bool) {
	if d.result == nil {
		return SimulationResult{}, false
	}
	return *d.result, true
}

// Income returns the eligibility input, if recorded.
func (d Dossier) Income() (EligibilityInput, bool) {
	if d.income == nil {
		return EligibilityInput{}, false
	}
	return *d.income, true
}

// Eligibility returns the latest eligibility result, if any.
func (d Dossier) Eligibility() (EligibilityResult, bool) {
	if d.eligibility == nil {
		return EligibilityResult{}, false
	}
	return *d.eligibility, true
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (d Dossier) ClearEvents() Dossier {
	next := d
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// touch is the shared start of every transition: bump version, refresh the
// update time, and defensively copy the pending event list.
func (d Dossier) touch(now time.Time) Dossier {
	next := d
	next.updatedAt = now
	next.version++
	next.domainEvents = copyEvents(d.domainEvents)
	return next
}

func (d Dossier) simulationSnapshot() decimal.Decimal {
	if d.result != nil {
		return d.result.MonthlyPayment
	}
	return decimal.Zero
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
